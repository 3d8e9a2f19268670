package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string // Postgres connection string
	GinMode     string
	MaxPageSize int // upper bound applied to the ?limit query param
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:        get("PORT", "3003"),
		DatabaseURL: must("DATABASE_URL"),
		GinMode:     get("GIN_MODE", "debug"),
		MaxPageSize: getInt("MAX_PAGE_SIZE", 500),
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}
