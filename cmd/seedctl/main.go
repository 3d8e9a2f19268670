// seedctl manages the analytics dataset the API reports over: it creates
// the schema, generates random CSV fixtures, and bulk-loads CSV or XLSX
// files into Postgres.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"saasmetrics/backend/config"
	"saasmetrics/backend/database"
	"saasmetrics/backend/seed"
)

var (
	dataDir   string
	format    string
	userCount int
	randSeed  int64
	truncate  bool
)

func main() {
	root := &cobra.Command{
		Use:   "seedctl",
		Short: "Manage the analytics dataset",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			database.Connect(cfg.DatabaseURL)
			database.EnsureSchema()
			log.Println("schema ready")
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random CSV fixtures for the four tables",
		Run: func(cmd *cobra.Command, args []string) {
			opts := seed.DefaultOptions()
			opts.Users = userCount
			if randSeed != 0 {
				opts.Seed = randSeed
			}
			ds := seed.Generate(opts)
			if err := ds.WriteCSV(dataDir); err != nil {
				log.Fatalf("write fixtures: %v", err)
			}
			log.Printf("generated %d users, %d revenue, %d usage, %d marketing rows in %s",
				len(ds.Users), len(ds.Revenue), len(ds.Usage), len(ds.Marketing), dataDir)
		},
	}
	generateCmd.Flags().IntVar(&userCount, "users", 600, "number of users to generate")
	generateCmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed (0 picks one)")

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load table files into the database",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			database.Connect(cfg.DatabaseURL)
			database.EnsureSchema()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if truncate {
				if err := seed.Truncate(ctx, database.Pool); err != nil {
					log.Fatalf("truncate: %v", err)
				}
			}
			if err := seed.Load(ctx, database.Pool, dataDir, format); err != nil {
				log.Fatalf("load: %v", err)
			}
			log.Println("load complete")
		},
	}
	loadCmd.Flags().StringVar(&format, "format", "csv", "input file format (csv or xlsx)")
	loadCmd.Flags().BoolVar(&truncate, "truncate", false, "empty the tables before loading")

	root.PersistentFlags().StringVar(&dataDir, "dir", "input", "directory holding the table files")
	root.AddCommand(initCmd, generateCmd, loadCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
