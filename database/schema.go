package database

import (
	"context"
	"log"
)

// EnsureSchema creates the four analytics tables and their indexes if they
// do not exist. The tables are batch-loaded by seedctl; the API only reads.
func EnsureSchema() {
	if Pool == nil {
		return
	}
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			signup_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			subscription_tier TEXT NOT NULL DEFAULT 'free'
				CHECK (subscription_tier IN ('free','starter','professional','enterprise')),
			churn_status TEXT NOT NULL DEFAULT 'active'
				CHECK (churn_status IN ('active','at_risk','churned')),
			location TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS revenue (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			transaction_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			transaction_type TEXT NOT NULL
				CHECK (transaction_type IN ('mrr','one_time','refund')),
			amount NUMERIC NOT NULL,
			subscription_tier TEXT
				CHECK (subscription_tier IN ('free','starter','professional','enterprise')),
			status TEXT NOT NULL DEFAULT 'completed'
				CHECK (status IN ('completed','pending','failed'))
		)`,
		`CREATE TABLE IF NOT EXISTS usage_metrics (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			metric_date DATE NOT NULL,
			login_count INT NOT NULL DEFAULT 0,
			feature_usage TEXT,
			features_used_count INT NOT NULL DEFAULT 0,
			support_tickets_opened INT NOT NULL DEFAULT 0,
			support_tickets_resolved INT NOT NULL DEFAULT 0,
			session_duration_minutes DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS marketing (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
			campaign_name TEXT NOT NULL,
			acquisition_channel TEXT NOT NULL
				CHECK (acquisition_channel IN ('organic','paid_search','social_media','email','referral','direct')),
			campaign_date DATE NOT NULL,
			funnel_stage TEXT NOT NULL
				CHECK (funnel_stage IN ('awareness','consideration','conversion','retention')),
			conversion_value NUMERIC NOT NULL DEFAULT 0,
			cost NUMERIC NOT NULL DEFAULT 0,
			impressions INT NOT NULL DEFAULT 0,
			clicks INT NOT NULL DEFAULT 0,
			conversions INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_signup ON users(signup_date)`,
		`CREATE INDEX IF NOT EXISTS idx_users_subscription_tier ON users(subscription_tier)`,
		`CREATE INDEX IF NOT EXISTS idx_users_churn ON users(churn_status)`,
		`CREATE INDEX IF NOT EXISTS idx_revenue_user ON revenue(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_revenue_date ON revenue(transaction_date)`,
		`CREATE INDEX IF NOT EXISTS idx_revenue_type ON revenue(transaction_type)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_user ON usage_metrics(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_metrics(metric_date)`,
		`CREATE INDEX IF NOT EXISTS idx_marketing_channel ON marketing(acquisition_channel)`,
		`CREATE INDEX IF NOT EXISTS idx_marketing_campaign ON marketing(campaign_name)`,
		`CREATE INDEX IF NOT EXISTS idx_marketing_date ON marketing(campaign_date)`,
		`CREATE INDEX IF NOT EXISTS idx_marketing_funnel ON marketing(funnel_stage)`,
	}

	for _, s := range stmts {
		if _, err := Pool.Exec(ctx, s); err != nil {
			log.Printf("schema ensure error: %v in stmt: %s", err, s)
		}
	}
}
