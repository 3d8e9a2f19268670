package models

import "time"

// UsageMetric is one observation-period row for a user. FeatureUsage holds a
// comma-joined tag list; the dashboard splits it per tag on read.
type UsageMetric struct {
	ID                     int64     `json:"id"`
	UserID                 int64     `json:"user_id"`
	MetricDate             time.Time `json:"metric_date"`
	LoginCount             int       `json:"login_count"`
	FeatureUsage           string    `json:"feature_usage"`
	FeaturesUsedCount      int       `json:"features_used_count"`
	SupportTicketsOpened   int       `json:"support_tickets_opened"`
	SupportTicketsResolved int       `json:"support_tickets_resolved"`
	SessionDurationMinutes float64   `json:"session_duration_minutes"`
	UserName               string    `json:"user_name"`
	UserEmail              string    `json:"user_email"`
}
