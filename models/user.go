package models

import "time"

// Subscription tiers and churn statuses as stored in the users table.
var (
	SubscriptionTiers = []string{"free", "starter", "professional", "enterprise"}
	ChurnStatuses     = []string{"active", "at_risk", "churned"}
)

type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	SignupDate       time.Time `json:"signup_date"`
	SubscriptionTier string    `json:"subscription_tier"`
	ChurnStatus      string    `json:"churn_status"`
	Location         *string   `json:"location"`
}
