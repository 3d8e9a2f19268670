package models

import "time"

var (
	TransactionTypes    = []string{"mrr", "one_time", "refund"}
	TransactionStatuses = []string{"completed", "pending", "failed"}
)

// Transaction is a revenue row joined with the owning user's name and email.
type Transaction struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	TransactionDate  time.Time `json:"transaction_date"`
	TransactionType  string    `json:"transaction_type"`
	Amount           float64   `json:"amount"`
	SubscriptionTier *string   `json:"subscription_tier"`
	Status           string    `json:"status"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
}
