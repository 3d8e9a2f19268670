package models

import "time"

var (
	AcquisitionChannels = []string{"organic", "paid_search", "social_media", "email", "referral", "direct"}
	FunnelStages        = []string{"awareness", "consideration", "conversion", "retention"}
)

// MarketingTouch is a campaign interaction. UserID is nullable: touches
// survive user deletion, so the list join is a LEFT JOIN and the user
// columns may be null.
type MarketingTouch struct {
	ID                 int64     `json:"id"`
	UserID             *int64    `json:"user_id"`
	CampaignName       string    `json:"campaign_name"`
	AcquisitionChannel string    `json:"acquisition_channel"`
	CampaignDate       time.Time `json:"campaign_date"`
	FunnelStage        string    `json:"funnel_stage"`
	ConversionValue    float64   `json:"conversion_value"`
	Cost               float64   `json:"cost"`
	Impressions        int       `json:"impressions"`
	Clicks             int       `json:"clicks"`
	Conversions        int       `json:"conversions"`
	UserName           *string   `json:"user_name"`
	UserEmail          *string   `json:"user_email"`
}
