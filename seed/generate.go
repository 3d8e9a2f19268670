// Package seed produces and loads the batch dataset the API reports over.
// It replaces the front-end repo's node scripts: generate writes the four
// CSV files, load bulk-inserts them.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"saasmetrics/backend/geo"
	"saasmetrics/backend/models"
)

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Lisa", "James", "Maria",
	"William", "Jennifer", "Richard", "Linda", "Joseph", "Patricia", "Thomas", "Barbara",
	"Charles", "Elizabeth", "Daniel", "Susan", "Matthew", "Jessica", "Anthony", "Karen",
	"Mark", "Nancy", "Donald", "Betty", "Steven", "Helen", "Paul", "Sandra", "Andrew",
	"Donna", "Joshua", "Carol", "Kenneth", "Ruth", "Kevin", "Sharon", "Brian", "Michelle",
	"George", "Laura", "Edward", "Amy", "Ronald", "Shirley",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
	"Harris", "Clark", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green", "Adams",
	"Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
}

var campaignNames = []string{
	"Summer Sale 2024", "Q4 Growth", "Product Launch", "Referral Program",
	"Holiday Special", "Brand Awareness", "Lead Gen Campaign", "Retargeting Q1",
	"Email Nurture", "Social Media Push", "Content Marketing", "Partnership Drive",
}

var features = []string{
	"dashboard", "reports", "api", "integrations", "analytics",
	"export", "collaboration", "automation", "notifications", "search",
}

// Weighted towards active / completed, as real tenants skew.
var (
	churnWeights  = []string{"active", "active", "active", "active", "active", "at_risk", "churned"}
	statusWeights = []string{"completed", "completed", "completed", "pending", "failed"}
)

var tierPricing = map[string]int{
	"free":         0,
	"starter":      29,
	"professional": 99,
	"enterprise":   299,
}

type UserRow struct {
	ID               int
	Email            string
	Name             string
	SignupDate       time.Time
	SubscriptionTier string
	ChurnStatus      string
	Location         string
}

type RevenueRow struct {
	ID               int
	UserID           int
	TransactionDate  time.Time
	TransactionType  string
	Amount           float64
	SubscriptionTier string
	Status           string
}

type UsageRow struct {
	ID                     int
	UserID                 int
	MetricDate             time.Time
	LoginCount             int
	FeatureUsage           string
	FeaturesUsedCount      int
	SupportTicketsOpened   int
	SupportTicketsResolved int
	SessionDurationMinutes float64
}

type MarketingRow struct {
	ID                 int
	UserID             int
	CampaignName       string
	AcquisitionChannel string
	CampaignDate       time.Time
	FunnelStage        string
	ConversionValue    float64
	Cost               float64
	Impressions        int
	Clicks             int
	Conversions        int
}

type Dataset struct {
	Users     []UserRow
	Revenue   []RevenueRow
	Usage     []UsageRow
	Marketing []MarketingRow
}

type Options struct {
	Users int
	Start time.Time
	End   time.Time
	Seed  int64
}

func DefaultOptions() Options {
	return Options{
		Users: 600,
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Seed:  time.Now().UnixNano(),
	}
}

// Generate builds a full random dataset. The same seed reproduces the same
// dataset.
func Generate(opts Options) Dataset {
	rng := rand.New(rand.NewSource(opts.Seed))
	locations := geo.Locations()

	var ds Dataset
	for i := 1; i <= opts.Users; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		ds.Users = append(ds.Users, UserRow{
			ID:               i,
			Email:            fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Name:             first + " " + last,
			SignupDate:       randomDate(rng, opts.Start, opts.End),
			SubscriptionTier: pick(rng, models.SubscriptionTiers),
			ChurnStatus:      pick(rng, churnWeights),
			Location:         pick(rng, locations),
		})
	}

	revenueID, usageID, marketingID := 1, 1, 1
	for _, u := range ds.Users {
		numTx := randInt(rng, 2, 8)
		if u.ChurnStatus == "churned" {
			numTx = randInt(rng, 1, 3)
		}
		for i := 0; i < numTx; i++ {
			ds.Revenue = append(ds.Revenue, revenueFor(rng, u, revenueID, opts.End))
			revenueID++
		}

		numUsage := randInt(rng, 2, 6)
		if u.ChurnStatus == "churned" {
			numUsage = randInt(rng, 1, 3)
		}
		for i := 0; i < numUsage; i++ {
			ds.Usage = append(ds.Usage, usageFor(rng, u, usageID, opts.End))
			usageID++
		}

		for i := randInt(rng, 1, 3); i > 0; i-- {
			ds.Marketing = append(ds.Marketing, marketingFor(rng, u, marketingID))
			marketingID++
		}
	}
	return ds
}

func revenueFor(rng *rand.Rand, u UserRow, id int, end time.Time) RevenueRow {
	txType := pick(rng, models.TransactionTypes)
	var amount float64
	if u.SubscriptionTier == "free" {
		// Free users only have occasional one-time purchases.
		txType = "mrr"
		if rng.Float64() > 0.9 {
			txType = "one_time"
			amount = float64(randInt(rng, 5, 50))
		}
	} else {
		switch txType {
		case "mrr":
			amount = float64(tierPricing[u.SubscriptionTier])
		case "one_time":
			amount = float64(randInt(rng, 10, 500))
		default: // refund
			ceiling := tierPricing[u.SubscriptionTier]
			if ceiling == 0 {
				ceiling = 50
			}
			amount = -float64(randInt(rng, 10, ceiling))
		}
	}
	return RevenueRow{
		ID:               id,
		UserID:           u.ID,
		TransactionDate:  randomDate(rng, u.SignupDate, end),
		TransactionType:  txType,
		Amount:           amount,
		SubscriptionTier: u.SubscriptionTier,
		Status:           pick(rng, statusWeights),
	}
}

func usageFor(rng *rand.Rand, u UserRow, id int, end time.Time) UsageRow {
	loginCount := randInt(rng, 0, 5)
	sessionDuration := float64(randInt(rng, 1, 30))
	if u.ChurnStatus == "active" {
		loginCount = randInt(rng, 1, 50)
		sessionDuration = float64(randInt(rng, 5, 180))
	}
	featureCount := randInt(rng, 1, 7)
	used := make([]string, 0, featureCount)
	for i := 0; i < featureCount; i++ {
		used = append(used, pick(rng, features))
	}
	opened := randInt(rng, 0, 5)
	resolved := 0
	if opened > 0 {
		resolved = randInt(rng, 0, opened)
	}
	return UsageRow{
		ID:                     id,
		UserID:                 u.ID,
		MetricDate:             randomDate(rng, u.SignupDate, end),
		LoginCount:             loginCount,
		FeatureUsage:           strings.Join(used, ","),
		FeaturesUsedCount:      featureCount,
		SupportTicketsOpened:   opened,
		SupportTicketsResolved: resolved,
		SessionDurationMinutes: sessionDuration,
	}
}

func marketingFor(rng *rand.Rand, u UserRow, id int) MarketingRow {
	stage := pick(rng, models.FunnelStages)
	impressions := randInt(rng, 100, 10000)
	clicks := int(math.Floor(float64(impressions) * float64(randInt(rng, 1, 15)) / 100))
	conversions := 0
	if stage == "conversion" {
		conversions = randInt(rng, 0, max(1, int(math.Floor(float64(clicks)*0.2))))
	}
	conversionValue := 0.0
	if conversions > 0 {
		conversionValue = float64(randInt(rng, 29, 500))
	}
	return MarketingRow{
		ID:                 id,
		UserID:             u.ID,
		CampaignName:       pick(rng, campaignNames),
		AcquisitionChannel: pick(rng, models.AcquisitionChannels),
		// Touches land up to 30 days before the signup they drove.
		CampaignDate:    u.SignupDate.AddDate(0, 0, -randInt(rng, 0, 30)),
		FunnelStage:     stage,
		ConversionValue: conversionValue,
		Cost:            float64(randInt(rng, 50, 5000)) / 10,
		Impressions:     impressions,
		Clicks:          clicks,
		Conversions:     conversions,
	}
}

func pick(rng *rand.Rand, vals []string) string {
	return vals[rng.Intn(len(vals))]
}

func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func randomDate(rng *rand.Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(rng.Int63n(int64(span))))
}
