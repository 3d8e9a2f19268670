package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

type table struct {
	Name    string
	Columns []string
}

// Tables lists the four target tables in load order; users first so the
// foreign keys resolve.
var Tables = []table{
	{Name: "users", Columns: []string{"id", "email", "name", "signup_date", "subscription_tier", "churn_status", "location"}},
	{Name: "revenue", Columns: []string{"id", "user_id", "transaction_date", "transaction_type", "amount", "subscription_tier", "status"}},
	{Name: "usage_metrics", Columns: []string{"id", "user_id", "metric_date", "login_count", "feature_usage", "features_used_count", "support_tickets_opened", "support_tickets_resolved", "session_duration_minutes"}},
	{Name: "marketing", Columns: []string{"id", "user_id", "campaign_name", "acquisition_channel", "campaign_date", "funnel_stage", "conversion_value", "cost", "impressions", "clicks", "conversions"}},
}

// Records renders the dataset for one table as string rows in column order.
func (d Dataset) Records(tableName string) [][]string {
	switch tableName {
	case "users":
		out := make([][]string, 0, len(d.Users))
		for _, u := range d.Users {
			out = append(out, []string{
				strconv.Itoa(u.ID), u.Email, u.Name,
				u.SignupDate.UTC().Format(dateTimeFormat),
				u.SubscriptionTier, u.ChurnStatus, u.Location,
			})
		}
		return out
	case "revenue":
		out := make([][]string, 0, len(d.Revenue))
		for _, r := range d.Revenue {
			out = append(out, []string{
				strconv.Itoa(r.ID), strconv.Itoa(r.UserID),
				r.TransactionDate.UTC().Format(dateTimeFormat),
				r.TransactionType,
				strconv.FormatFloat(r.Amount, 'f', 2, 64),
				r.SubscriptionTier, r.Status,
			})
		}
		return out
	case "usage_metrics":
		out := make([][]string, 0, len(d.Usage))
		for _, u := range d.Usage {
			out = append(out, []string{
				strconv.Itoa(u.ID), strconv.Itoa(u.UserID),
				u.MetricDate.UTC().Format(dateFormat),
				strconv.Itoa(u.LoginCount),
				u.FeatureUsage,
				strconv.Itoa(u.FeaturesUsedCount),
				strconv.Itoa(u.SupportTicketsOpened),
				strconv.Itoa(u.SupportTicketsResolved),
				strconv.FormatFloat(u.SessionDurationMinutes, 'f', 1, 64),
			})
		}
		return out
	case "marketing":
		out := make([][]string, 0, len(d.Marketing))
		for _, m := range d.Marketing {
			out = append(out, []string{
				strconv.Itoa(m.ID), strconv.Itoa(m.UserID),
				m.CampaignName, m.AcquisitionChannel,
				m.CampaignDate.UTC().Format(dateFormat),
				m.FunnelStage,
				strconv.FormatFloat(m.ConversionValue, 'f', 2, 64),
				strconv.FormatFloat(m.Cost, 'f', 2, 64),
				strconv.Itoa(m.Impressions),
				strconv.Itoa(m.Clicks),
				strconv.Itoa(m.Conversions),
			})
		}
		return out
	}
	return nil
}

// WriteCSV writes one CSV per table into dir, header row included.
func (d Dataset) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, t := range Tables {
		path := filepath.Join(dir, t.Name+".csv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		w := csv.NewWriter(f)
		if err := w.Write(t.Columns); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteAll(d.Records(t.Name)); err != nil {
			f.Close()
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func readCSV(path string, wantColumns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantColumns
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}
	return rows[1:], nil
}
