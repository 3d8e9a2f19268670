package filters_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"saasmetrics/backend/filters"
)

func TestBuilderEmpty(t *testing.T) {
	c := qt.New(t)

	b := filters.New()

	c.Assert(b.Where(), qt.Equals, "")
	c.Assert(b.Args(), qt.HasLen, 0)
	c.Assert(b.NextArg(), qt.Equals, 1)
}

func TestBuilderSkipsEmptyValues(t *testing.T) {
	c := qt.New(t)

	b := filters.New().
		Eq("subscription_tier", "").
		DateFrom("signup_date", "").
		Min("amount", "")

	c.Assert(b.Where(), qt.Equals, "")
	c.Assert(b.Args(), qt.HasLen, 0)
}

func TestBuilderConjunction(t *testing.T) {
	c := qt.New(t)

	b := filters.New().
		Eq("subscription_tier", "starter").
		Eq("churn_status", "active").
		DateFrom("signup_date", "2024-01-01").
		DateTo("signup_date", "2024-06-30")

	c.Assert(b.Where(), qt.Equals,
		" WHERE subscription_tier = $1 AND churn_status = $2"+
			" AND signup_date::date >= $3::date AND signup_date::date <= $4::date")
	c.Assert(b.Args(), qt.DeepEquals, []any{"starter", "active", "2024-01-01", "2024-06-30"})
	c.Assert(b.NextArg(), qt.Equals, 5)
}

func TestBuilderPlaceholderNumberingSkipsBlanks(t *testing.T) {
	c := qt.New(t)

	// The blank middle filter must not consume a placeholder.
	b := filters.New().
		Eq("transaction_type", "refund").
		Eq("status", "").
		Min("amount", "10")

	c.Assert(b.Where(), qt.Equals, " WHERE transaction_type = $1 AND amount >= $2")
	c.Assert(b.Args(), qt.DeepEquals, []any{"refund", float64(10)})
}

func TestBuilderNumericCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		args  []any
	}{
		{name: "integer", value: "42", want: " WHERE login_count >= $1", args: []any{float64(42)}},
		{name: "decimal", value: "19.95", want: " WHERE login_count >= $1", args: []any{19.95}},
		{name: "negative", value: "-30", want: " WHERE login_count >= $1", args: []any{float64(-30)}},
		{name: "non-numeric ignored", value: "abc", want: "", args: nil},
		{name: "trailing junk ignored", value: "10; DROP TABLE users", want: "", args: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			b := filters.New().Min("login_count", tt.value)

			c.Assert(b.Where(), qt.Equals, tt.want)
			if tt.args == nil {
				c.Assert(b.Args(), qt.HasLen, 0)
			} else {
				c.Assert(b.Args(), qt.DeepEquals, tt.args)
			}
		})
	}
}

func TestBuilderNeverInlinesValues(t *testing.T) {
	c := qt.New(t)

	hostile := "'; DROP TABLE users; --"
	b := filters.New().
		Eq("churn_status", hostile).
		DateFrom("signup_date", hostile)

	// The value only ever appears in the args, never in the SQL text.
	c.Assert(b.Where(), qt.Equals,
		" WHERE churn_status = $1 AND signup_date::date >= $2::date")
	c.Assert(b.Args(), qt.DeepEquals, []any{hostile, hostile})
}

func TestBuilderMax(t *testing.T) {
	c := qt.New(t)

	b := filters.New().Max("amount", "250.50")

	c.Assert(b.Where(), qt.Equals, " WHERE amount <= $1")
	c.Assert(b.Args(), qt.DeepEquals, []any{250.50})
}

func TestBuilderReusableForCount(t *testing.T) {
	c := qt.New(t)

	b := filters.New().
		Eq("m.acquisition_channel", "email").
		DateTo("m.campaign_date", "2025-01-31")

	list := "SELECT m.* FROM marketing m" + b.Where()
	count := "SELECT COUNT(*) FROM marketing m" + b.Where()

	c.Assert(list, qt.Equals,
		"SELECT m.* FROM marketing m WHERE m.acquisition_channel = $1 AND m.campaign_date::date <= $2::date")
	c.Assert(count, qt.Equals,
		"SELECT COUNT(*) FROM marketing m WHERE m.acquisition_channel = $1 AND m.campaign_date::date <= $2::date")
	c.Assert(b.Args(), qt.HasLen, 2)
}
