package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"saasmetrics/backend/database"
	"saasmetrics/backend/geo"
)

// KPIs returns the headline numbers for the overview page: user counts and
// churn rate, revenue totals, and support ticket resolution. Every rate
// guards its denominator so an empty dataset reports zeros, not NaN.
func KPIs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var totalUsers, activeUsers, churnedUsers int
		err := database.Pool.QueryRow(ctx, `
			SELECT
				COUNT(*)::int,
				COALESCE(SUM(CASE WHEN churn_status = 'active' THEN 1 ELSE 0 END), 0)::int,
				COALESCE(SUM(CASE WHEN churn_status = 'churned' THEN 1 ELSE 0 END), 0)::int
			FROM users`,
		).Scan(&totalUsers, &activeUsers, &churnedUsers)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var totalMRR, totalRevenue float64
		err = database.Pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(CASE WHEN transaction_type = 'mrr' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8,
				COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0)::float8
			FROM revenue`,
		).Scan(&totalMRR, &totalRevenue)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var newUsers30d int
		err = database.Pool.QueryRow(ctx, `
			SELECT COUNT(*)::int FROM users
			WHERE signup_date::date >= (now() - interval '30 days')::date`,
		).Scan(&newUsers30d)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var ticketsOpened, ticketsResolved int
		err = database.Pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(support_tickets_opened), 0)::int,
				COALESCE(SUM(support_tickets_resolved), 0)::int
			FROM usage_metrics`,
		).Scan(&ticketsOpened, &ticketsResolved)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		churnRate := 0.0
		if totalUsers > 0 {
			churnRate = round2(float64(churnedUsers) / float64(totalUsers) * 100)
		}
		arpu := 0.0
		if activeUsers > 0 {
			arpu = round2(totalRevenue / float64(activeUsers))
		}
		resolutionRate := 0.0
		if ticketsOpened > 0 {
			resolutionRate = round2(float64(ticketsResolved) / float64(ticketsOpened) * 100)
		}

		c.JSON(http.StatusOK, gin.H{
			"users": gin.H{
				"total":         totalUsers,
				"active":        activeUsers,
				"churned":       churnedUsers,
				"churnRate":     churnRate,
				"newLast30Days": newUsers30d,
			},
			"revenue": gin.H{
				"totalMRR":              totalMRR,
				"totalRevenue":          totalRevenue,
				"averageRevenuePerUser": arpu,
			},
			"support": gin.H{
				"totalTicketsOpened":   ticketsOpened,
				"totalTicketsResolved": ticketsResolved,
				"resolutionRate":       resolutionRate,
			},
		})
	}
}

// UserGrowth returns per-month signup counts with a running cumulative
// total, oldest month first.
func UserGrowth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT to_char(signup_date, 'YYYY-MM') AS month, COUNT(*)::int AS new_users
			FROM users
			GROUP BY month
			ORDER BY month`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		points := []growthPoint{}
		for rows.Next() {
			var p growthPoint
			if err := rows.Scan(&p.Month, &p.NewUsers); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			points = append(points, p)
		}

		c.JSON(http.StatusOK, accumulateGrowth(points))
	}
}

type revenueTrend struct {
	Month      string  `json:"month"`
	MRR        float64 `json:"mrr"`
	OneTime    float64 `json:"one_time"`
	Refunds    float64 `json:"refunds"`
	NetRevenue float64 `json:"net_revenue"`
}

// RevenueTrends returns the last 12 transaction months oldest-first with
// completed MRR, completed one-time, refund magnitude, and net completed
// sums. Refunds are stored negative and reported as a positive magnitude.
func RevenueTrends() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT
				to_char(transaction_date, 'YYYY-MM') AS month,
				COALESCE(SUM(CASE WHEN transaction_type = 'mrr' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS mrr,
				COALESCE(SUM(CASE WHEN transaction_type = 'one_time' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS one_time,
				COALESCE(SUM(CASE WHEN transaction_type = 'refund' THEN ABS(amount) ELSE 0 END), 0)::float8 AS refunds,
				COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS net_revenue
			FROM revenue
			GROUP BY month
			ORDER BY month DESC
			LIMIT 12`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []revenueTrend{}
		for rows.Next() {
			var tr revenueTrend
			if err := rows.Scan(&tr.Month, &tr.MRR, &tr.OneTime, &tr.Refunds, &tr.NetRevenue); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, tr)
		}
		reverse(out)

		c.JSON(http.StatusOK, out)
	}
}

type funnelStage struct {
	FunnelStage string `json:"funnel_stage"`
	Users       int    `json:"users"`
	Impressions int    `json:"impressions"`
	Clicks      int    `json:"clicks"`
	Conversions int    `json:"conversions"`
}

// AcquisitionFunnel returns per-stage marketing totals in funnel order, not
// alphabetical order.
func AcquisitionFunnel() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT
				funnel_stage,
				COUNT(DISTINCT user_id)::int AS users,
				COALESCE(SUM(impressions), 0)::int AS impressions,
				COALESCE(SUM(clicks), 0)::int AS clicks,
				COALESCE(SUM(conversions), 0)::int AS conversions
			FROM marketing
			GROUP BY funnel_stage
			ORDER BY
				CASE funnel_stage
					WHEN 'awareness' THEN 1
					WHEN 'consideration' THEN 2
					WHEN 'conversion' THEN 3
					WHEN 'retention' THEN 4
				END`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []funnelStage{}
		for rows.Next() {
			var fs funnelStage
			if err := rows.Scan(&fs.FunnelStage, &fs.Users, &fs.Impressions, &fs.Clicks, &fs.Conversions); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, fs)
		}

		c.JSON(http.StatusOK, out)
	}
}

type cohortRow struct {
	Cohort string `json:"cohort"`
	Month0 int    `json:"month_0"`
	Month1 *int   `json:"month_1"`
	Month2 *int   `json:"month_2"`
	Month3 *int   `json:"month_3"`
	Month4 *int   `json:"month_4"`
	Month5 *int   `json:"month_5"`
	Month6 *int   `json:"month_6"`
}

// ChurnCohorts returns retention for the last 12 monthly signup cohorts,
// oldest first. month_0 is the cohort size; months 1-6 hold the percentage
// of the cohort still active, or null when that relative month has not
// occurred yet.
func ChurnCohorts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT DISTINCT to_char(signup_date, 'YYYY-MM') AS cohort
			FROM users
			WHERE signup_date >= now() - interval '12 months'
			ORDER BY cohort ASC
			LIMIT 12`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		cohorts := []string{}
		for rows.Next() {
			var cohort string
			if err := rows.Scan(&cohort); err != nil {
				rows.Close()
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			cohorts = append(cohorts, cohort)
		}
		rows.Close()

		now := time.Now()
		out := []cohortRow{}
		for _, cohort := range cohorts {
			row := cohortRow{Cohort: cohort}

			err := database.Pool.QueryRow(ctx, `
				SELECT COUNT(*)::int FROM users
				WHERE to_char(signup_date, 'YYYY-MM') = $1`, cohort,
			).Scan(&row.Month0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			cells := []**int{nil, &row.Month1, &row.Month2, &row.Month3, &row.Month4, &row.Month5, &row.Month6}
			for month := 1; month <= 6; month++ {
				if !cohortObservable(cohort, month, now) {
					continue
				}
				var retained int
				err := database.Pool.QueryRow(ctx, `
					SELECT COUNT(*)::int FROM users
					WHERE to_char(signup_date, 'YYYY-MM') = $1
						AND churn_status = 'active'
						AND signup_date + make_interval(months => $2) <= now()`, cohort, month,
				).Scan(&retained)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				pct := retentionPct(retained, row.Month0)
				*cells[month] = &pct
			}
			out = append(out, row)
		}

		c.JSON(http.StatusOK, out)
	}
}

// FeatureUsage returns the heatmap payload: the top 10 feature tags by total
// usage with per-tier counts. Tags come from the comma-joined feature_usage
// strings and are split in Go after the grouped fetch.
func FeatureUsage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT u.subscription_tier, um.feature_usage, COUNT(*)::int AS usage_count
			FROM usage_metrics um
			JOIN users u ON um.user_id = u.id
			WHERE um.feature_usage IS NOT NULL AND um.feature_usage != ''
			GROUP BY u.subscription_tier, um.feature_usage
			ORDER BY usage_count DESC
			LIMIT 200`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		in := []tierFeatureCount{}
		for rows.Next() {
			var tfc tierFeatureCount
			if err := rows.Scan(&tfc.Tier, &tfc.FeatureUsage, &tfc.Count); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			in = append(in, tfc)
		}

		c.JSON(http.StatusOK, buildFeatureHeatmap(in))
	}
}

type locationStat struct {
	Location    string          `json:"location"`
	Coordinates geo.Coordinates `json:"coordinates"`
	UserCount   int             `json:"userCount"`
	ActiveUsers int             `json:"activeUsers"`
}

// UserLocations returns per-location user counts with map coordinates.
// Locations missing from the coordinates table are dropped.
func UserLocations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT
				location,
				COUNT(*)::int AS user_count,
				COALESCE(SUM(CASE WHEN churn_status = 'active' THEN 1 ELSE 0 END), 0)::int AS active_users
			FROM users
			WHERE location IS NOT NULL AND location != ''
			GROUP BY location
			ORDER BY user_count DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []locationStat{}
		for rows.Next() {
			var ls locationStat
			if err := rows.Scan(&ls.Location, &ls.UserCount, &ls.ActiveUsers); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			coords, ok := geo.Lookup(ls.Location)
			if !ok {
				continue
			}
			ls.Coordinates = coords
			out = append(out, ls)
		}

		c.JSON(http.StatusOK, out)
	}
}
