package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"saasmetrics/backend/config"
	"saasmetrics/backend/database"
	"saasmetrics/backend/filters"
	"saasmetrics/backend/models"
)

// ListUsage returns paginated usage metric rows joined with the owning user.
func ListUsage(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := filters.ParsePage(c.Query("page"), c.Query("limit"), cfg.MaxPageSize)
		f := filters.New().
			DateFrom("um.metric_date", c.Query("dateFrom")).
			DateTo("um.metric_date", c.Query("dateTo")).
			Min("um.login_count", c.Query("minLogins")).
			Max("um.login_count", c.Query("maxLogins"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		from := ` FROM usage_metrics um JOIN users us ON um.user_id = us.id`
		var total int
		if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*)`+from+f.Where(), f.Args()...).Scan(&total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		query := fmt.Sprintf(`
			SELECT um.id, um.user_id, um.metric_date, um.login_count, COALESCE(um.feature_usage, ''),
				um.features_used_count, um.support_tickets_opened, um.support_tickets_resolved,
				um.session_duration_minutes::float8, us.name, us.email`+from+`%s
			ORDER BY um.metric_date DESC
			LIMIT $%d OFFSET $%d`, f.Where(), f.NextArg(), f.NextArg()+1)
		rows, err := database.Pool.Query(ctx, query, append(f.Args(), limit, offset)...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []models.UsageMetric{}
		for rows.Next() {
			var m models.UsageMetric
			if err := rows.Scan(&m.ID, &m.UserID, &m.MetricDate, &m.LoginCount, &m.FeatureUsage,
				&m.FeaturesUsedCount, &m.SupportTicketsOpened, &m.SupportTicketsResolved,
				&m.SessionDurationMinutes, &m.UserName, &m.UserEmail); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, m)
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       out,
			"pagination": filters.NewPagination(page, limit, total),
		})
	}
}

// UsageStatsSummary returns aggregate login, feature and support counts.
func UsageStatsSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var (
			totalLogins, totalFeaturesUsed, ticketsOpened, ticketsResolved int
			avgLogins, avgSessionDuration                                  *float64
		)
		err := database.Pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(login_count), 0)::int AS total_logins,
				AVG(login_count)::float8 AS avg_logins_per_record,
				COALESCE(SUM(features_used_count), 0)::int AS total_features_used,
				COALESCE(SUM(support_tickets_opened), 0)::int AS total_tickets_opened,
				COALESCE(SUM(support_tickets_resolved), 0)::int AS total_tickets_resolved,
				AVG(session_duration_minutes)::float8 AS avg_session_duration
			FROM usage_metrics`,
		).Scan(&totalLogins, &avgLogins, &totalFeaturesUsed, &ticketsOpened, &ticketsResolved, &avgSessionDuration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_logins":           totalLogins,
			"avg_logins_per_record":  avgLogins,
			"total_features_used":    totalFeaturesUsed,
			"total_tickets_opened":   ticketsOpened,
			"total_tickets_resolved": ticketsResolved,
			"avg_session_duration":   avgSessionDuration,
		})
	}
}

type featureUsageCount struct {
	FeatureUsage string `json:"feature_usage"`
	UsageCount   int    `json:"usage_count"`
}

// UsageStatsFeatures returns the 20 most frequent raw feature_usage strings.
// The strings stay comma-joined here; the dashboard heatmap splits them.
func UsageStatsFeatures() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT feature_usage, COUNT(*)::int AS usage_count
			FROM usage_metrics
			WHERE feature_usage IS NOT NULL AND feature_usage != ''
			GROUP BY feature_usage
			ORDER BY usage_count DESC
			LIMIT 20`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []featureUsageCount{}
		for rows.Next() {
			var fc featureUsageCount
			if err := rows.Scan(&fc.FeatureUsage, &fc.UsageCount); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, fc)
		}

		c.JSON(http.StatusOK, out)
	}
}
