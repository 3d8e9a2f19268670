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

// ListMarketing returns paginated marketing touches. The user join is a LEFT
// JOIN because user_id is nullable; touches without a user still appear.
func ListMarketing(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := filters.ParsePage(c.Query("page"), c.Query("limit"), cfg.MaxPageSize)
		f := filters.New().
			Eq("m.acquisition_channel", c.Query("channel")).
			Eq("m.funnel_stage", c.Query("stage")).
			Eq("m.campaign_name", c.Query("campaign")).
			DateFrom("m.campaign_date", c.Query("dateFrom")).
			DateTo("m.campaign_date", c.Query("dateTo"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		from := ` FROM marketing m LEFT JOIN users u ON m.user_id = u.id`
		var total int
		if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*)`+from+f.Where(), f.Args()...).Scan(&total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		query := fmt.Sprintf(`
			SELECT m.id, m.user_id, m.campaign_name, m.acquisition_channel, m.campaign_date,
				m.funnel_stage, m.conversion_value::float8, m.cost::float8,
				m.impressions, m.clicks, m.conversions, u.name, u.email`+from+`%s
			ORDER BY m.campaign_date DESC
			LIMIT $%d OFFSET $%d`, f.Where(), f.NextArg(), f.NextArg()+1)
		rows, err := database.Pool.Query(ctx, query, append(f.Args(), limit, offset)...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []models.MarketingTouch{}
		for rows.Next() {
			var m models.MarketingTouch
			if err := rows.Scan(&m.ID, &m.UserID, &m.CampaignName, &m.AcquisitionChannel, &m.CampaignDate,
				&m.FunnelStage, &m.ConversionValue, &m.Cost,
				&m.Impressions, &m.Clicks, &m.Conversions, &m.UserName, &m.UserEmail); err != nil {
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

// MarketingStatsSummary returns cross-campaign totals. CTR and conversion
// rate are null (not zero) when their denominator sums to zero.
func MarketingStatsSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var (
			impressions, clicks, conversions int
			cost, conversionValue            float64
			avgCTR, avgConversionRate        *float64
		)
		err := database.Pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(impressions), 0)::int AS total_impressions,
				COALESCE(SUM(clicks), 0)::int AS total_clicks,
				COALESCE(SUM(conversions), 0)::int AS total_conversions,
				COALESCE(SUM(cost), 0)::float8 AS total_cost,
				COALESCE(SUM(conversion_value), 0)::float8 AS total_conversion_value,
				(SUM(clicks)::float8 / NULLIF(SUM(impressions), 0) * 100)::float8 AS avg_ctr,
				(SUM(conversions)::float8 / NULLIF(SUM(clicks), 0) * 100)::float8 AS avg_conversion_rate
			FROM marketing`,
		).Scan(&impressions, &clicks, &conversions, &cost, &conversionValue, &avgCTR, &avgConversionRate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_impressions":      impressions,
			"total_clicks":           clicks,
			"total_conversions":      conversions,
			"total_cost":             cost,
			"total_conversion_value": conversionValue,
			"avg_ctr":                avgCTR,
			"avg_conversion_rate":    avgConversionRate,
		})
	}
}

type campaignStats struct {
	CampaignName       string   `json:"campaign_name"`
	AcquisitionChannel string   `json:"acquisition_channel"`
	TotalImpressions   int      `json:"total_impressions"`
	TotalClicks        int      `json:"total_clicks"`
	TotalConversions   int      `json:"total_conversions"`
	TotalCost          float64  `json:"total_cost"`
	TotalValue         float64  `json:"total_value"`
	CTR                *float64 `json:"ctr"`
	ConversionRate     *float64 `json:"conversion_rate"`
}

// MarketingStatsCampaigns returns per-campaign performance grouped by
// campaign name and channel, best converting first.
func MarketingStatsCampaigns() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT
				campaign_name,
				acquisition_channel,
				COALESCE(SUM(impressions), 0)::int AS total_impressions,
				COALESCE(SUM(clicks), 0)::int AS total_clicks,
				COALESCE(SUM(conversions), 0)::int AS total_conversions,
				COALESCE(SUM(cost), 0)::float8 AS total_cost,
				COALESCE(SUM(conversion_value), 0)::float8 AS total_value,
				(SUM(clicks)::float8 / NULLIF(SUM(impressions), 0) * 100)::float8 AS ctr,
				(SUM(conversions)::float8 / NULLIF(SUM(clicks), 0) * 100)::float8 AS conversion_rate
			FROM marketing
			GROUP BY campaign_name, acquisition_channel
			ORDER BY total_conversions DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []campaignStats{}
		for rows.Next() {
			var cs campaignStats
			if err := rows.Scan(&cs.CampaignName, &cs.AcquisitionChannel, &cs.TotalImpressions,
				&cs.TotalClicks, &cs.TotalConversions, &cs.TotalCost, &cs.TotalValue,
				&cs.CTR, &cs.ConversionRate); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, cs)
		}

		c.JSON(http.StatusOK, out)
	}
}
