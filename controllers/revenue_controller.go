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

// ListRevenue returns paginated transactions joined with the owning user.
// Amount filters compare the signed stored value, so refunds sort below zero.
func ListRevenue(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := filters.ParsePage(c.Query("page"), c.Query("limit"), cfg.MaxPageSize)
		f := filters.New().
			Eq("r.transaction_type", c.Query("type")).
			Eq("r.status", c.Query("status")).
			Eq("r.subscription_tier", c.Query("tier")).
			DateFrom("r.transaction_date", c.Query("dateFrom")).
			DateTo("r.transaction_date", c.Query("dateTo")).
			Min("r.amount", c.Query("minAmount")).
			Max("r.amount", c.Query("maxAmount"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		from := ` FROM revenue r JOIN users u ON r.user_id = u.id`
		var total int
		if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*)`+from+f.Where(), f.Args()...).Scan(&total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		query := fmt.Sprintf(`
			SELECT r.id, r.user_id, r.transaction_date, r.transaction_type, r.amount::float8,
				r.subscription_tier, r.status, u.name, u.email`+from+`%s
			ORDER BY r.transaction_date DESC
			LIMIT $%d OFFSET $%d`, f.Where(), f.NextArg(), f.NextArg()+1)
		rows, err := database.Pool.Query(ctx, query, append(f.Args(), limit, offset)...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []models.Transaction{}
		for rows.Next() {
			var tx models.Transaction
			if err := rows.Scan(&tx.ID, &tx.UserID, &tx.TransactionDate, &tx.TransactionType, &tx.Amount,
				&tx.SubscriptionTier, &tx.Status, &tx.UserName, &tx.UserEmail); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, tx)
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       out,
			"pagination": filters.NewPagination(page, limit, total),
		})
	}
}

// RevenueStatsSummary returns revenue totals by type. Refund totals keep
// their stored (negative) sign here; the dashboard trend reports magnitudes.
func RevenueStatsSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var (
			totalMRR, totalOneTime, totalRefunds, totalRevenue float64
			totalTransactions                                  int
			avgTransaction                                     *float64
		)
		err := database.Pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(CASE WHEN transaction_type = 'mrr' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS total_mrr,
				COALESCE(SUM(CASE WHEN transaction_type = 'one_time' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS total_one_time,
				COALESCE(SUM(CASE WHEN transaction_type = 'refund' THEN amount ELSE 0 END), 0)::float8 AS total_refunds,
				COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS total_revenue,
				COUNT(*)::int AS total_transactions,
				AVG(CASE WHEN status = 'completed' THEN amount END)::float8 AS avg_transaction
			FROM revenue`,
		).Scan(&totalMRR, &totalOneTime, &totalRefunds, &totalRevenue, &totalTransactions, &avgTransaction)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_mrr":          totalMRR,
			"total_one_time":     totalOneTime,
			"total_refunds":      totalRefunds,
			"total_revenue":      totalRevenue,
			"total_transactions": totalTransactions,
			"avg_transaction":    avgTransaction,
		})
	}
}

type monthlyRevenue struct {
	Month            string  `json:"month"`
	TotalRevenue     float64 `json:"total_revenue"`
	MRR              float64 `json:"mrr"`
	TransactionCount int     `json:"transaction_count"`
}

// RevenueStatsMonthly returns the last 12 transaction months oldest-first.
// The fetch is newest-first so the LIMIT picks the most recent months, then
// the slice is reversed.
func RevenueStatsMonthly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `
			SELECT
				to_char(transaction_date, 'YYYY-MM') AS month,
				COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS total_revenue,
				COALESCE(SUM(CASE WHEN transaction_type = 'mrr' AND status = 'completed' THEN amount ELSE 0 END), 0)::float8 AS mrr,
				COUNT(*)::int AS transaction_count
			FROM revenue
			GROUP BY month
			ORDER BY month DESC
			LIMIT 12`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []monthlyRevenue{}
		for rows.Next() {
			var m monthlyRevenue
			if err := rows.Scan(&m.Month, &m.TotalRevenue, &m.MRR, &m.TransactionCount); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, m)
		}
		reverse(out)

		c.JSON(http.StatusOK, out)
	}
}
