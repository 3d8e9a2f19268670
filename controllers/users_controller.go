package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"saasmetrics/backend/config"
	"saasmetrics/backend/database"
	"saasmetrics/backend/filters"
	"saasmetrics/backend/models"
)

// ListUsers returns paginated users, filterable by tier, churn status and
// signup date range.
func ListUsers(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := filters.ParsePage(c.Query("page"), c.Query("limit"), cfg.MaxPageSize)
		f := filters.New().
			Eq("subscription_tier", c.Query("tier")).
			Eq("churn_status", c.Query("status")).
			DateFrom("signup_date", c.Query("signupDateFrom")).
			DateTo("signup_date", c.Query("signupDateTo"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var total int
		if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+f.Where(), f.Args()...).Scan(&total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		query := fmt.Sprintf(`
			SELECT id, email, name, signup_date, subscription_tier, churn_status, location
			FROM users%s
			ORDER BY signup_date DESC
			LIMIT $%d OFFSET $%d`, f.Where(), f.NextArg(), f.NextArg()+1)
		rows, err := database.Pool.Query(ctx, query, append(f.Args(), limit, offset)...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		out := []models.User{}
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.SignupDate, &u.SubscriptionTier, &u.ChurnStatus, &u.Location); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out = append(out, u)
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       out,
			"pagination": filters.NewPagination(page, limit, total),
		})
	}
}

// GetUser returns a single user by id.
func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var u models.User
		err = database.Pool.QueryRow(ctx, `
			SELECT id, email, name, signup_date, subscription_tier, churn_status, location
			FROM users WHERE id = $1`, id,
		).Scan(&u.ID, &u.Email, &u.Name, &u.SignupDate, &u.SubscriptionTier, &u.ChurnStatus, &u.Location)
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// UserStatsSummary returns user counts broken down by churn status and tier.
func UserStatsSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var (
			totalUsers, activeUsers, churnedUsers, atRiskUsers      int
			freeTier, starterTier, professionalTier, enterpriseTier int
		)
		err := database.Pool.QueryRow(ctx, `
			SELECT
				COUNT(*)::int AS total_users,
				COALESCE(SUM(CASE WHEN churn_status = 'active' THEN 1 ELSE 0 END), 0)::int AS active_users,
				COALESCE(SUM(CASE WHEN churn_status = 'churned' THEN 1 ELSE 0 END), 0)::int AS churned_users,
				COALESCE(SUM(CASE WHEN churn_status = 'at_risk' THEN 1 ELSE 0 END), 0)::int AS at_risk_users,
				COALESCE(SUM(CASE WHEN subscription_tier = 'free' THEN 1 ELSE 0 END), 0)::int AS free_tier,
				COALESCE(SUM(CASE WHEN subscription_tier = 'starter' THEN 1 ELSE 0 END), 0)::int AS starter_tier,
				COALESCE(SUM(CASE WHEN subscription_tier = 'professional' THEN 1 ELSE 0 END), 0)::int AS professional_tier,
				COALESCE(SUM(CASE WHEN subscription_tier = 'enterprise' THEN 1 ELSE 0 END), 0)::int AS enterprise_tier
			FROM users`,
		).Scan(&totalUsers, &activeUsers, &churnedUsers, &atRiskUsers,
			&freeTier, &starterTier, &professionalTier, &enterpriseTier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":       totalUsers,
			"active_users":      activeUsers,
			"churned_users":     churnedUsers,
			"at_risk_users":     atRiskUsers,
			"free_tier":         freeTier,
			"starter_tier":      starterTier,
			"professional_tier": professionalTier,
			"enterprise_tier":   enterpriseTier,
		})
	}
}
