package routes_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"saasmetrics/backend/config"
	"saasmetrics/backend/routes"
)

func TestRegisterWiresEveryEndpoint(t *testing.T) {
	c := qt.New(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.Register(r, config.Config{MaxPageSize: 500})

	want := []string{
		"/health",
		"/api/health",
		"/api/users",
		"/api/users/:id",
		"/api/users/stats/summary",
		"/api/revenue",
		"/api/revenue/stats/summary",
		"/api/revenue/stats/monthly",
		"/api/usage",
		"/api/usage/stats/summary",
		"/api/usage/stats/features",
		"/api/marketing",
		"/api/marketing/stats/summary",
		"/api/marketing/stats/campaigns",
		"/api/dashboard/kpis",
		"/api/dashboard/user-growth",
		"/api/dashboard/revenue-trends",
		"/api/dashboard/acquisition-funnel",
		"/api/dashboard/churn-cohorts",
		"/api/dashboard/feature-usage",
		"/api/dashboard/user-locations",
	}

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		c.Assert(route.Method, qt.Equals, "GET")
		registered[route.Path] = true
	}

	for _, path := range want {
		c.Assert(registered[path], qt.IsTrue, qt.Commentf("missing route %s", path))
	}
	c.Assert(r.Routes(), qt.HasLen, len(want))
}
