package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
)

func TestHealth(t *testing.T) {
	c := qt.New(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	c.Assert(json.Unmarshal(w.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body.Status, qt.Equals, "ok")

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	c.Assert(err, qt.IsNil)
}
