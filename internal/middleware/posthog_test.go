package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEventName(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/v1/accounts", "account_created"},
		{http.MethodPost, "/api/v1/journal-entries/:id/void", "journal_entry_voided"},
		{http.MethodPost, "/api/v1/payroll/batches/:id/accrual", "payroll_accrual_posted"},
		{http.MethodPost, "/api/v1/payroll/records/:id/paid", "payroll_record_paid"},
		{http.MethodGet, "/api/v1/accounts", ""},
		{http.MethodGet, "/api/v1/reports/summary", ""},
		{http.MethodPost, "/api/v1/unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, LedgerEventName(tt.method, tt.path))
		})
	}
}

func TestPosthogMiddleware_DisabledClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/accounts", PosthogMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
