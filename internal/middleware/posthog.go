package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils"
)

// ledgerEvents names the analytics event for each mutating route.
// Reads are not tracked.
var ledgerEvents = map[string]string{
	"POST /api/v1/accounts":                    "account_created",
	"PATCH /api/v1/accounts/:id":               "account_updated",
	"POST /api/v1/accounts/:id/deactivate":     "account_deactivated",
	"POST /api/v1/journal-entries":             "journal_entry_posted",
	"POST /api/v1/journal-entries/:id/void":    "journal_entry_voided",
	"POST /api/v1/payroll/batches":             "payroll_batch_created",
	"POST /api/v1/payroll/batches/:id/accrual": "payroll_accrual_posted",
	"POST /api/v1/payroll/batches/:id/payment": "payroll_payment_posted",
	"PATCH /api/v1/payroll/batches/:id/status": "payroll_batch_status_changed",
	"POST /api/v1/payroll/records/:id/paid":    "payroll_record_paid",
}

// LedgerEventName returns the analytics event for a request, or "" when the
// route is not tracked.
func LedgerEventName(method, fullPath string) string {
	return ledgerEvents[method+" "+fullPath]
}

// PosthogMiddleware reports successful ledger mutations to PostHog, keyed by the acting user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := LedgerEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["target_id"] = id
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			props["idempotency_key"] = key
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}
