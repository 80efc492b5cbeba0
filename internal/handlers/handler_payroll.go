package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
)

// payrollHandler handles HTTP requests related to payroll batches and records.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: ps,
	}
}

// RegisterPayrollRoutes registers routes related to payroll.
func RegisterPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll")
	{
		batches := payroll.Group("/batches")
		batches.POST("", h.createBatch)
		batches.GET("", h.listBatches)
		batches.GET("/:id", h.getBatch)
		batches.GET("/:id/events", h.listBatchEvents)
		batches.POST("/:id/accrual", h.postBatchAccrual)
		batches.POST("/:id/payment", h.postBatchPayment)
		batches.PATCH("/:id/status", h.updateBatchStatus)

		payroll.POST("/records/:id/paid", h.markRecordPaid)
	}
}

// writeBatch answers with the batch and its records.
func (h *payrollHandler) writeBatch(c *gin.Context, logger *slog.Logger, status int, batchID string) {
	batch, err := h.payrollService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payroll batch")
		return
	}
	records, err := h.payrollService.ListBatchRecords(c.Request.Context(), batchID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payroll batch")
		return
	}
	c.JSON(status, dto.ToPayrollBatchResponse(batch, records))
}

// createBatch godoc
// @Summary Create a payroll batch
// @Description Opens a DRAFT batch with one PENDING record per employee.
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   batch body dto.CreatePayrollBatchRequest true "Batch details"
// @Success 201 {object} dto.PayrollBatchResponse
// @Failure 400 {object} map[string]string "Invalid input or unusable account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create payroll batch"
// @Security BearerAuth
// @Router /payroll/batches [post]
func (h *payrollHandler) createBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayrollBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayrollBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create payroll batch", slog.String("period", req.Period), slog.Int("records", len(req.Records)))

	batch, err := h.payrollService.CreateBatch(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payroll batch")
		return
	}

	logger.Info("Payroll batch created", slog.String("batch_id", batch.BatchID))
	h.writeBatch(c, logger, http.StatusCreated, batch.BatchID)
}

// getBatch godoc
// @Summary Get a payroll batch
// @Description Returns the batch with its records and net pay total.
// @Tags payroll
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.PayrollBatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payroll batch"
// @Security BearerAuth
// @Router /payroll/batches/{id} [get]
func (h *payrollHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("batch_id", c.Param("id")))
	h.writeBatch(c, logger, http.StatusOK, c.Param("id"))
}

// listBatches godoc
// @Summary List payroll batches
// @Description Lists batches newest first, without their records.
// @Tags payroll
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   period query string false "Filter by period (YYYY-MM)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPayrollBatchesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list payroll batches"
// @Security BearerAuth
// @Router /payroll/batches [get]
func (h *payrollHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPayrollBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayrollBatches", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.payrollService.ListBatches(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list payroll batches")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listBatchEvents godoc
// @Summary Get a payroll batch's history
// @Description Lists every status change of the batch, oldest first.
// @Tags payroll
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {array} dto.PayrollBatchEventResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll batch not found"
// @Failure 500 {object} map[string]string "Failed to list payroll batch events"
// @Security BearerAuth
// @Router /payroll/batches/{id}/events [get]
func (h *payrollHandler) listBatchEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("batch_id", c.Param("id")))

	events, err := h.payrollService.ListBatchEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list payroll batch events")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollBatchEventResponses(events))
}

// postBatchAccrual godoc
// @Summary Post a payroll batch's accrual
// @Description Posts the expense/liability entry of an APPROVED batch. Repeating the call returns the batch unchanged.
// @Tags payroll
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.PayrollBatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll batch not found"
// @Failure 409 {object} map[string]string "Batch is not APPROVED"
// @Failure 500 {object} map[string]string "Failed to post payroll accrual"
// @Security BearerAuth
// @Router /payroll/batches/{id}/accrual [post]
func (h *payrollHandler) postBatchAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("batch_id", batchID))

	batch, err := h.payrollService.PostBatchAccrual(c.Request.Context(), batchID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payroll accrual")
		return
	}
	h.writeBatch(c, logger, http.StatusOK, batch.BatchID)
}

// postBatchPayment godoc
// @Summary Post a payroll batch's payment
// @Description Posts the liability settlement entry of a POSTED_ACCRUAL batch. Repeating the call returns the batch unchanged.
// @Tags payroll
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.PayrollBatchResponse
// @Failure 400 {object} map[string]string "No usable payment account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll batch not found"
// @Failure 409 {object} map[string]string "Batch is not POSTED_ACCRUAL"
// @Failure 500 {object} map[string]string "Failed to post payroll payment"
// @Security BearerAuth
// @Router /payroll/batches/{id}/payment [post]
func (h *payrollHandler) postBatchPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("batch_id", batchID))

	batch, err := h.payrollService.PostBatchPayment(c.Request.Context(), batchID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payroll payment")
		return
	}
	h.writeBatch(c, logger, http.StatusOK, batch.BatchID)
}

// updateBatchStatus godoc
// @Summary Change a payroll batch's status
// @Description Applies a transition that needs no ledger posting (approve, cancel, or close as PAID).
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   status body dto.UpdateBatchStatusRequest true "Target status"
// @Success 200 {object} dto.PayrollBatchResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll batch not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to update payroll batch status"
// @Security BearerAuth
// @Router /payroll/batches/{id}/status [patch]
func (h *payrollHandler) updateBatchStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	var req dto.UpdateBatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBatchStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("batch_id", batchID), slog.String("target_status", string(req.Status)))

	batch, err := h.payrollService.UpdateBatchStatus(c.Request.Context(), batchID, req.Status, actorID, req.Notes)
	if err != nil {
		respondError(c, logger, err, "Failed to update payroll batch status")
		return
	}

	logger.Info("Payroll batch status changed")
	h.writeBatch(c, logger, http.StatusOK, batch.BatchID)
}

// markRecordPaid godoc
// @Summary Mark a payroll record paid
// @Description Settles one record of a POSTED_PAYMENT batch. The batch becomes PAID with its last record.
// @Tags payroll
// @Produce  json
// @Param   id path string true "Record ID"
// @Success 200 {object} dto.PayrollRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payroll record not found"
// @Failure 409 {object} map[string]string "Batch payment not posted"
// @Failure 500 {object} map[string]string "Failed to mark payroll record paid"
// @Security BearerAuth
// @Router /payroll/records/{id}/paid [post]
func (h *payrollHandler) markRecordPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("record_id", recordID))

	record, err := h.payrollService.MarkPayrollRecordPaid(c.Request.Context(), recordID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to mark payroll record paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}
