package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
)

// IdempotencyKeyHeader carries the client's idempotency key for postings.
const IdempotencyKeyHeader = "Idempotency-Key"

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/void", h.voidEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and posts a balanced journal entry. Replaying a request with the same idempotency key returns the entry already written.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Idempotency key; overrides the body field"
// @Param   entry body dto.PostJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced, malformed or empty entry, or inactive account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); key != "" {
		req.IdempotencyKey = &key
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to post journal entry", slog.Int("lines", len(req.Lines)))

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))

	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first, without their lines.
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Filter by status" Enums(POSTED, VOID)
// @Param   sourceReference query string false "Filter by source reference"
// @Param   accountID query string false "Only entries touching this account"
// @Param   from query string false "Entry date from (YYYY-MM-DD)"
// @Param   to query string false "Entry date to, inclusive (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// voidEntry godoc
// @Summary Void a journal entry
// @Description Marks a POSTED entry VOID and posts a reversal with every line's sides swapped. The original lines are never changed.
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.VoidJournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry already voided"
// @Failure 500 {object} map[string]string "Failed to void journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	reversal, err := h.journalService.VoidEntry(c.Request.Context(), entryID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to void journal entry")
		return
	}

	voided, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided", slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusOK, dto.VoidJournalEntryResponse{
		Voided:   dto.ToJournalEntryResponse(voided),
		Reversal: dto.ToJournalEntryResponse(reversal),
	})
}
