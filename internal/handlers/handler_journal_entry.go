package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// journalEntryHandler handles HTTP requests for the journal-entry lifecycle.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
}

func newJournalEntryHandler(es portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{entryService: es}
}

// registerJournalEntryRoutes registers the journal-entry CRUD and lifecycle verbs.
func registerJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(entryService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/:entry_id/submit", h.submitEntry)
		entries.POST("/:entry_id/approve", h.approveEntry)
		entries.POST("/:entry_id/reject", h.rejectEntry)
		entries.POST("/:entry_id/reopen", h.reopenEntry)
		entries.POST("/:entry_id/confirm", h.confirmEntry)
	}
}

func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create journal entry")
		return
	}

	logger.Info("journal entry created", slog.String("journal_entry_id", entry.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) listEntries(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	params := dto.ListEntriesParams{
		From:   from,
		To:     to,
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EntryStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + raw})
			return
		}
		params.Status = &status
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToJournalEntryResponses(entries)})
}

func (h *journalEntryHandler) getEntry(c *gin.Context) {
	entry, err := h.entryService.GetEntryByID(c.Request.Context(), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, err, "update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	var req dto.EntryActionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), c.Param("entry_id"), req.Version, userID); err != nil {
		respondError(c, err, "delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// lifecycleAction factors the shared shape of the submit/approve/reopen/confirm verbs.
func (h *journalEntryHandler) lifecycleAction(c *gin.Context, what string,
	action func(ctx *gin.Context, entryID string, version int64, userID string) (*domain.JournalEntry, error)) {
	var req dto.EntryActionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	entry, err := action(c, c.Param("entry_id"), req.Version, userID)
	if err != nil {
		respondError(c, err, what)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) submitEntry(c *gin.Context) {
	h.lifecycleAction(c, "submit journal entry",
		func(c *gin.Context, entryID string, version int64, userID string) (*domain.JournalEntry, error) {
			return h.entryService.SubmitEntry(c.Request.Context(), entryID, version, userID)
		})
}

func (h *journalEntryHandler) approveEntry(c *gin.Context) {
	h.lifecycleAction(c, "approve journal entry",
		func(c *gin.Context, entryID string, version int64, userID string) (*domain.JournalEntry, error) {
			return h.entryService.ApproveEntry(c.Request.Context(), entryID, version, userID)
		})
}

func (h *journalEntryHandler) rejectEntry(c *gin.Context) {
	var req dto.RejectEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.RejectEntry(c.Request.Context(), c.Param("entry_id"), req.Version, req.Reason, userID)
	if err != nil {
		respondError(c, err, "reject journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) reopenEntry(c *gin.Context) {
	h.lifecycleAction(c, "reopen journal entry",
		func(c *gin.Context, entryID string, version int64, userID string) (*domain.JournalEntry, error) {
			return h.entryService.ReopenEntry(c.Request.Context(), entryID, version, userID)
		})
}

func (h *journalEntryHandler) confirmEntry(c *gin.Context) {
	h.lifecycleAction(c, "confirm journal entry",
		func(c *gin.Context, entryID string, version int64, userID string) (*domain.JournalEntry, error) {
			return h.entryService.ConfirmEntry(c.Request.Context(), entryID, version, userID)
		})
}
