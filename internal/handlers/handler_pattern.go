package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// patternHandler handles HTTP requests for auto-journal patterns.
type patternHandler struct {
	autoJournalService portssvc.AutoJournalSvcFacade
}

func newPatternHandler(ajs portssvc.AutoJournalSvcFacade) *patternHandler {
	return &patternHandler{autoJournalService: ajs}
}

// registerPatternRoutes registers pattern CRUD and the generation verb.
func registerPatternRoutes(rg *gin.RouterGroup, autoJournalService portssvc.AutoJournalSvcFacade) {
	h := newPatternHandler(autoJournalService)

	patterns := rg.Group("/auto-journal-patterns")
	{
		patterns.POST("", h.createPattern)
		patterns.GET("", h.listPatterns)
		patterns.GET("/:pattern_code", h.getPattern)
		patterns.PUT("/:pattern_code", h.updatePattern)
		patterns.DELETE("/:pattern_code", h.deletePattern)
		patterns.POST("/:pattern_code/generate", h.generateEntry)
	}
}

func (h *patternHandler) createPattern(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePatternRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	pattern, err := h.autoJournalService.CreatePattern(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create auto-journal pattern")
		return
	}

	logger.Info("auto-journal pattern created", slog.String("pattern_code", pattern.PatternCode))
	c.JSON(http.StatusCreated, pattern)
}

func (h *patternHandler) listPatterns(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	patterns, err := h.autoJournalService.ListPatterns(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "list auto-journal patterns")
		return
	}
	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}

func (h *patternHandler) getPattern(c *gin.Context) {
	pattern, err := h.autoJournalService.GetPattern(c.Request.Context(), c.Param("pattern_code"))
	if err != nil {
		respondError(c, err, "get auto-journal pattern")
		return
	}
	c.JSON(http.StatusOK, pattern)
}

func (h *patternHandler) updatePattern(c *gin.Context) {
	var req dto.UpdatePatternRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	pattern, err := h.autoJournalService.UpdatePattern(c.Request.Context(), c.Param("pattern_code"), req, userID)
	if err != nil {
		respondError(c, err, "update auto-journal pattern")
		return
	}
	c.JSON(http.StatusOK, pattern)
}

func (h *patternHandler) deletePattern(c *gin.Context) {
	if err := h.autoJournalService.DeletePattern(c.Request.Context(), c.Param("pattern_code")); err != nil {
		respondError(c, err, "delete auto-journal pattern")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *patternHandler) generateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateFromPatternRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	entry, err := h.autoJournalService.Generate(c.Request.Context(), c.Param("pattern_code"), req, userID)
	if err != nil {
		respondError(c, err, "generate journal entry from pattern")
		return
	}

	logger.Info("journal entry generated from pattern",
		slog.String("pattern_code", c.Param("pattern_code")),
		slog.String("journal_entry_id", entry.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
