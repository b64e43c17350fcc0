package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// structureHandler handles HTTP requests for the chart-of-accounts tree.
type structureHandler struct {
	structureService portssvc.AccountStructureSvcFacade
}

func newStructureHandler(ss portssvc.AccountStructureSvcFacade) *structureHandler {
	return &structureHandler{structureService: ss}
}

// registerStructureRoutes registers the hierarchy routes.
func registerStructureRoutes(rg *gin.RouterGroup, structureService portssvc.AccountStructureSvcFacade) {
	h := newStructureHandler(structureService)

	structures := rg.Group("/account-structures")
	{
		structures.POST("", h.registerStructure)
		structures.GET("", h.listStructures)
		structures.GET("/:account_code", h.getStructure)
		structures.PUT("/:account_code/parent", h.reparentStructure)
		structures.DELETE("/:account_code", h.removeStructure)
	}
}

func (h *structureHandler) registerStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterStructureRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	structure, err := h.structureService.Register(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "register account structure")
		return
	}

	logger.Info("account structure registered",
		slog.String("account_code", structure.AccountCode),
		slog.String("account_path", structure.AccountPath))
	c.JSON(http.StatusCreated, structure)
}

func (h *structureHandler) listStructures(c *gin.Context) {
	structures, err := h.structureService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list account structures")
		return
	}
	c.JSON(http.StatusOK, gin.H{"structures": structures})
}

func (h *structureHandler) getStructure(c *gin.Context) {
	structure, err := h.structureService.GetByCode(c.Request.Context(), c.Param("account_code"))
	if err != nil {
		respondError(c, err, "get account structure")
		return
	}
	c.JSON(http.StatusOK, structure)
}

func (h *structureHandler) reparentStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReparentStructureRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	structure, err := h.structureService.Reparent(c.Request.Context(), c.Param("account_code"), req, userID)
	if err != nil {
		respondError(c, err, "re-parent account structure")
		return
	}

	logger.Info("account structure re-parented",
		slog.String("account_code", structure.AccountCode),
		slog.String("account_path", structure.AccountPath))
	c.JSON(http.StatusOK, structure)
}

func (h *structureHandler) removeStructure(c *gin.Context) {
	if err := h.structureService.Remove(c.Request.Context(), c.Param("account_code")); err != nil {
		respondError(c, err, "remove account structure")
		return
	}
	c.Status(http.StatusNoContent)
}
