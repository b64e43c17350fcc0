package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// dateLayout is the wire format for date query parameters.
const dateLayout = "2006-01-02"

// statusFromError maps the application error taxonomy onto HTTP statuses.
// Conflicting state (stale version, illegal transition, cycles, children in
// the way, duplicate codes) is uniformly 409; formula failures are 422 since
// the request was well-formed but unprocessable.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConcurrency),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrCircularReference),
		errors.Is(err, apperrors.ErrChildrenExist),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrFormulaEvaluation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs and writes the error. Internal errors are not echoed to
// the client.
func respondError(c *gin.Context, err error, what string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", slog.String("operation", what), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + what})
		return
	}
	logger.Warn("request rejected", slog.String("operation", what), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// callerUserID fetches the authenticated user ID or writes a 401.
func callerUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserIDFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body, writing a 400 on failure. Validation
// failures from binding tags are reported per field.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("failed to bind JSON", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed: " + strings.Join(fields, "; ")})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
	return false
}

// dateQuery parses a required yyyy-mm-dd query parameter.
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: " + name})
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for " + name + ", expected " + dateLayout})
		return time.Time{}, false
	}
	return t, true
}

// optionalDateQuery parses an optional yyyy-mm-dd query parameter.
func optionalDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for " + name + ", expected " + dateLayout})
		return nil, false
	}
	return &t, true
}

// intQuery parses an optional integer query parameter with a default.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
