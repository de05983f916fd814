package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// RegisterEntryRoutes registers journal entry routes nested under a workplace group.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// rejectionKind names the failed acceptance check in rejection responses so
// clients can react without parsing messages.
func rejectionKind(err error) (string, bool) {
	switch {
	case errors.Is(err, ledger.ErrInsufficientLines):
		return "INSUFFICIENT_LINES", true
	case errors.Is(err, ledger.ErrUnknownAccount):
		return "UNKNOWN_ACCOUNT", true
	case errors.Is(err, ledger.ErrMalformedLine):
		return "MALFORMED_LINE", true
	case errors.Is(err, ledger.ErrDuplicateAccount):
		return "DUPLICATE_ACCOUNT", true
	case errors.Is(err, ledger.ErrUnbalanced):
		return "UNBALANCED", true
	}
	return "", false
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates a candidate entry and persists it when accepted. Rejections carry a kind naming the failed check.
// @Tags entries
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry body dto.CreateEntryRequest true "Candidate entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Entry rejected by an acceptance check"
// @Router /workplaces/{workplace_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		if kind, rejected := rejectionKind(err); rejected {
			logger.Info("Entry rejected",
				slog.String("workplace_id", workplaceID),
				slog.String("kind", kind),
				slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": kind, "error": err.Error()})
			return
		}
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to create entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries of the workplace, newest first, with token pagination
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /workplaces/{workplace_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), workplaceID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to list entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry and its lines by ID
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /workplaces/{workplace_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), workplaceID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts a reversing entry with swapped debit/credit sides and marks the original REVERSED
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 201 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Router /workplaces/{workplace_id}/entries/{entry_id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversing, err := h.entryService.ReverseEntry(c.Request.Context(), workplaceID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Entry already reversed"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to reverse entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}
