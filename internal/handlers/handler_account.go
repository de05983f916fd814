package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// registerAccountRoutes registers account routes nested under a workplace group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Adds an account to the workplace chart of accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account body dto.CreateAccountRequest true "New account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /workplaces/{workplace_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts of the workplace, ordered by code
// @Tags accounts
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Param code query string false "Return only the account with this code"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /workplaces/{workplace_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Code lookup returns a single-element list so clients have one shape to parse.
	if code := c.Query("code"); code != "" {
		account, err := h.accountService.GetAccountByCode(c.Request.Context(), workplaceID, code, userID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			case errors.Is(err, apperrors.ErrForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			default:
				logger.Error("Failed to get account by code", slog.String("error", err.Error()), slog.String("code", code))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
			}
			return
		}
		c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: []dto.AccountResponse{dto.ToAccountResponse(account)}})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), workplaceID, userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves a single account by ID
// @Tags accounts
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /workplaces/{workplace_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), workplaceID, accountID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, description or active flag; the account type is immutable
// @Tags accounts
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /workplaces/{workplace_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), workplaceID, accountID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks the account inactive; it stays in reports but rejects new postings
// @Tags accounts
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /workplaces/{workplace_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), workplaceID, accountID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
