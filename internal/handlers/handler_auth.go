package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/utils"
	"github.com/finbooks/finbooks_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// authHandler handles registration and login.
type authHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

func newAuthHandler(userService portssvc.UserSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := newAuthHandler(userService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account with a username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		logger.Error("Failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.JWTExpiryDuration),
		UserID:    user.UserID,
	})
}
