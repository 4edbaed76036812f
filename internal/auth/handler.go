package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"registration-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   *Service
	logger    *slog.Logger
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
		metrics:   m,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/admin/login", h.Login)
	router.GET("/admin/verify", h.Verify)
	router.POST("/admin/logout", h.Logout)
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login checks the shared admin password and, on success, sets the session
// cookie. A mismatch yields a generic 403 and no cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || h.validator.Struct(&req) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			h.logger.Warn("admin login rejected")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	SetSessionCookie(c.Writer, token, int(h.service.TTL().Seconds()))
	h.metrics.RecordAdminLogin(c.Request.Context())
	h.logger.Info("admin logged in")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify reports the session state without ever failing: an absent or
// invalid cookie is simply "not authenticated".
func (h *Handler) Verify(c *gin.Context) {
	authenticated := false
	if cookie, err := c.Request.Cookie(CookieName); err == nil {
		authenticated = h.service.Verify(cookie.Value)
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
}

func (h *Handler) Logout(c *gin.Context) {
	ClearSessionCookie(c.Writer)
	h.logger.Info("admin logged out")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
