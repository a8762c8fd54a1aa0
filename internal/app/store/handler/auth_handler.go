package handler

import (
	"errors"
	"net/http"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/service"
	"devlavka/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler обрабатывает HTTP запросы аутентификации
type AuthHandler struct {
	authService service.AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	respondSuccess(c, http.StatusOK, resp, "")
}

// ChangePassword обрабатывает PATCH /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			respondError(c, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusUnauthorized, "Unauthorized")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Password changed successfully")
}
