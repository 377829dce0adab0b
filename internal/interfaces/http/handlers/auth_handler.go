package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// AuthHandler handles operator authentication requests
type AuthHandler struct {
	usecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(usecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: usecase}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "login successful", result)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.usecase.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "token refreshed", result)
}
