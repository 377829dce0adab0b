package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// CouponHandler handles coupon HTTP requests
type CouponHandler struct {
	usecase *usecases.CouponUsecase
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(usecase *usecases.CouponUsecase) *CouponHandler {
	return &CouponHandler{usecase: usecase}
}

// Create handles POST /api/v1/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var input entities.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	coupon, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "coupon created", coupon)
}

// Get handles GET /api/v1/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", coupon)
}

// Deactivate handles POST /api/v1/coupons/:id/deactivate
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.usecase.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "coupon deactivated", coupon)
}

// List handles GET /api/v1/coupons
func (h *CouponHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	items, err := h.usecase.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"items": items})
}
