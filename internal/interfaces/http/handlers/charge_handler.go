package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/utils"
)

// ChargeHandler handles charge HTTP requests
type ChargeHandler struct {
	usecase *usecases.ChargeUsecase
}

// NewChargeHandler creates a new charge handler
func NewChargeHandler(usecase *usecases.ChargeUsecase) *ChargeHandler {
	return &ChargeHandler{usecase: usecase}
}

// Create handles POST /api/v1/charges
func (h *ChargeHandler) Create(c *gin.Context) {
	var input entities.ChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	charge, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "charge created", charge)
}

// Get handles GET /api/v1/charges/:id
func (h *ChargeHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	charge, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", charge)
}

// Transition handles POST /api/v1/charges/:id/transition
func (h *ChargeHandler) Transition(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status entities.ChargeStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	charge, err := h.usecase.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "charge moved to "+string(input.Status), charge)
}

// ListByClient handles GET /api/v1/clients/:id/charges
func (h *ChargeHandler) ListByClient(c *gin.Context) {
	clientID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	items, total, err := h.usecase.ListByClient(c.Request.Context(), clientID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"items":      items,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
