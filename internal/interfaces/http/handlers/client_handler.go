package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/utils"
)

// ClientHandler handles client HTTP requests
type ClientHandler struct {
	usecase *usecases.ClientUsecase
}

// NewClientHandler creates a new client handler
func NewClientHandler(usecase *usecases.ClientUsecase) *ClientHandler {
	return &ClientHandler{usecase: usecase}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var input entities.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "client created", client)
}

// Get handles GET /api/v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", client)
}

// Update handles PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "client updated", client)
}

// Archive handles POST /api/v1/clients/:id/archive
func (h *ClientHandler) Archive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.usecase.Archive(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "client archived", nil)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	items, total, err := h.usecase.List(c.Request.Context(), c.Query("search"), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"items":      items,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Delete handles DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "client deleted", nil)
}

// parseUUIDParam pulls a UUID path parameter, writing the error response
// itself on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest(domainerrors.CodeInvalidArgument, name+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
