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

// TaskHandler handles billable task HTTP requests
type TaskHandler struct {
	usecase *usecases.TaskUsecase
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(usecase *usecases.TaskUsecase) *TaskHandler {
	return &TaskHandler{usecase: usecase}
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var input entities.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "task created", task)
}

// Get handles GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", task)
}

// Update handles PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.usecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "task updated", task)
}

// Transition handles POST /api/v1/tasks/:id/transition
func (h *TaskHandler) Transition(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status entities.TaskStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.usecase.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "task moved to "+string(input.Status), task)
}

// ListByClient handles GET /api/v1/clients/:id/tasks
func (h *TaskHandler) ListByClient(c *gin.Context) {
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

// Delete handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "task deleted", nil)
}
