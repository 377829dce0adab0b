package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// ChecklistHandler handles checklist HTTP requests
type ChecklistHandler struct {
	usecase *usecases.ChecklistUsecase
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(usecase *usecases.ChecklistUsecase) *ChecklistHandler {
	return &ChecklistHandler{usecase: usecase}
}

// Create handles POST /api/v1/checklists
func (h *ChecklistHandler) Create(c *gin.Context) {
	var input entities.ChecklistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	checklist, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "checklist created", checklist)
}

// Get handles GET /api/v1/checklists/:id
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	checklist, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", checklist)
}

// Rename handles PUT /api/v1/checklists/:id
func (h *ChecklistHandler) Rename(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required,min=2,max=200"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	checklist, err := h.usecase.Rename(c.Request.Context(), id, input.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "checklist renamed", checklist)
}

// AddItem handles POST /api/v1/checklists/:id/items
func (h *ChecklistHandler) AddItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" binding:"required,min=1,max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	checklist, err := h.usecase.AddItem(c.Request.Context(), id, input.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "item added", checklist)
}

// ToggleItem handles POST /api/v1/checklists/:id/items/:itemId/toggle
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	checklist, err := h.usecase.ToggleItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "item toggled", checklist)
}

// ListByClient handles GET /api/v1/clients/:id/checklists
func (h *ChecklistHandler) ListByClient(c *gin.Context) {
	clientID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.usecase.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"items": items})
}

// Delete handles DELETE /api/v1/checklists/:id
func (h *ChecklistHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "checklist deleted", nil)
}
