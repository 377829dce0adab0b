package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/utils"
)

// InfluencerHandler handles influencer HTTP requests
type InfluencerHandler struct {
	usecase *usecases.InfluencerUsecase
}

// NewInfluencerHandler creates a new influencer handler
func NewInfluencerHandler(usecase *usecases.InfluencerUsecase) *InfluencerHandler {
	return &InfluencerHandler{usecase: usecase}
}

var influencerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// Update handles PATCH /api/v1/influencers?id=<id>. The record is
// addressed by query parameter; the body is a partial update. The
// identifier is checked before the body is read, so an unusable id wins
// over a malformed body.
func (h *InfluencerHandler) Update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, domainerrors.BadRequest(domainerrors.CodeInvalidInfluencerID, "id query parameter is required"))
		return
	}
	if !influencerIDPattern.MatchString(id) {
		response.Error(c, domainerrors.BadRequest(domainerrors.CodeInvalidInfluencerID, "invalid influencer id"))
		return
	}

	var input entities.InfluencerUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.usecase.UpdateInfluencer(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result.SuccessMessage(), result.Influencer.MaskedClone())
}

// GetByID handles GET /api/v1/influencers/:id
func (h *InfluencerHandler) GetByID(c *gin.Context) {
	inf, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", inf.MaskedClone())
}

// Get handles GET /api/v1/influencers?id=<id>, or lists profiles when no
// id is supplied.
func (h *InfluencerHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		inf, err := h.usecase.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", inf.MaskedClone())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	items, total, err := h.usecase.List(c.Request.Context(), c.Query("search"), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	masked := make([]*entities.Influencer, 0, len(items))
	for _, inf := range items {
		masked = append(masked, inf.MaskedClone())
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"items":      masked,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
