package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/middleware"
	"github.com/yigit/scholarmatch/internal/pkg/helpers"
)

// RecommendationController serves the authenticated student's recommendations
type RecommendationController struct {
	recommendationService services.RecommendationService
	now                   func() time.Time
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService services.RecommendationService) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
		now:                   time.Now,
	}
}

// ListRecommendations returns the stored recommendations, best first
// @Summary List own recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries" minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationListResponse}
// @Router /recommendations [get]
func (c *RecommendationController) ListRecommendations(ctx *gin.Context) {
	accountID, ok := requireAccountID(ctx)
	if !ok {
		return
	}

	limit, ok := helpers.ParseLimitParam(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit").WithField("limit")
		errorDetail = errorDetail.WithDetails("limit must be a number between 1 and 100")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	recs, err := c.recommendationService.ListForAccount(ctx.Request.Context(), accountID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	today := c.now()
	items := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, dto.NewRecommendationResponse(r, today))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.RecommendationListResponse{
		Recommendations: items,
		Count:           len(items),
	}))
}

// RefreshRecommendations recomputes and replaces the stored recommendations
// @Summary Refresh own recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RefreshResponse}
// @Failure 500 {object} dto.ErrorResponse "Recommendations could not be saved"
// @Router /recommendations/refresh [post]
func (c *RecommendationController) RefreshRecommendations(ctx *gin.Context) {
	accountID, ok := requireAccountID(ctx)
	if !ok {
		return
	}

	count, err := c.recommendationService.RefreshForAccount(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.RefreshResponse{Count: count}))
}

// PreviewRecommendations computes recommendations without storing them
// @Summary Preview own recommendations
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PreviewMatch}
// @Router /recommendations/preview [get]
func (c *RecommendationController) PreviewRecommendations(ctx *gin.Context) {
	accountID, ok := requireAccountID(ctx)
	if !ok {
		return
	}

	matches, err := c.recommendationService.PreviewForAccount(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPreviewMatches(matches)))
}
