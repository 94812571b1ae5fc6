package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/middleware"
	"github.com/yigit/scholarmatch/internal/pkg/helpers"
)

// ScholarshipController handles catalog operations
type ScholarshipController struct {
	scholarshipService services.ScholarshipService
	now                func() time.Time
}

// NewScholarshipController creates a new ScholarshipController
func NewScholarshipController(scholarshipService services.ScholarshipService) *ScholarshipController {
	return &ScholarshipController{
		scholarshipService: scholarshipService,
		now:                time.Now,
	}
}

// ListScholarships returns one page of the catalog ordered by deadline
// @Summary List scholarships
// @Tags scholarships
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ScholarshipListResponse}
// @Router /scholarships [get]
func (c *ScholarshipController) ListScholarships(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	scholarships, total, err := c.scholarshipService.ListScholarships(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	today := c.now()
	items := make([]dto.ScholarshipResponse, 0, len(scholarships))
	for _, s := range scholarships {
		items = append(items, dto.NewScholarshipResponse(s, today))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ScholarshipListResponse{
		Scholarships: items,
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetScholarship returns one listing
// @Summary Get scholarship details
// @Tags scholarships
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScholarshipResponse}
// @Failure 404 {object} dto.ErrorResponse "Scholarship not found"
// @Router /scholarships/{id} [get]
func (c *ScholarshipController) GetScholarship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Scholarship")
	if !ok {
		return
	}

	scholarship, err := c.scholarshipService.GetScholarshipByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewScholarshipResponse(scholarship, c.now())))
}

// CreateScholarship adds a listing
// @Summary Create a scholarship
// @Tags scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScholarshipRequest true "Scholarship"
// @Success 201 {object} dto.APIResponse{data=dto.ScholarshipResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /scholarships [post]
func (c *ScholarshipController) CreateScholarship(ctx *gin.Context) {
	var req dto.CreateScholarshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	scholarship, err := req.ToModel()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid deadline").WithField("deadline")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := c.scholarshipService.CreateScholarship(ctx.Request.Context(), scholarship)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	scholarship.ID = id
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewScholarshipResponse(scholarship, c.now())))
}

// DeleteScholarship removes a listing and its recommendations
// @Summary Delete a scholarship
// @Tags scholarships
// @Security BearerAuth
// @Param id path int true "Scholarship ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Scholarship not found"
// @Router /scholarships/{id} [delete]
func (c *ScholarshipController) DeleteScholarship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Scholarship")
	if !ok {
		return
	}

	if err := c.scholarshipService.DeleteScholarship(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDParam(ctx *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+resource+" ID")
		errorDetail = errorDetail.WithDetails(resource + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
