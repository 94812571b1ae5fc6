package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/middleware"
)

// ProfileController handles the authenticated student's profile
type ProfileController struct {
	profileService services.ProfileService
	now            func() time.Time
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		now:            time.Now,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	accountID, ok := requireAccountID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile, c.now())))
}

// SaveProfile creates or replaces the caller's profile and refreshes recommendations
// @Summary Save own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.SaveProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid profile"
// @Failure 500 {object} dto.ErrorResponse "Recommendations could not be saved"
// @Router /profile [put]
func (c *ProfileController) SaveProfile(ctx *gin.Context) {
	accountID, ok := requireAccountID(ctx)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := req.ToModel(accountID)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date of birth").WithField("dateOfBirth")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.profileService.SaveProfile(ctx.Request.Context(), profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SaveProfileResponse{
		Profile:         dto.NewProfileResponse(profile, c.now()),
		Recommendations: count,
	}))
}
