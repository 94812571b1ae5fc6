package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/controllers"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/middleware"
)

// Controllers groups the handlers the router mounts
type Controllers struct {
	Health         *controllers.HealthController
	Auth           *controllers.AuthController
	Profile        *controllers.ProfileController
	Scholarship    *controllers.ScholarshipController
	Recommendation *controllers.RecommendationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", c.Health.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	scholarships := v1.Group("/scholarships")
	{
		scholarships.GET("", c.Scholarship.ListScholarships)
		scholarships.GET("/:id", c.Scholarship.GetScholarship)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", c.Auth.Me)

		authenticated.GET("/profile", c.Profile.GetProfile)
		authenticated.PUT("/profile", c.Profile.SaveProfile)

		recommendations := authenticated.Group("/recommendations")
		{
			recommendations.GET("", c.Recommendation.ListRecommendations)
			recommendations.POST("/refresh", c.Recommendation.RefreshRecommendations)
			recommendations.GET("/preview", c.Recommendation.PreviewRecommendations)
		}

		admin := authenticated.Group("/scholarships")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.POST("", c.Scholarship.CreateScholarship)
			admin.DELETE("/:id", c.Scholarship.DeleteScholarship)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
	})
}
