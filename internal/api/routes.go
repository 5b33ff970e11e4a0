package api

import (
	"log/slog"
	"net/http"

	"coachhub/coaching-app/internal/domain" // Needed for RoleMiddleware
	"coachhub/coaching-app/internal/notification"
	"coachhub/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	customerService service.CustomerService,
	planService service.PlanService,
	nutritionService service.NutritionService,
	exerciseService service.ExerciseService,
	profileService service.ProfileService,
	notifier notification.Notifier,
	logger *slog.Logger,
) {

	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(customerService, planService, notifier, logger)
	customerHandler := NewCustomerHandler(nutritionService, planService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	profileHandler := NewProfileHandler(profileService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "role": role})
		})

		// --- Profile Routes (both roles) ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.POST("/photo/upload-url", profileHandler.RequestPhotoUpload)
			profileGroup.PUT("/photo", profileHandler.ConfirmPhoto)
			profileGroup.GET("/photo", profileHandler.GetPhotoURL)
		}

		// --- Exercise Library (coach only) ---
		exerciseGroup := protected.Group("/exercises")
		exerciseGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/muscle-groups", exerciseHandler.GetMuscleGroups)
		}

		// --- Coach Routes ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			// Customer roster
			coachGroup.POST("/customers", coachHandler.CreateCustomer)
			coachGroup.GET("/customers", coachHandler.GetCustomers)
			coachGroup.GET("/customers/:customerId", coachHandler.GetCustomer)

			// Plan composition
			coachGroup.POST("/customers/:customerId/plans", coachHandler.CreateTrainingPlan)
			coachGroup.GET("/customers/:customerId/plans", coachHandler.GetCustomerPlans)
			coachGroup.GET("/plans/:planId", coachHandler.GetTrainingPlan)
			coachGroup.DELETE("/plans/:planId", coachHandler.DeleteTrainingPlan)
		}

		// --- Customer Routes ---
		customerGroup := protected.Group("/customer")
		customerGroup.Use(RoleMiddleware(domain.RoleCustomer))
		{
			customerGroup.GET("/diet", customerHandler.GetDailyDiet)
			customerGroup.POST("/diet/log", customerHandler.LogProduct)
			customerGroup.GET("/history", customerHandler.GetHistory)
			customerGroup.GET("/plans", customerHandler.GetPlans)
			customerGroup.GET("/plans/:planId", customerHandler.GetPlan)
		}
	}
}
