package api

import (
	"net/http"

	"github.com/Mteo06/gym-tracker-pro/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	historyService service.HistoryService,
	measurementService service.MeasurementService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService)
	historyHandler := NewHistoryHandler(historyService)
	measurementHandler := NewMeasurementHandler(measurementService)

	router.Use(RequestIDMiddleware())

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
		protected.GET("/me", authHandler.Me)

		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.PATCH("/:planId/active", planHandler.SetActive)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/today", workoutHandler.Today)
			workoutGroup.POST("/exercises/:exerciseId/toggle", workoutHandler.ToggleExercise)
		}

		protected.GET("/calendar/:year/:month", workoutHandler.Calendar)

		protected.GET("/history", historyHandler.GetHistory)

		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.GET("", measurementHandler.GetMeasurements)
			measurementGroup.POST("", measurementHandler.AddMeasurement)
		}
	}
}
