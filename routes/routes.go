package routes

import (
	"github.com/jwsummers/OnTrack/controllers"
	"github.com/jwsummers/OnTrack/middlewares"
	"github.com/jwsummers/OnTrack/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	sessions := services.NewSessionRegistry()
	hub := services.NewRealtimeHub()
	foodSvc := services.NewFoodService(services.NewOpenFoodFactsService())
	intakeSvc := services.NewIntakeService(sessions, hub)

	authCtl := controllers.NewAuthController(sessions)
	foodCtl := controllers.NewFoodController(foodSvc)
	intakeCtl := controllers.NewIntakeController(intakeSvc, sessions)
	goalCtl := controllers.NewGoalController(sessions)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	// Everything below requires a signed-in identity
	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/auth/logout", authCtl.Logout)

		protected.GET("/foods/search", foodCtl.SearchFoods)

		protected.POST("/intake", intakeCtl.LogIntake)
		protected.GET("/intake/today", intakeCtl.TodayLog)
		protected.GET("/intake/history", intakeCtl.GetHistory)

		protected.GET("/goals", goalCtl.GetGoals)
		protected.PUT("/goals", goalCtl.UpdateGoals)

		protected.GET("/ws", rtCtl.ProgressWS)
	}

	return r
}
