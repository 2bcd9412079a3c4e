package routes

import (
	"caltrack/controllers"
	"caltrack/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Meal      *controllers.MealController
	Analytics *controllers.AnalyticsController
	Food      *controllers.FoodController
	Classify  *controllers.ClassifyController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(c Controllers) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", c.User.GetProfile)
		user.PUT("/profile", c.User.UpdateProfile)
		user.PUT("/goal", c.User.UpdateGoal)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", c.Meal.LogMeal)
		meals.GET("", c.Meal.ListMeals)
		meals.GET("/:id", c.Meal.GetMeal)
		meals.PUT("/:id", c.Meal.UpdateMeal)
		meals.DELETE("/:id", c.Meal.DeleteMeal)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.GET("/daily", c.Analytics.GetDailyTotals)
		analytics.GET("/weekly", c.Analytics.GetWeeklyTotals)
		analytics.GET("/progress", c.Analytics.GetProgress)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("foods/search", c.Food.Search)
		protected.POST("classify", c.Classify.Classify)
		protected.GET("ws", c.Realtime.Connect)
	}

	return r
}
