package main

import (
	"context"
	"log"
	"time"

	"caltrack/config"
	"caltrack/controllers"
	"caltrack/routes"
	"caltrack/services"
	"caltrack/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	ctx := context.Background()
	db := config.DB

	hub := services.NewRealtimeHub()
	cache := services.NewTTLCache(30*time.Second, 4096)

	foodSvc := services.NewFoodService(db)
	mealSvc := services.NewMealService(db).WithHub(hub).WithCache(cache)
	analyticsSvc := services.NewAnalyticsService(db).WithCache(cache)
	userSvc := services.NewUserService(db)

	authSvc := services.NewAuthService(db)
	if mailer, err := utils.NewMailer(ctx); err != nil {
		log.Printf("mailer unavailable, password-reset mail disabled: %v", err)
	} else {
		authSvc.WithMailer(mailer)
	}

	// Classifier chain: vision first, keyword heuristics next, canned guess
	// as the tail so classification never comes back empty.
	providers := []services.FoodClassifier{}
	if rek, err := services.NewRekognitionClassifier(ctx, foodSvc); err != nil {
		log.Printf("rekognition unavailable, falling back to heuristics: %v", err)
	} else {
		providers = append(providers, rek)
	}
	providers = append(providers, services.NewKeywordClassifier(foodSvc), services.CannedClassifier{})
	chain := services.NewClassifierChain(providers...)

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		User:      controllers.NewUserController(userSvc),
		Meal:      controllers.NewMealController(mealSvc),
		Analytics: controllers.NewAnalyticsController(analyticsSvc),
		Food:      controllers.NewFoodController(foodSvc),
		Classify:  controllers.NewClassifyController(chain, true),
		Realtime:  controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
