package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Vladyslav2123/triply-sub001/config"
	"github.com/Vladyslav2123/triply-sub001/controllers"
	"github.com/Vladyslav2123/triply-sub001/routes"
	"github.com/Vladyslav2123/triply-sub001/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	redisClient := config.ConnectRedis()

	// Services
	authService := services.NewAuthService(db)
	listingService := services.NewListingService(db)
	experienceService := services.NewExperienceService(db)
	reservationService := services.NewReservationService(db)
	reviewService := services.NewReviewService(db)
	ratingService := services.NewRatingService(db)
	availabilityService := services.NewAvailabilityService(db)
	favoriteService := services.NewFavoriteService(db)
	messageService := services.NewMessageService(db)
	paymentService := services.NewPaymentService(db)
	cacheService := services.NewCacheService(redisClient)

	// Controllers
	authController := controllers.NewAuthController(authService)
	listingController := controllers.NewListingController(listingService, cacheService)
	experienceController := controllers.NewExperienceController(experienceService)
	reservationController := controllers.NewReservationController(reservationService)
	reviewController := controllers.NewReviewController(reviewService, ratingService, cacheService)
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	messageController := controllers.NewMessageController(messageService)
	paymentController := controllers.NewPaymentController(paymentService)

	router := routes.SetupRouter(
		authService,
		authController,
		listingController,
		experienceController,
		reservationController,
		reviewController,
		availabilityController,
		favoriteController,
		messageController,
		paymentController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
