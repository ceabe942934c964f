package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Vladyslav2123/triply-sub001/controllers"
	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/models"
	"github.com/Vladyslav2123/triply-sub001/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	authSvc *services.AuthService,
	ac *controllers.AuthController,
	lc *controllers.ListingController,
	ec *controllers.ExperienceController,
	rc *controllers.ReservationController,
	rvc *controllers.ReviewController,
	avc *controllers.AvailabilityController,
	fc *controllers.FavoriteController,
	mc *controllers.MessageController,
	pc *controllers.PaymentController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.RequireAuth(authSvc)
	authOptional := middleware.OptionalAuth(authSvc)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.GET("/me", authRequired, ac.Me)
		}

		listings := api.Group("/listings")
		{
			listings.GET("", authOptional, lc.Search)
			listings.GET("/:id", authOptional, lc.GetByID)
			listings.POST("", authRequired, lc.Create)
			listings.PATCH("/:id", authRequired, lc.Update)
			listings.DELETE("/:id", authRequired, lc.Delete)
			listings.POST("/:id/status", authRequired, lc.TransitionStatus)

			listings.GET("/:id/availability", avc.ListListingDates)
			listings.PUT("/:id/availability", authRequired, avc.UpsertListingDates)

			listings.GET("/:id/reservations", authRequired, rc.ListForListing)

			listings.GET("/:id/reviews", rvc.ListForEntity(models.ReservationableListing))
			listings.GET("/:id/reviews/eligibility", authRequired, rvc.Eligibility(models.ReservationableListing))
			listings.POST("/:id/reviews", authRequired, rvc.Create(models.ReservationableListing))
			listings.POST("/:id/rating/recompute", authRequired, rvc.RecomputeRating(models.ReservationableListing))
		}

		experiences := api.Group("/experiences")
		{
			experiences.GET("", authOptional, ec.Search)
			experiences.GET("/:id", authOptional, ec.GetByID)
			experiences.POST("", authRequired, ec.Create)
			experiences.PATCH("/:id", authRequired, ec.Update)
			experiences.DELETE("/:id", authRequired, ec.Delete)
			experiences.POST("/:id/status", authRequired, ec.TransitionStatus)

			experiences.GET("/:id/availability", avc.ListExperienceDates)
			experiences.PUT("/:id/availability", authRequired, avc.UpsertExperienceDates)

			experiences.GET("/:id/reviews", rvc.ListForEntity(models.ReservationableExperience))
			experiences.GET("/:id/reviews/eligibility", authRequired, rvc.Eligibility(models.ReservationableExperience))
			experiences.POST("/:id/reviews", authRequired, rvc.Create(models.ReservationableExperience))
			experiences.POST("/:id/rating/recompute", authRequired, rvc.RecomputeRating(models.ReservationableExperience))
		}

		reservations := api.Group("/reservations", authRequired)
		{
			reservations.GET("", rc.ListMine)
			reservations.POST("", rc.Create)
			reservations.GET("/:id", rc.GetByID)
			reservations.POST("/:id/status", rc.UpdateStatus)
			reservations.GET("/:id/payments", pc.ListForReservation)
		}

		reviews := api.Group("/reviews", authRequired)
		{
			reviews.PUT("/:id", rvc.Update)
			reviews.DELETE("/:id", rvc.Delete)
		}

		favorites := api.Group("/favorites", authRequired)
		{
			favorites.GET("", fc.List)
			favorites.POST("", fc.Toggle)
		}

		messages := api.Group("/messages", authRequired)
		{
			messages.GET("", mc.Inbox)
			messages.POST("", mc.Send)
			messages.GET("/:userId", mc.Conversation)
		}

		payments := api.Group("/payments", authRequired)
		{
			payments.POST("", pc.Charge)
			payments.POST("/:id/refund", pc.Refund)
		}
	}

	return r
}
