package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitlyapps/fitly-api/internal/config"
	"github.com/fitlyapps/fitly-api/internal/database"
	"github.com/fitlyapps/fitly-api/internal/geo"
	"github.com/fitlyapps/fitly-api/internal/handlers"
	"github.com/fitlyapps/fitly-api/internal/middleware"
	"github.com/fitlyapps/fitly-api/internal/repository"
	"github.com/fitlyapps/fitly-api/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	coachProfileRepo := repository.NewCoachProfileRepository(db)
	clientProfileRepo := repository.NewClientProfileRepository(db)

	geocoder, err := geo.NewClient(cfg.GeoapifyAPIKey)
	if err != nil {
		return err
	}

	var suggestionCache geo.SuggestionCache = geo.NewMemoryCache(cfg.GeoCacheTTL)
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return err
		}
		suggestionCache = geo.NewRedisCache(redisClient, cfg.GeoCacheTTL)
		log.Println("Geo suggestion cache backed by Redis")
	}

	catalogService := services.NewCatalogService(geocoder)
	billingService := services.NewBillingService(cfg.StripeSecretKey)

	authHandler := handlers.NewAuthHandler(db, userRepo, cfg.JWTSecret)
	geoHandler := handlers.NewGeoHandler(geocoder, suggestionCache)
	catalogHandler := handlers.NewCatalogHandler(coachProfileRepo, catalogService)
	onboardingHandler := handlers.NewOnboardingHandler(coachProfileRepo, clientProfileRepo, geocoder)
	profileHandler := handlers.NewProfileHandler(coachProfileRepo, clientProfileRepo)
	billingHandler := handlers.NewBillingHandler(billingService)
	dashboardHandler := handlers.NewDashboardHandler(coachProfileRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// Public surface: catalog browsing and city lookups need no account.
	api.Get("/geo/cities", geoHandler.Cities)
	api.Get("/coaches", catalogHandler.ListCoaches)
	api.Get("/coaches/:id", catalogHandler.GetCoachDetail)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	coaches := authProtected.Group("/coaches")
	coaches.Post("/onboarding", onboardingHandler.CoachOnboarding)
	coaches.Get("/profile", profileHandler.GetCoachProfile)
	coaches.Put("/profile", profileHandler.UpdateCoachProfile)

	clients := authProtected.Group("/clients")
	clients.Post("/onboarding", onboardingHandler.ClientOnboarding)
	clients.Get("/profile", profileHandler.GetClientProfile)

	authProtected.Put("/users/avatar", authHandler.UpdateAvatar)

	authProtected.Post("/billing/connect", billingHandler.CreateConnectAccount)
	authProtected.Get("/dashboard", dashboardHandler.Overview)

	return nil
}
