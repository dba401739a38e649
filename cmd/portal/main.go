package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"pminternship/internship-ai/internal/config"
	"pminternship/internship-ai/internal/handlers"
	"pminternship/internship-ai/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := services.NewMemorySessionStore(cfg.Portal.SessionTTL)
	if cfg.Portal.RedisURL != "" {
		rdb, err := config.NewRedisClient(ctx, cfg.Portal.RedisURL)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Redis: %v", err)
		}
		defer rdb.Close()
		store = services.NewRedisSessionStore(rdb, cfg.Portal.SessionTTL)
		log.Println("✅ Redis session store initialized")
	} else {
		log.Println("✅ In-memory session store initialized")
	}

	client := services.NewAPIClient(cfg.Portal.APIBaseURL, cfg.Portal.APITimeout)
	log.Printf("✅ API client initialized (%s)\n", cfg.Portal.APIBaseURL)

	recommender, err := newPortalRecommender(ctx, cfg, client)
	if err != nil {
		log.Fatalf("❌ Failed to initialize recommender: %v", err)
	}
	log.Printf("✅ %s recommender initialized\n", cfg.Portal.Recommender)

	t := cfg.Portal.ScoreThresholds
	coordinator := services.NewSessionCoordinator(
		store,
		services.NewSimulatedAuthenticator(cfg.Portal.AuthDelay),
		recommender,
		client,
		services.NewAdminViewer(client, cfg.Portal.AdminPageSize),
		services.CoordinatorConfig{
			Thresholds:   services.ScoreThresholds{Excellent: t[0], Good: t[1], Fair: t[2]},
			PublicURL:    cfg.Portal.PublicURL,
			SaveProfiles: cfg.Portal.SaveProfiles && cfg.Portal.Recommender == "api",
		},
	)

	monitor := services.NewHealthMonitor(client, cfg.Portal.HealthCheckSpec)
	if err := monitor.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start health monitor: %v", err)
	}

	portalHandler := handlers.NewPortalHandler(coordinator, monitor)
	adminHandler := handlers.NewAdminHandler(coordinator)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "InternshipAI Portal",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Portal.CORSOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: cfg.Portal.CORSOrigins != "*",
	}))

	app.Get("/api/v1/health", portalHandler.HandleHealth)

	api := app.Group("/api/v1", handlers.SessionMiddleware(coordinator, cfg.Portal.SessionTTL, cfg.Server.Env == "production"))
	portalHandler.Register(api)
	adminHandler.Register(api)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "InternshipAI Portal",
			"version": "1.0.0",
			"view":    "GET /api/v1/view",
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		monitor.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Portal.Port)
	log.Printf("🚀 Portal starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newPortalRecommender(ctx context.Context, cfg *config.Config, client services.APIClient) (services.Recommender, error) {
	switch cfg.Portal.Recommender {
	case "api":
		return services.NewAPIRecommender(client), nil
	case "vector":
		catalog, err := services.LoadCatalog(cfg.Backend.CatalogPath)
		if err != nil {
			return nil, err
		}
		embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		index, err := services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			return nil, err
		}
		return services.NewVectorRecommender(embedder, index, catalog, cfg.Backend.RecommendationLimit), nil
	default:
		return services.NewStaticRecommender(services.MockRecommendations(), cfg.Portal.RecommendDelay), nil
	}
}
