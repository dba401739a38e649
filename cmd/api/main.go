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
	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/repositories"
	"pminternship/internship-ai/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	profileRepo := repositories.NewProfileRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, err := services.LoadCatalog(cfg.Backend.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load internship catalog: %v", err)
	}
	log.Printf("✅ Internship catalog loaded (%d postings)\n", len(catalog))

	recommender, err := newBackendRecommender(ctx, cfg, catalog)
	if err != nil {
		log.Fatalf("❌ Failed to initialize recommender: %v", err)
	}
	log.Printf("✅ %s recommender initialized\n", cfg.Backend.Recommender)

	analytics := services.NewAnalyticsService(submissionRepo, profileRepo)

	recorder := services.NewSubmissionRecorder(submissionRepo, cfg.Worker.Concurrency)
	recorder.Start(ctx)

	backendHandler := handlers.NewBackendHandler(recommender, profileRepo, analytics, recorder)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "InternshipAI Backend",
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
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	backendHandler.Register(app.Group("/api"))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "InternshipAI Backend",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/recommendations",
				"GET /api/users/:userId/history",
				"POST /api/users/profile",
				"GET /api/admin/dashboard",
				"GET /api/admin/submissions?page=&limit=",
				"GET /api/health",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		recorder.Stop()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Backend starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newBackendRecommender(ctx context.Context, cfg *config.Config, catalog []models.Internship) (services.Recommender, error) {
	if cfg.Backend.Recommender != "vector" {
		return services.NewCatalogRecommender(catalog, cfg.Backend.RecommendationLimit), nil
	}
	return newVectorRecommender(ctx, cfg, catalog, cfg.Backend.RecommendationLimit)
}

func newVectorRecommender(ctx context.Context, cfg *config.Config, catalog []models.Internship, limit int) (services.Recommender, error) {
	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Gemini AI initialized successfully")

	index, err := services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return nil, err
	}
	if err := index.InitCollection(ctx); err != nil {
		return nil, err
	}
	log.Println("✅ Qdrant initialized successfully")

	return services.NewVectorRecommender(embedder, index, catalog, limit), nil
}
