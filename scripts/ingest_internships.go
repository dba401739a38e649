package main

import (
	"context"
	"log"
	"os"
	"strings"

	"pminternship/internship-ai/internal/config"
	"pminternship/internship-ai/internal/services"
)

func main() {
	log.Println("🚀 Starting internship ingestion...")

	cfg := config.Load()
	ctx := context.Background()

	postings, err := services.LoadCatalog(cfg.Backend.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	log.Printf("📚 Loaded %d postings", len(postings))

	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := index.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	successCount := 0
	failCount := 0

	for _, in := range postings {
		log.Printf("\n📄 Processing: %s at %s (%s)", in.Title, in.Company, in.ID)

		embedding, err := embedder.GenerateEmbeddingWithRetry(ctx, services.InternshipDocument(in), 3)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding: %v", err)
			failCount++
			continue
		}

		if err := index.UpsertInternship(ctx, in, embedding); err != nil {
			log.Printf("   ❌ Failed to store posting: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored")
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d postings", successCount)
	log.Printf("   ❌ Failed: %d postings", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some postings failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All postings ingested successfully!")
}
