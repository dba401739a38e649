package services

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"math"
	"slices"
	"strings"
	"time"

	"pminternship/internship-ai/internal/models"
)

const embeddingRetries = 3

type vectorRecommender struct {
	embedder Embedder
	index    InternshipIndex
	postings map[string]models.Internship
	limit    int
}

// NewVectorRecommender matches profiles against postings by embedding
// similarity. Only postings present in catalog are returned.
func NewVectorRecommender(embedder Embedder, index InternshipIndex, catalog []models.Internship, limit int) Recommender {
	postings := make(map[string]models.Internship, len(catalog))
	for _, in := range catalog {
		postings[in.ID] = in
	}
	return &vectorRecommender{embedder: embedder, index: index, postings: postings, limit: limit}
}

// Recommend implements Recommender.
func (v *vectorRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	start := time.Now()

	embedding, err := v.embedder.GenerateEmbeddingWithRetry(ctx, ProfileQuery(req), embeddingRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to embed profile: %w", err)
	}

	hits, err := v.index.SearchSimilar(ctx, embedding, v.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search internships: %w", err)
	}

	recommendations := make([]models.Internship, 0, len(hits))
	for _, hit := range hits {
		in, ok := v.postings[hit.InternshipID]
		if !ok {
			log.Printf("⚠️  Index returned unknown internship %s\n", hit.InternshipID)
			continue
		}
		in = cloneInternship(in)
		in.MatchScore = similarityScore(hit.Score)
		recommendations = append(recommendations, in)
	}
	sortByMatchScore(recommendations)

	return &models.RecommendationResponse{
		Recommendations: recommendations,
		TotalCount:      len(recommendations),
		ProcessingTime:  time.Since(start).Milliseconds(),
	}, nil
}

type catalogRecommender struct {
	postings []models.Internship
	limit    int
}

// NewCatalogRecommender scores postings by overlap with the requested skills,
// interests and location. Postings sharing neither a skill nor a sector with
// the request are left out.
func NewCatalogRecommender(catalog []models.Internship, limit int) Recommender {
	return &catalogRecommender{postings: catalog, limit: limit}
}

// Recommend implements Recommender.
func (c *catalogRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	start := time.Now()

	recommendations := make([]models.Internship, 0, len(c.postings))
	for _, in := range c.postings {
		score, ok := keywordScore(req, in)
		if !ok {
			continue
		}
		in = cloneInternship(in)
		in.MatchScore = score
		recommendations = append(recommendations, in)
	}
	sortByMatchScore(recommendations)
	if c.limit > 0 && len(recommendations) > c.limit {
		recommendations = recommendations[:c.limit]
	}

	return &models.RecommendationResponse{
		Recommendations: recommendations,
		TotalCount:      len(recommendations),
		ProcessingTime:  time.Since(start).Milliseconds(),
	}, nil
}

// keywordScore is 40 plus up to 45 for skill coverage, 10 for a sector
// interest and 5 for a location match.
func keywordScore(req models.RecommendationRequest, in models.Internship) (float64, bool) {
	matched := 0
	for _, skill := range in.Skills {
		if slices.ContainsFunc(req.Skills, func(s string) bool { return strings.EqualFold(s, skill) }) {
			matched++
		}
	}
	sectorMatch := slices.ContainsFunc(req.Interests, func(s string) bool { return strings.EqualFold(s, in.Sector) })
	if matched == 0 && !sectorMatch {
		return 0, false
	}

	score := 40.0
	if len(in.Skills) > 0 {
		score += 45 * float64(matched) / float64(len(in.Skills))
	}
	if sectorMatch {
		score += 10
	}
	if in.Type == models.InternshipRemote || (req.PreferredLocation != "" && strings.EqualFold(req.PreferredLocation, in.Location)) {
		score += 5
	}
	return math.Round(score), true
}

// similarityScore maps a cosine similarity to a 0-100 match score.
func similarityScore(similarity float32) float64 {
	return math.Round(min(max(float64(similarity), 0), 1) * 100)
}

func sortByMatchScore(postings []models.Internship) {
	slices.SortStableFunc(postings, func(a, b models.Internship) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
}
