package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pminternship/internship-ai/internal/models"
)

// Recommender turns a profile request into postings ordered by descending
// match score.
type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error)
}

type staticRecommender struct {
	postings []models.Internship
	delay    time.Duration
}

// NewStaticRecommender returns postings unchanged after delay, whatever the
// request says.
func NewStaticRecommender(postings []models.Internship, delay time.Duration) Recommender {
	return &staticRecommender{postings: postings, delay: delay}
}

// Recommend implements Recommender.
func (s *staticRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	start := time.Now()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("recommendation interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	recommendations := make([]models.Internship, len(s.postings))
	for i, p := range s.postings {
		recommendations[i] = cloneInternship(p)
	}

	return &models.RecommendationResponse{
		Recommendations: recommendations,
		TotalCount:      len(recommendations),
		ProcessingTime:  time.Since(start).Milliseconds(),
	}, nil
}

type apiRecommender struct {
	client APIClient
}

// NewAPIRecommender delegates matching to the backend.
func NewAPIRecommender(client APIClient) Recommender {
	return &apiRecommender{client: client}
}

// Recommend implements Recommender.
func (a *apiRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	resp := a.client.GetRecommendations(ctx, req)
	if !resp.Success {
		return nil, errors.New(resp.Error)
	}
	if resp.Data == nil {
		return nil, errors.New("empty recommendation response")
	}
	if resp.Data.Recommendations == nil {
		resp.Data.Recommendations = []models.Internship{}
	}
	return resp.Data, nil
}
