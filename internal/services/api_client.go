package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pminternship/internship-ai/internal/models"
)

const defaultRequestFailure = "API request failed"

// APIClient talks to the recommendation backend. Methods never return Go
// errors: transport, status and decoding failures are folded into the
// envelope as Success=false with Error set.
type APIClient interface {
	GetRecommendations(ctx context.Context, req models.RecommendationRequest) models.APIResponse[models.RecommendationResponse]
	GetUserHistory(ctx context.Context, userID string) models.APIResponse[[]models.UserProfile]
	SaveUserProfile(ctx context.Context, profile models.UserProfile) models.APIResponse[models.UserProfile]
	GetAdminDashboard(ctx context.Context) models.APIResponse[models.AdminDashboardData]
	GetAllSubmissions(ctx context.Context, page, limit int) models.APIResponse[models.SubmissionsPage]
	HealthCheck(ctx context.Context) models.APIResponse[models.HealthStatus]
}

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient returns a client for baseURL, e.g. "http://localhost:3001/api".
// A zero timeout leaves the transport default in place.
func NewAPIClient(baseURL string, timeout time.Duration) APIClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetRecommendations implements APIClient.
func (c *apiClient) GetRecommendations(ctx context.Context, req models.RecommendationRequest) models.APIResponse[models.RecommendationResponse] {
	return doRequest[models.RecommendationResponse](ctx, c, http.MethodPost, "/recommendations", req)
}

// GetUserHistory implements APIClient.
func (c *apiClient) GetUserHistory(ctx context.Context, userID string) models.APIResponse[[]models.UserProfile] {
	return doRequest[[]models.UserProfile](ctx, c, http.MethodGet, "/users/"+url.PathEscape(userID)+"/history", nil)
}

// SaveUserProfile implements APIClient.
func (c *apiClient) SaveUserProfile(ctx context.Context, profile models.UserProfile) models.APIResponse[models.UserProfile] {
	return doRequest[models.UserProfile](ctx, c, http.MethodPost, "/users/profile", profile)
}

// GetAdminDashboard implements APIClient.
func (c *apiClient) GetAdminDashboard(ctx context.Context) models.APIResponse[models.AdminDashboardData] {
	return doRequest[models.AdminDashboardData](ctx, c, http.MethodGet, "/admin/dashboard", nil)
}

// GetAllSubmissions implements APIClient.
func (c *apiClient) GetAllSubmissions(ctx context.Context, page, limit int) models.APIResponse[models.SubmissionsPage] {
	return doRequest[models.SubmissionsPage](ctx, c, http.MethodGet, fmt.Sprintf("/admin/submissions?page=%d&limit=%d", page, limit), nil)
}

// HealthCheck implements APIClient.
func (c *apiClient) HealthCheck(ctx context.Context) models.APIResponse[models.HealthStatus] {
	return doRequest[models.HealthStatus](ctx, c, http.MethodGet, "/health", nil)
}

func doRequest[T any](ctx context.Context, c *apiClient, method, endpoint string, body any) models.APIResponse[T] {
	result, err := send[T](ctx, c, method, endpoint, body)
	if err != nil {
		log.Printf("❌ API error: %s %s: %v\n", method, endpoint, err)
		return models.APIResponse[T]{Success: false, Error: err.Error()}
	}
	return result
}

func send[T any](ctx context.Context, c *apiClient, method, endpoint string, body any) (models.APIResponse[T], error) {
	var envelope models.APIResponse[T]

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return envelope, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope, fmt.Errorf("failed to read response: %w", err)
	}

	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && envelope.Message != "" {
			return envelope, errors.New(envelope.Message)
		}
		if decodeErr == nil && envelope.Error != "" {
			return envelope, errors.New(envelope.Error)
		}
		return envelope, errors.New(defaultRequestFailure)
	}

	if decodeErr != nil {
		return envelope, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if !envelope.Success && envelope.Error == "" {
		envelope.Error = envelope.Message
		if envelope.Error == "" {
			envelope.Error = defaultRequestFailure
		}
	}

	return envelope, nil
}
