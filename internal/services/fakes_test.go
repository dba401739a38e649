package services_test

import (
	"context"
	"strconv"
	"sync"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/services"
)

// ── Fake API client ──

type submissionsCall struct {
	Page  int
	Limit int
}

type fakeAPIClient struct {
	mu sync.Mutex

	recommendations models.APIResponse[models.RecommendationResponse]
	history         models.APIResponse[[]models.UserProfile]
	saveProfile     models.APIResponse[models.UserProfile]
	dashboard       models.APIResponse[models.AdminDashboardData]
	submissions     func(page, limit int) models.APIResponse[models.SubmissionsPage]
	health          models.APIResponse[models.HealthStatus]

	// dashboardGate, when set, holds GetAdminDashboard until it is closed.
	dashboardGate    chan struct{}
	dashboardStarted chan struct{}

	savedProfiles   []models.UserProfile
	submissionCalls []submissionsCall
	dashboardCalls  int
	healthCalls     int
}

var _ services.APIClient = (*fakeAPIClient)(nil)

func (f *fakeAPIClient) GetRecommendations(ctx context.Context, req models.RecommendationRequest) models.APIResponse[models.RecommendationResponse] {
	return f.recommendations
}

func (f *fakeAPIClient) GetUserHistory(ctx context.Context, userID string) models.APIResponse[[]models.UserProfile] {
	return f.history
}

func (f *fakeAPIClient) SaveUserProfile(ctx context.Context, profile models.UserProfile) models.APIResponse[models.UserProfile] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedProfiles = append(f.savedProfiles, profile)
	return f.saveProfile
}

func (f *fakeAPIClient) GetAdminDashboard(ctx context.Context) models.APIResponse[models.AdminDashboardData] {
	f.mu.Lock()
	f.dashboardCalls++
	gate, started := f.dashboardGate, f.dashboardStarted
	f.mu.Unlock()
	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dashboard
}

func (f *fakeAPIClient) GetAllSubmissions(ctx context.Context, page, limit int) models.APIResponse[models.SubmissionsPage] {
	f.mu.Lock()
	f.submissionCalls = append(f.submissionCalls, submissionsCall{Page: page, Limit: limit})
	fn := f.submissions
	f.mu.Unlock()
	if fn == nil {
		return models.APIResponse[models.SubmissionsPage]{Success: false, Error: "no submissions configured"}
	}
	return fn(page, limit)
}

func (f *fakeAPIClient) HealthCheck(ctx context.Context) models.APIResponse[models.HealthStatus] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthCalls++
	return f.health
}

func (f *fakeAPIClient) calls() []submissionsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submissionsCall(nil), f.submissionCalls...)
}

func okDashboard(data models.AdminDashboardData) models.APIResponse[models.AdminDashboardData] {
	return models.APIResponse[models.AdminDashboardData]{Success: true, Data: &data}
}

func pagedSubmissions(total int64) func(page, limit int) models.APIResponse[models.SubmissionsPage] {
	return func(page, limit int) models.APIResponse[models.SubmissionsPage] {
		var subs []models.UserProfile
		for i := (page - 1) * limit; i < page*limit && int64(i) < total; i++ {
			subs = append(subs, models.UserProfile{UserID: "user-" + strconv.Itoa(i)})
		}
		return models.APIResponse[models.SubmissionsPage]{
			Success: true,
			Data:    &models.SubmissionsPage{Submissions: subs, Total: total},
		}
	}
}

func failingSubmissions(msg string) func(page, limit int) models.APIResponse[models.SubmissionsPage] {
	return func(page, limit int) models.APIResponse[models.SubmissionsPage] {
		return models.APIResponse[models.SubmissionsPage]{Success: false, Error: msg}
	}
}

// ── Fake authenticator ──

// blockingAuthenticator signs everyone in once release is closed.
type blockingAuthenticator struct {
	started chan struct{}
	release chan struct{}
}

var _ services.Authenticator = (*blockingAuthenticator)(nil)

func newBlockingAuthenticator() *blockingAuthenticator {
	return &blockingAuthenticator{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (b *blockingAuthenticator) Login(ctx context.Context, req services.LoginRequest) (*models.SessionUser, error) {
	b.started <- struct{}{}
	<-b.release
	return &models.SessionUser{ID: "user-1", Email: req.Email, Name: "Late"}, nil
}

func (b *blockingAuthenticator) Signup(ctx context.Context, req services.SignupRequest) (*models.SessionUser, error) {
	b.started <- struct{}{}
	<-b.release
	return &models.SessionUser{ID: "user-1", Email: req.Email, Name: req.Name}, nil
}

// ── Fake recommender ──

// blockingRecommender returns resp once release is closed. started receives
// a value when a call begins.
type blockingRecommender struct {
	resp    *models.RecommendationResponse
	err     error
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	requests []models.RecommendationRequest
}

func newBlockingRecommender(resp *models.RecommendationResponse) *blockingRecommender {
	return &blockingRecommender{
		resp:    resp,
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (b *blockingRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return b.resp, b.err
}

type instantRecommender struct {
	resp *models.RecommendationResponse
	err  error

	mu       sync.Mutex
	requests []models.RecommendationRequest
}

func (r *instantRecommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return r.resp, r.err
}

func (r *instantRecommender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func recommendations(scores ...float64) *models.RecommendationResponse {
	resp := &models.RecommendationResponse{ProcessingTime: 12}
	for i, s := range scores {
		resp.Recommendations = append(resp.Recommendations, models.Internship{
			ID:         strconv.Itoa(i + 1),
			Title:      "Intern " + strconv.Itoa(i+1),
			Company:    "Company " + strconv.Itoa(i+1),
			MatchScore: s,
		})
	}
	resp.TotalCount = len(resp.Recommendations)
	return resp
}
