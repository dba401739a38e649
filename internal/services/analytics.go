package services

import (
	"fmt"
	"time"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/repositories"
)

const (
	analyticsTopEntries    = 10
	analyticsRecentEntries = 10
)

// AnalyticsService computes the admin aggregate from recorded submissions.
type AnalyticsService interface {
	Dashboard() (*models.AdminDashboardData, error)
	Submissions(page, limit int) (*models.SubmissionsPage, error)
}

type analyticsService struct {
	submissions repositories.SubmissionRepository
	profiles    repositories.ProfileRepository
}

func NewAnalyticsService(submissions repositories.SubmissionRepository, profiles repositories.ProfileRepository) AnalyticsService {
	return &analyticsService{submissions: submissions, profiles: profiles}
}

// Dashboard implements AnalyticsService.
func (a *analyticsService) Dashboard() (*models.AdminDashboardData, error) {
	total, err := a.submissions.Count()
	if err != nil {
		return nil, err
	}
	users, err := a.submissions.CountUsers()
	if err != nil {
		return nil, err
	}
	skills, err := a.submissions.PopularSkills(analyticsTopEntries)
	if err != nil {
		return nil, err
	}
	locations, err := a.submissions.LocationDistribution(analyticsTopEntries)
	if err != nil {
		return nil, err
	}
	sectors, err := a.submissions.SectorDistribution(analyticsTopEntries)
	if err != nil {
		return nil, err
	}
	recent, err := a.submissions.Recent(analyticsRecentEntries)
	if err != nil {
		return nil, err
	}

	data := &models.AdminDashboardData{
		TotalSubmissions:     total,
		TotalUsers:           users,
		PopularSkills:        nonNilSlice(skills),
		LocationDistribution: nonNilSlice(locations),
		SectorDistribution:   nonNilSlice(sectors),
		RecentSubmissions:    make([]models.RecentSubmission, 0, len(recent)),
	}
	for _, s := range recent {
		data.RecentSubmissions = append(data.RecentSubmissions, models.RecentSubmission{
			ID:          s.ID.String(),
			UserID:      s.UserID,
			UserName:    s.UserName,
			SubmittedAt: s.SubmittedAt,
			Skills:      nonNil(s.Skills),
			Location:    s.Location,
		})
	}
	return data, nil
}

// Submissions implements AnalyticsService. page is 1-indexed.
func (a *analyticsService) Submissions(page, limit int) (*models.SubmissionsPage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("invalid page %d or limit %d", page, limit)
	}
	profiles, total, err := a.profiles.List(page, limit)
	if err != nil {
		return nil, err
	}
	return &models.SubmissionsPage{Submissions: nonNilSlice(profiles), Total: total}, nil
}

func nonNilSlice[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

// SubmissionFor builds the submission recorded for a served request.
func SubmissionFor(req models.RecommendationRequest, resp *models.RecommendationResponse, now time.Time) models.Submission {
	count := 0
	if resp != nil {
		count = len(resp.Recommendations)
	}
	return models.Submission{
		UserID:              req.UserID,
		UserName:            req.UserID,
		Skills:              nonNil(req.Skills),
		Interests:           nonNil(req.Interests),
		Location:            req.PreferredLocation,
		RecommendationCount: count,
		SubmittedAt:         now,
	}
}
