package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pminternship/internship-ai/internal/models"
)

const (
	adminTopEntriesShown    = 10
	adminRecentEntriesShown = 5
	notAvailable            = "N/A"
)

// AdminViewer loads externally computed analytics into an AdminViewState.
// It never sorts, filters or aggregates what the backend returns.
type AdminViewer interface {
	Load(ctx context.Context, state *models.AdminViewState) error
	GoToPage(ctx context.Context, state *models.AdminViewState, page int) error
	Refresh(ctx context.Context, state *models.AdminViewState) error
	PageSize() int
}

type adminViewer struct {
	client   APIClient
	pageSize int
}

func NewAdminViewer(client APIClient, pageSize int) AdminViewer {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &adminViewer{client: client, pageSize: pageSize}
}

// PageSize implements AdminViewer.
func (a *adminViewer) PageSize() int {
	return a.pageSize
}

// Load implements AdminViewer. It fetches the aggregate and the page the
// state already points at.
func (a *adminViewer) Load(ctx context.Context, state *models.AdminViewState) error {
	return a.Refresh(ctx, state)
}

// GoToPage implements AdminViewer. The page only changes when the fetch
// succeeds.
func (a *adminViewer) GoToPage(ctx context.Context, state *models.AdminViewState, page int) error {
	if page < 1 {
		page = 1
	}
	resp := a.client.GetAllSubmissions(ctx, page, a.pageSize)
	if !resp.Success || resp.Data == nil {
		return fmt.Errorf("failed to load submissions: %s", failureMessage(resp.Error))
	}
	state.Page = page
	state.Submissions = resp.Data.Submissions
	state.Total = resp.Data.Total
	return nil
}

// Refresh implements AdminViewer. Pagination is kept as is.
func (a *adminViewer) Refresh(ctx context.Context, state *models.AdminViewState) error {
	var errs []error

	resp := a.client.GetAdminDashboard(ctx)
	if resp.Success && resp.Data != nil {
		state.Dashboard = resp.Data
	} else {
		errs = append(errs, fmt.Errorf("failed to load dashboard: %s", failureMessage(resp.Error)))
	}

	page := state.Page
	if page < 1 {
		page = 1
	}
	if err := a.GoToPage(ctx, state, page); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// BuildAdminView renders the loaded admin state.
func BuildAdminView(state *models.AdminViewState, pageSize int) *models.AdminView {
	view := &models.AdminView{
		Page:        max(state.Page, 1),
		PageSize:    pageSize,
		Total:       state.Total,
		TopSkill:    notAvailable,
		TopLocation: notAvailable,
		Submissions: state.Submissions,
	}
	if pageSize > 0 {
		view.TotalPages = int((state.Total + int64(pageSize) - 1) / int64(pageSize))
	}
	if view.Submissions == nil {
		view.Submissions = []models.UserProfile{}
	}

	d := state.Dashboard
	if d == nil {
		return view
	}

	view.TotalUsers = d.TotalUsers
	view.TotalSubmissions = d.TotalSubmissions
	if len(d.PopularSkills) > 0 && d.PopularSkills[0].Skill != "" {
		view.TopSkill = d.PopularSkills[0].Skill
	}
	if len(d.LocationDistribution) > 0 && d.LocationDistribution[0].Location != "" {
		view.TopLocation = d.LocationDistribution[0].Location
	}
	view.PopularSkills = d.PopularSkills[:min(len(d.PopularSkills), adminTopEntriesShown)]
	view.Locations = d.LocationDistribution[:min(len(d.LocationDistribution), adminTopEntriesShown)]
	view.Sectors = d.SectorDistribution
	view.RecentActivity = d.RecentSubmissions[:min(len(d.RecentSubmissions), adminRecentEntriesShown)]
	return view
}

var submissionCSVHeader = []string{"userId", "education", "skills", "preferredLocation", "interests", "cgpa", "createdAt"}

// ExportSubmissionsCSV writes submissions as CSV with a header row.
func ExportSubmissionsCSV(w io.Writer, submissions []models.UserProfile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(submissionCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range submissions {
		cgpa := ""
		if s.CGPA != nil {
			cgpa = fmt.Sprintf("%.2f", *s.CGPA)
		}
		record := []string{
			s.UserID,
			s.Education,
			strings.Join(s.Skills, "; "),
			s.PreferredLocation,
			strings.Join(s.Interests, "; "),
			cgpa,
			s.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func failureMessage(msg string) string {
	if msg == "" {
		return defaultRequestFailure
	}
	return msg
}
