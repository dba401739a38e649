package services

import (
	"slices"

	"pminternship/internship-ai/internal/models"
)

const (
	TabOverview     = "overview"
	TabApplications = "applications"
	TabSaved        = "saved"
	TabProfile      = "profile"

	recentApplicationsShown = 3
)

var DashboardTabs = []string{TabOverview, TabApplications, TabSaved, TabProfile}

func ParseDashboardTab(tab string) (string, error) {
	if slices.Contains(DashboardTabs, tab) {
		return tab, nil
	}
	return "", ErrUnknownTab
}

// BuildDashboardView renders the user dashboard of a session.
func BuildDashboardView(s *models.Session) *models.DashboardView {
	tab := s.DashboardTab
	if _, err := ParseDashboardTab(tab); err != nil {
		tab = TabOverview
	}

	view := &models.DashboardView{
		Tab:   tab,
		Tabs:  slices.Clone(DashboardTabs),
		Stats: dashboardStats(s),
	}

	// newest first
	apps := slices.Clone(s.Applications)
	slices.Reverse(apps)

	switch tab {
	case TabOverview:
		view.RecentApplications = apps[:min(len(apps), recentApplicationsShown)]
	case TabApplications:
		view.Applications = apps
	case TabSaved:
		view.Saved = SavedInternships(s.Recommendations, s.Saved)
	case TabProfile:
		draft := cloneProfile(s.Profile)
		view.Profile = &draft
	}
	return view
}

func dashboardStats(s *models.Session) models.DashboardStats {
	stats := models.DashboardStats{
		TotalApplications: len(s.Applications),
		SavedInternships:  savedCount(s.Recommendations, s.Saved),
	}
	for _, a := range s.Applications {
		switch a.Status {
		case models.ApplicationInterview:
			stats.InterviewsScheduled++
		case models.ApplicationOffered:
			stats.OffersReceived++
		}
	}
	return stats
}
