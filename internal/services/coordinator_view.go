package services

import (
	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/navigation"
)

var landingView = models.LandingView{
	Title:    "Find Your Perfect Internship",
	Subtitle: "Get personalized internship recommendations through our AI-powered platform. Part of the PM Internship Scheme to bridge the skill gap and provide quality opportunities.",
	About: "The PM Internship Scheme is a government initiative designed to bridge the skill gap " +
		"by providing quality internship opportunities to students and recent graduates. " +
		"Our AI-powered platform makes it easier to find the perfect match based on your " +
		"skills, interests, and career goals.",
	Features: []models.Feature{
		{Title: "Personalized Matching", Description: "Our AI analyzes your profile to recommend internships that align with your skills and interests."},
		{Title: "Quality Partners", Description: "Partner with vetted companies offering meaningful internship experiences."},
		{Title: "Career Growth", Description: "Build valuable experience and expand your professional network."},
	},
	Action: string(navigation.EventGetStarted),
}

var authTabs = []string{"login", "signup"}

// render builds the view model of the active screen. Only the section of the
// active view is filled in.
func (c *sessionCoordinator) render(s *models.Session) *models.ViewModel {
	view := &models.ViewModel{
		View:          s.Nav.View,
		Authenticated: s.Nav.Authenticated,
		Loading:       s.Loading,
		Notice:        s.Notice,
	}
	if s.Nav.Authenticated {
		view.User = s.User
	}

	switch s.Nav.View {
	case navigation.ViewAuth:
		view.Auth = &models.AuthView{
			Tabs:           append([]string(nil), authTabs...),
			SubmitDisabled: s.Loading,
		}
	case navigation.ViewProfile:
		view.Profile = &models.ProfileView{
			Draft:          cloneProfile(s.Profile),
			SubmitDisabled: s.Loading,
		}
	case navigation.ViewResults:
		view.Results = BuildResultsView(s.Recommendations, s.Saved, s.Applications, c.cfg.Thresholds)
	case navigation.ViewDashboard:
		view.Dashboard = BuildDashboardView(s)
	default:
		landing := landingView
		landing.Features = append([]models.Feature(nil), landingView.Features...)
		view.Landing = &landing
	}
	return view
}
