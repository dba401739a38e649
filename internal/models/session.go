package models

import (
	"time"

	"pminternship/internship-ai/internal/navigation"
)

type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a dismissible message shown above the active view.
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationOffered   ApplicationStatus = "offered"
	ApplicationRejected  ApplicationStatus = "rejected"
)

type Application struct {
	InternshipID string            `json:"internshipId"`
	Title        string            `json:"title"`
	Company      string            `json:"company"`
	MatchScore   float64           `json:"matchScore"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"appliedAt"`
}

// AdminViewState is what the admin viewer has loaded so far.
type AdminViewState struct {
	Page        int                 `json:"page"`
	Dashboard   *AdminDashboardData `json:"dashboard,omitempty"`
	Submissions []UserProfile       `json:"submissions"`
	Total       int64               `json:"total"`
	Loading     bool                `json:"loading"`
}

// Session is the per-visitor UI state owned by the session coordinator.
type Session struct {
	ID              string                  `json:"id"`
	// Generation increases on every logout so late results of requests
	// started before it can be recognised.
	Generation      int                     `json:"generation"`
	Nav             navigation.State        `json:"nav"`
	User            *SessionUser            `json:"user,omitempty"`
	Loading         bool                    `json:"loading"`
	Profile         ProfileData             `json:"profile"`
	Recommendations *RecommendationResponse `json:"recommendations,omitempty"`
	Saved           SavedSet                `json:"saved"`
	Applications    []Application           `json:"applications"`
	DashboardTab    string                  `json:"dashboardTab"`
	Admin           AdminViewState          `json:"admin"`
	Notice          *Notice                 `json:"notice,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		Nav:          navigation.Initial(),
		Saved:        SavedSet{},
		DashboardTab: "overview",
		Admin:        AdminViewState{Page: 1},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
