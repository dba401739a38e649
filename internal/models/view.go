package models

import "pminternship/internship-ai/internal/navigation"

// ViewModel describes the single active screen of a session.
type ViewModel struct {
	View          navigation.View `json:"view"`
	Authenticated bool            `json:"authenticated"`
	Loading       bool            `json:"loading"`
	User          *SessionUser    `json:"user,omitempty"`
	Notice        *Notice         `json:"notice,omitempty"`
	Landing       *LandingView    `json:"landing,omitempty"`
	Auth          *AuthView       `json:"auth,omitempty"`
	Profile       *ProfileView    `json:"profile,omitempty"`
	Results       *ResultsView    `json:"results,omitempty"`
	Dashboard     *DashboardView  `json:"dashboard,omitempty"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LandingView struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	About    string    `json:"about"`
	Features []Feature `json:"features"`
	Action   string    `json:"action"`
}

type AuthView struct {
	Tabs           []string `json:"tabs"`
	SubmitDisabled bool     `json:"submitDisabled"`
}

type ProfileView struct {
	Draft          ProfileData `json:"draft"`
	SubmitDisabled bool        `json:"submitDisabled"`
}

type ProfileOptions struct {
	SkillSuggestions []string `json:"skillSuggestions"`
	Sectors          []string `json:"sectors"`
	Locations        []string `json:"locations"`
	Degrees          []string `json:"degrees"`
	GraduationYears  []string `json:"graduationYears"`
	Durations        []string `json:"durations"`
	Stipends         []string `json:"stipends"`
}

type ScoreBand string

const (
	ScoreExcellent ScoreBand = "excellent"
	ScoreGood      ScoreBand = "good"
	ScoreFair      ScoreBand = "fair"
	ScoreLow       ScoreBand = "low"
)

type ResultItem struct {
	Internship
	Saved     bool      `json:"saved"`
	Applied   bool      `json:"applied"`
	ScoreBand ScoreBand `json:"scoreBand"`
}

type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// ResultsView is either a non-empty ordered item list or an empty state,
// never both.
type ResultsView struct {
	Empty          bool         `json:"empty"`
	EmptyState     *EmptyState  `json:"emptyState,omitempty"`
	Items          []ResultItem `json:"items,omitempty"`
	TotalCount     int          `json:"totalCount"`
	ProcessingTime int64        `json:"processingTime"`
	SavedCount     int          `json:"savedCount"`
}

type DashboardStats struct {
	TotalApplications   int `json:"totalApplications"`
	SavedInternships    int `json:"savedInternships"`
	InterviewsScheduled int `json:"interviewsScheduled"`
	OffersReceived      int `json:"offersReceived"`
}

type DashboardView struct {
	Tab                string         `json:"tab"`
	Tabs               []string       `json:"tabs"`
	Stats              DashboardStats `json:"stats"`
	RecentApplications []Application  `json:"recentApplications,omitempty"`
	Applications       []Application  `json:"applications,omitempty"`
	Saved              []Internship   `json:"saved,omitempty"`
	Profile            *ProfileData   `json:"profile,omitempty"`
}

type AdminView struct {
	Page             int                `json:"page"`
	PageSize         int                `json:"pageSize"`
	TotalPages       int                `json:"totalPages"`
	Total            int64              `json:"total"`
	TotalUsers       int64              `json:"totalUsers"`
	TotalSubmissions int64              `json:"totalSubmissions"`
	TopSkill         string             `json:"topSkill"`
	TopLocation      string             `json:"topLocation"`
	PopularSkills    []SkillCount       `json:"popularSkills"`
	Locations        []LocationCount    `json:"locations"`
	Sectors          []SectorCount      `json:"sectors"`
	RecentActivity   []RecentSubmission `json:"recentActivity"`
	Submissions      []UserProfile      `json:"submissions"`
	Loading          bool               `json:"loading"`
	Notice           *Notice            `json:"notice,omitempty"`
}
