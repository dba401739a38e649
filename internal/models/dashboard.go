package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AdminDashboardData struct {
	TotalSubmissions     int64              `json:"totalSubmissions"`
	TotalUsers           int64              `json:"totalUsers"`
	PopularSkills        []SkillCount       `json:"popularSkills"`
	LocationDistribution []LocationCount    `json:"locationDistribution"`
	SectorDistribution   []SectorCount      `json:"sectorDistribution"`
	RecentSubmissions    []RecentSubmission `json:"recentSubmissions"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type SectorCount struct {
	Sector string `json:"sector"`
	Count  int64  `json:"count"`
}

type RecentSubmission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	SubmittedAt time.Time `json:"submittedAt"`
	Skills      []string  `json:"skills"`
	Location    string    `json:"location"`
}

type SubmissionsPage struct {
	Submissions []UserProfile `json:"submissions"`
	Total       int64         `json:"total"`
}

// Submission is one recommendation request as recorded by the backend.
type Submission struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID              string         `gorm:"type:text;index;not null" json:"userId"`
	UserName            string         `gorm:"type:text" json:"userName"`
	Skills              pq.StringArray `gorm:"type:text[]" json:"skills"`
	Interests           pq.StringArray `gorm:"type:text[]" json:"interests"`
	Location            string         `gorm:"type:text" json:"location"`
	RecommendationCount int            `gorm:"not null;default:0" json:"recommendationCount"`
	SubmittedAt         time.Time      `gorm:"index;default:CURRENT_TIMESTAMP" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}
