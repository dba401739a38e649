package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProfileData is the profile draft collected by the multi-section form.
type ProfileData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    Education    `json:"education"`
	Skills       []string     `json:"skills"`
	Interests    []string     `json:"interests"`
	Preferences  Preferences  `json:"preferences"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	CGPA        string `json:"cgpa"`
}

type Preferences struct {
	Locations []string `json:"location"`
	Sectors   []string `json:"sectors"`
	Duration  string   `json:"duration"`
	Stipend   string   `json:"stipend"`
}

// UserProfile is the flattened profile exchanged with the backend.
type UserProfile struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	UserID            string         `gorm:"type:text;index;not null" json:"userId" validate:"required"`
	Education         string         `gorm:"type:text" json:"education"`
	Skills            pq.StringArray `gorm:"type:text[]" json:"skills"`
	PreferredLocation string         `gorm:"type:text" json:"preferredLocation"`
	Interests         pq.StringArray `gorm:"type:text[]" json:"interests"`
	CGPA              *float64       `gorm:"type:decimal(4,2)" json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Experience        string         `gorm:"type:text" json:"experience,omitempty"`
	CreatedAt         time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
