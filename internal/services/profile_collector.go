package services

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"pminternship/internship-ai/internal/models"
)

// Options offered by the profile form. Values outside these lists are
// accepted.
var (
	SkillSuggestions = []string{
		"JavaScript", "Python", "React", "Node.js", "Java", "SQL", "Machine Learning",
		"Data Analysis", "UI/UX Design", "Project Management", "Digital Marketing",
		"Content Writing", "Communication", "Leadership", "Problem Solving",
	}
	SectorOptions = []string{
		"Technology", "Healthcare", "Finance", "Education", "E-commerce",
		"Manufacturing", "Consulting", "Media", "Government", "NGO",
		"Startups", "Research & Development",
	}
	LocationOptions = []string{
		"Delhi", "Mumbai", "Bangalore", "Chennai", "Hyderabad", "Pune",
		"Kolkata", "Ahmedabad", "Jaipur", "Lucknow", "Remote",
	}
	DegreeOptions   = []string{"bachelor", "master", "phd", "diploma"}
	DurationOptions = []string{"1-3months", "3-6months", "6-12months", "flexible"}
	StipendOptions  = []string{"unpaid", "5000-10000", "10000-20000", "20000-30000", "30000+"}
)

// ProfileFormOptions returns the option lists of the profile form. Graduation
// years cover six years starting at firstYear.
func ProfileFormOptions(firstYear int) models.ProfileOptions {
	years := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		years = append(years, strconv.Itoa(firstYear+i))
	}
	return models.ProfileOptions{
		SkillSuggestions: slices.Clone(SkillSuggestions),
		Sectors:          slices.Clone(SectorOptions),
		Locations:        slices.Clone(LocationOptions),
		Degrees:          slices.Clone(DegreeOptions),
		GraduationYears:  years,
		Durations:        slices.Clone(DurationOptions),
		Stipends:         slices.Clone(StipendOptions),
	}
}

// Partial updates for one form section. Nil fields are left untouched.
type PersonalInfoUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

type EducationUpdate struct {
	Degree      *string `json:"degree"`
	Field       *string `json:"field"`
	Institution *string `json:"institution"`
	Year        *string `json:"year"`
	CGPA        *string `json:"cgpa"`
}

type PreferencesUpdate struct {
	Duration *string `json:"duration"`
	Stipend  *string `json:"stipend"`
}

// ProfileCollector applies form edits to a profile draft.
type ProfileCollector struct {
	data models.ProfileData
}

func NewProfileCollector(draft models.ProfileData) *ProfileCollector {
	return &ProfileCollector{data: cloneProfile(draft)}
}

// Draft returns a copy of the current draft.
func (p *ProfileCollector) Draft() models.ProfileData {
	return cloneProfile(p.data)
}

func (p *ProfileCollector) UpdatePersonalInfo(u PersonalInfoUpdate) {
	assign(&p.data.PersonalInfo.Name, u.Name)
	assign(&p.data.PersonalInfo.Email, u.Email)
	assign(&p.data.PersonalInfo.Phone, u.Phone)
	assign(&p.data.PersonalInfo.Location, u.Location)
}

func (p *ProfileCollector) UpdateEducation(u EducationUpdate) {
	assign(&p.data.Education.Degree, u.Degree)
	assign(&p.data.Education.Field, u.Field)
	assign(&p.data.Education.Institution, u.Institution)
	assign(&p.data.Education.Year, u.Year)
	assign(&p.data.Education.CGPA, u.CGPA)
}

func (p *ProfileCollector) UpdatePreferences(u PreferencesUpdate) {
	assign(&p.data.Preferences.Duration, u.Duration)
	assign(&p.data.Preferences.Stipend, u.Stipend)
}

// AddSkill appends skill unless it is empty or already present.
func (p *ProfileCollector) AddSkill(skill string) {
	if skill == "" || slices.Contains(p.data.Skills, skill) {
		return
	}
	p.data.Skills = append(p.data.Skills, skill)
}

// RemoveSkill drops every occurrence of skill.
func (p *ProfileCollector) RemoveSkill(skill string) {
	p.data.Skills = without(p.data.Skills, skill)
}

func (p *ProfileCollector) ToggleInterest(interest string) {
	p.data.Interests = toggle(p.data.Interests, interest)
}

func (p *ProfileCollector) TogglePreferredLocation(location string) {
	p.data.Preferences.Locations = toggle(p.data.Preferences.Locations, location)
}

func (p *ProfileCollector) TogglePreferredSector(sector string) {
	p.data.Preferences.Sectors = toggle(p.data.Preferences.Sectors, sector)
}

// Validate reports the first rule the draft breaks.
func (p *ProfileCollector) Validate() error {
	if p.data.PersonalInfo.Name == "" || p.data.PersonalInfo.Email == "" {
		return ErrProfileRequiredFields
	}
	if len(p.data.Skills) == 0 {
		return ErrSkillsRequired
	}
	return nil
}

// Submit validates the draft and returns a snapshot detached from it.
func (p *ProfileCollector) Submit() (models.ProfileData, error) {
	if err := p.Validate(); err != nil {
		return models.ProfileData{}, err
	}
	return cloneProfile(p.data), nil
}

// ToRecommendationRequest flattens a submitted profile into the backend
// request shape.
func ToRecommendationRequest(userID string, profile models.ProfileData) models.RecommendationRequest {
	return models.RecommendationRequest{
		UserID:            userID,
		Education:         describeEducation(profile.Education),
		Skills:            slices.Clone(profile.Skills),
		PreferredLocation: preferredLocation(profile),
		Interests:         nonNil(slices.Clone(profile.Interests)),
		CGPA:              parseCGPA(profile.Education.CGPA),
	}
}

// ToUserProfile builds the profile record saved with the backend.
func ToUserProfile(userID string, profile models.ProfileData, now time.Time) models.UserProfile {
	return models.UserProfile{
		UserID:            userID,
		Education:         describeEducation(profile.Education),
		Skills:            pq.StringArray(slices.Clone(profile.Skills)),
		PreferredLocation: preferredLocation(profile),
		Interests:         pq.StringArray(nonNil(slices.Clone(profile.Interests))),
		CGPA:              parseCGPA(profile.Education.CGPA),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func describeEducation(e models.Education) string {
	var b strings.Builder
	b.WriteString(e.Degree)
	if e.Field != "" {
		if b.Len() > 0 {
			b.WriteString(" in ")
		}
		b.WriteString(e.Field)
	}
	if e.Institution != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Institution)
	}
	return b.String()
}

func preferredLocation(profile models.ProfileData) string {
	if len(profile.Preferences.Locations) > 0 {
		return profile.Preferences.Locations[0]
	}
	return profile.PersonalInfo.Location
}

func parseCGPA(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toggle(values []string, v string) []string {
	if slices.Contains(values, v) {
		return without(values, v)
	}
	return append(slices.Clone(values), v)
}

func without(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func cloneProfile(d models.ProfileData) models.ProfileData {
	d.Skills = nonNil(slices.Clone(d.Skills))
	d.Interests = nonNil(slices.Clone(d.Interests))
	d.Preferences.Locations = nonNil(slices.Clone(d.Preferences.Locations))
	d.Preferences.Sectors = nonNil(slices.Clone(d.Preferences.Sectors))
	return d
}
