package models

type InternshipType string

const (
	InternshipRemote InternshipType = "remote"
	InternshipOnsite InternshipType = "onsite"
	InternshipHybrid InternshipType = "hybrid"
)

// Internship is a recommended posting. Field names follow the wire format.
type Internship struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Company             string         `json:"company"`
	Location            string         `json:"location"`
	Duration            string         `json:"duration"`
	Stipend             string         `json:"stipend"`
	Description         string         `json:"description"`
	Requirements        []string       `json:"requirements"`
	Skills              []string       `json:"skills"`
	Sector              string         `json:"sector"`
	MatchScore          float64        `json:"matchScore"`
	ApplicationDeadline string         `json:"applicationDeadline"`
	StartDate           string         `json:"startDate"`
	Type                InternshipType `json:"type"`
	CompanySize         string         `json:"companySize"`
	Benefits            []string       `json:"benefits"`
}

type RecommendationRequest struct {
	UserID            string   `json:"userId" validate:"required"`
	Education         string   `json:"education"`
	Skills            []string `json:"skills" validate:"min=1,dive,required"`
	PreferredLocation string   `json:"preferredLocation"`
	Interests         []string `json:"interests"`
	CGPA              *float64 `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Experience        string   `json:"experience,omitempty"`
}

// RecommendationResponse carries postings already ordered by descending
// match score. ProcessingTime is opaque metadata in milliseconds.
type RecommendationResponse struct {
	Recommendations []Internship `json:"recommendations"`
	TotalCount      int          `json:"totalCount"`
	ProcessingTime  int64        `json:"processingTime"`
}

// Find returns the posting with the given id.
func (r *RecommendationResponse) Find(id string) (*Internship, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Recommendations {
		if r.Recommendations[i].ID == id {
			return &r.Recommendations[i], true
		}
	}
	return nil, false
}

// SavedSet holds the ids of saved postings.
type SavedSet map[string]bool

func (s SavedSet) Has(id string) bool {
	return s[id]
}

// Toggle flips membership of id and returns the resulting set and membership.
// The receiver is not modified.
func (s SavedSet) Toggle(id string) (SavedSet, bool) {
	next := make(SavedSet, len(s)+1)
	for k := range s {
		next[k] = true
	}
	if next[id] {
		delete(next, id)
		return next, false
	}
	next[id] = true
	return next, true
}
