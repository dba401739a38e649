package services

import (
	"fmt"
	"strings"

	"pminternship/internship-ai/internal/models"
)

// InternshipDocument is the text embedded for a posting at ingest time.
func InternshipDocument(in models.Internship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s\n", in.Title, in.Company)
	fmt.Fprintf(&b, "Sector: %s\n", in.Sector)
	fmt.Fprintf(&b, "Location: %s (%s)\n", in.Location, in.Type)
	fmt.Fprintf(&b, "Duration: %s\n", in.Duration)
	if len(in.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(in.Skills, ", "))
	}
	if len(in.Requirements) > 0 {
		fmt.Fprintf(&b, "Requirements: %s\n", strings.Join(in.Requirements, "; "))
	}
	b.WriteString(in.Description)
	return b.String()
}

// ProfileQuery is the text embedded for a recommendation request. It reads
// like a posting so that both land near each other in the vector space.
func ProfileQuery(req models.RecommendationRequest) string {
	var b strings.Builder
	b.WriteString("Internship candidate\n")
	if req.Education != "" {
		fmt.Fprintf(&b, "Education: %s\n", req.Education)
	}
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(req.Skills, ", "))
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "Sector: %s\n", strings.Join(req.Interests, ", "))
	}
	if req.PreferredLocation != "" {
		fmt.Fprintf(&b, "Location: %s\n", req.PreferredLocation)
	}
	if req.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", req.Experience)
	}
	return b.String()
}
