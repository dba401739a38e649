package services

import (
	"fmt"

	"pminternship/internship-ai/internal/models"
)

// ScoreThresholds are the lower bounds of the excellent, good and fair
// display bands. They only affect presentation.
type ScoreThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

var DefaultScoreThresholds = ScoreThresholds{Excellent: 90, Good: 75, Fair: 60}

func (t ScoreThresholds) Band(score float64) models.ScoreBand {
	switch {
	case score >= t.Excellent:
		return models.ScoreExcellent
	case score >= t.Good:
		return models.ScoreGood
	case score >= t.Fair:
		return models.ScoreFair
	default:
		return models.ScoreLow
	}
}

// Validate requires strictly descending bounds.
func (t ScoreThresholds) Validate() error {
	if !(t.Excellent > t.Good && t.Good > t.Fair) {
		return fmt.Errorf("score thresholds must be descending, got %v/%v/%v", t.Excellent, t.Good, t.Fair)
	}
	return nil
}

var noMatchesState = models.EmptyState{
	Title:   "No matches found",
	Message: "We couldn't find internships matching your profile. Try adjusting your profile with more skills or broader preferences.",
	Action:  "back_to_profile",
}

// BuildResultsView renders postings in the order received. The postings are
// not modified.
func BuildResultsView(resp *models.RecommendationResponse, saved models.SavedSet, applications []models.Application, thresholds ScoreThresholds) *models.ResultsView {
	view := &models.ResultsView{SavedCount: savedCount(resp, saved)}
	if resp != nil {
		view.TotalCount = resp.TotalCount
		view.ProcessingTime = resp.ProcessingTime
	}

	if resp == nil || len(resp.Recommendations) == 0 {
		empty := noMatchesState
		view.Empty = true
		view.EmptyState = &empty
		return view
	}

	applied := make(map[string]bool, len(applications))
	for _, a := range applications {
		applied[a.InternshipID] = true
	}

	view.Items = make([]models.ResultItem, 0, len(resp.Recommendations))
	for _, in := range resp.Recommendations {
		view.Items = append(view.Items, models.ResultItem{
			Internship: cloneInternship(in),
			Saved:      saved.Has(in.ID),
			Applied:    applied[in.ID],
			ScoreBand:  thresholds.Band(in.MatchScore),
		})
	}
	return view
}

// savedCount counts the saved postings still present in resp, matching
// what SavedInternships lists.
func savedCount(resp *models.RecommendationResponse, saved models.SavedSet) int {
	if resp == nil {
		return 0
	}
	n := 0
	for _, in := range resp.Recommendations {
		if saved.Has(in.ID) {
			n++
		}
	}
	return n
}

// SavedInternships lists the saved postings of resp in result order.
func SavedInternships(resp *models.RecommendationResponse, saved models.SavedSet) []models.Internship {
	if resp == nil {
		return nil
	}
	var out []models.Internship
	for _, in := range resp.Recommendations {
		if saved.Has(in.ID) {
			out = append(out, cloneInternship(in))
		}
	}
	return out
}
