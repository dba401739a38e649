package services_test

import (
	"errors"
	"sync"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/repositories"
)

type fakeSubmissionRepo struct {
	mu      sync.Mutex
	created []models.Submission
	err     error

	count     int64
	users     int64
	skills    []models.SkillCount
	locations []models.LocationCount
	sectors   []models.SectorCount
	recent    []models.Submission
	limits    []int
}

var _ repositories.SubmissionRepository = (*fakeSubmissionRepo)(nil)

func (f *fakeSubmissionRepo) Create(submission *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *submission)
	return nil
}

func (f *fakeSubmissionRepo) stored() []models.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Submission(nil), f.created...)
}

func (f *fakeSubmissionRepo) Count() (int64, error)      { return f.count, f.err }
func (f *fakeSubmissionRepo) CountUsers() (int64, error) { return f.users, f.err }

func (f *fakeSubmissionRepo) PopularSkills(limit int) ([]models.SkillCount, error) {
	f.limits = append(f.limits, limit)
	return f.skills, f.err
}

func (f *fakeSubmissionRepo) LocationDistribution(limit int) ([]models.LocationCount, error) {
	f.limits = append(f.limits, limit)
	return f.locations, f.err
}

func (f *fakeSubmissionRepo) SectorDistribution(limit int) ([]models.SectorCount, error) {
	f.limits = append(f.limits, limit)
	return f.sectors, f.err
}

func (f *fakeSubmissionRepo) Recent(limit int) ([]models.Submission, error) {
	f.limits = append(f.limits, limit)
	return f.recent, f.err
}

type fakeProfileRepo struct {
	profiles []models.UserProfile
	err      error
}

var _ repositories.ProfileRepository = (*fakeProfileRepo)(nil)

func (f *fakeProfileRepo) Create(profile *models.UserProfile) error {
	if f.err != nil {
		return f.err
	}
	f.profiles = append(f.profiles, *profile)
	return nil
}

func (f *fakeProfileRepo) FindByUserID(userID string) ([]models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.UserProfile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) List(page, limit int) ([]models.UserProfile, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	start := min((page-1)*limit, len(f.profiles))
	end := min(start+limit, len(f.profiles))
	return f.profiles[start:end], int64(len(f.profiles)), nil
}

var errDatabase = errors.New("database unavailable")
