package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/navigation"
)

const sessionLockStripes = 64

// SessionCoordinator is the single owner of portal session state. Every
// operation loads the session, applies one change, saves it and returns the
// view of the active screen.
//
// Operations that call out over the network (login, signup, profile submit,
// admin fetches) release the session lock during the call; the session's
// loading flag rejects a second submission with ErrRequestInFlight until the
// first one completes. Validation failures come back as a *ValidationError
// together with the re-rendered view.
type SessionCoordinator interface {
	Open(ctx context.Context, sessionID string) (string, error)
	View(ctx context.Context, sessionID string) (*models.ViewModel, error)
	Navigate(ctx context.Context, sessionID, page string) (*models.ViewModel, error)
	GetStarted(ctx context.Context, sessionID string) (*models.ViewModel, error)
	DismissNotice(ctx context.Context, sessionID string) (*models.ViewModel, error)

	Login(ctx context.Context, sessionID string, req LoginRequest) (*models.ViewModel, error)
	Signup(ctx context.Context, sessionID string, req SignupRequest) (*models.ViewModel, error)
	Logout(ctx context.Context, sessionID string) (*models.ViewModel, error)

	UpdatePersonalInfo(ctx context.Context, sessionID string, u PersonalInfoUpdate) (*models.ViewModel, error)
	UpdateEducation(ctx context.Context, sessionID string, u EducationUpdate) (*models.ViewModel, error)
	UpdatePreferences(ctx context.Context, sessionID string, u PreferencesUpdate) (*models.ViewModel, error)
	AddSkill(ctx context.Context, sessionID, skill string) (*models.ViewModel, error)
	RemoveSkill(ctx context.Context, sessionID, skill string) (*models.ViewModel, error)
	ToggleInterest(ctx context.Context, sessionID, interest string) (*models.ViewModel, error)
	TogglePreferredLocation(ctx context.Context, sessionID, location string) (*models.ViewModel, error)
	TogglePreferredSector(ctx context.Context, sessionID, sector string) (*models.ViewModel, error)
	SubmitProfile(ctx context.Context, sessionID string) (*models.ViewModel, error)
	ProfileHistory(ctx context.Context, sessionID string) ([]models.UserProfile, error)

	ToggleSave(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error)
	Apply(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error)
	Share(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error)
	BackToProfile(ctx context.Context, sessionID string) (*models.ViewModel, error)
	SetDashboardTab(ctx context.Context, sessionID, tab string) (*models.ViewModel, error)

	AdminDashboard(ctx context.Context, sessionID string, page int) (*models.AdminView, error)
	AdminRefresh(ctx context.Context, sessionID string) (*models.AdminView, error)
	AdminSubmissions(ctx context.Context, sessionID string) ([]models.UserProfile, error)
}

type CoordinatorConfig struct {
	Thresholds ScoreThresholds
	PublicURL  string
	// SaveProfiles sends each submitted profile to the backend before
	// asking for recommendations.
	SaveProfiles bool
}

type sessionCoordinator struct {
	store       SessionStore
	auth        Authenticator
	recommender Recommender
	client      APIClient
	admin       AdminViewer
	cfg         CoordinatorConfig
	locks       [sessionLockStripes]sync.Mutex
	now         func() time.Time
}

func NewSessionCoordinator(
	store SessionStore,
	auth Authenticator,
	recommender Recommender,
	client APIClient,
	admin AdminViewer,
	cfg CoordinatorConfig,
) SessionCoordinator {
	return &sessionCoordinator{
		store:       store,
		auth:        auth,
		recommender: recommender,
		client:      client,
		admin:       admin,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Open implements SessionCoordinator. It returns sessionID when that session
// exists, otherwise the id of a freshly created session.
func (c *sessionCoordinator) Open(ctx context.Context, sessionID string) (string, error) {
	if sessionID != "" {
		_, err := c.store.Get(ctx, sessionID)
		if err == nil {
			return sessionID, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
	}

	s := models.NewSession(uuid.New().String(), c.now())
	if err := c.store.Save(ctx, s); err != nil {
		return "", err
	}
	log.Printf("🆕 Session %s created\n", s.ID)
	return s.ID, nil
}

// View implements SessionCoordinator.
func (c *sessionCoordinator) View(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	unlock := c.lock(sessionID)
	defer unlock()

	s, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.render(s), nil
}

// Navigate implements SessionCoordinator.
func (c *sessionCoordinator) Navigate(ctx context.Context, sessionID, page string) (*models.ViewModel, error) {
	event := navigation.ParsePage(page)
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		s.Nav = navigation.Transition(s.Nav, event)
		return nil
	})
}

// GetStarted implements SessionCoordinator.
func (c *sessionCoordinator) GetStarted(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		s.Nav = navigation.Transition(s.Nav, navigation.EventGetStarted)
		return nil
	})
}

// DismissNotice implements SessionCoordinator.
func (c *sessionCoordinator) DismissNotice(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		s.Notice = nil
		return nil
	})
}

// Login implements SessionCoordinator.
func (c *sessionCoordinator) Login(ctx context.Context, sessionID string, req LoginRequest) (*models.ViewModel, error) {
	var generation int
	if view, err := c.begin(ctx, sessionID, func(s *models.Session) error {
		generation = s.Generation
		return req.Validate()
	}); err != nil {
		return view, err
	}

	user, err := c.auth.Login(context.WithoutCancel(ctx), req)

	return c.finish(ctx, sessionID, func(s *models.Session) {
		if s.Generation != generation {
			log.Printf("⚠️  Dropping login result for session %s: logged out meanwhile\n", sessionID)
			return
		}
		if err != nil {
			log.Printf("❌ Login failed for session %s: %v\n", sessionID, err)
			s.Notice = destructiveNotice("Sign in failed", err.Error())
			return
		}
		s.User = user
		s.Nav = navigation.Transition(s.Nav, navigation.EventLoginSucceeded)
		s.Notice = &models.Notice{
			Title:       "Welcome back!",
			Description: "You have been signed in to your account.",
			Variant:     models.NoticeDefault,
		}
	})
}

// Signup implements SessionCoordinator.
func (c *sessionCoordinator) Signup(ctx context.Context, sessionID string, req SignupRequest) (*models.ViewModel, error) {
	var generation int
	if view, err := c.begin(ctx, sessionID, func(s *models.Session) error {
		generation = s.Generation
		return req.Validate()
	}); err != nil {
		return view, err
	}

	user, err := c.auth.Signup(context.WithoutCancel(ctx), req)

	return c.finish(ctx, sessionID, func(s *models.Session) {
		if s.Generation != generation {
			log.Printf("⚠️  Dropping signup result for session %s: logged out meanwhile\n", sessionID)
			return
		}
		if err != nil {
			log.Printf("❌ Signup failed for session %s: %v\n", sessionID, err)
			s.Notice = destructiveNotice("Sign up failed", err.Error())
			return
		}
		s.User = user
		s.Profile.PersonalInfo.Name = req.Name
		s.Profile.PersonalInfo.Email = req.Email
		s.Profile.PersonalInfo.Phone = req.Phone
		s.Nav = navigation.Transition(s.Nav, navigation.EventSignupSucceeded)
		s.Notice = &models.Notice{
			Title:       "Account created successfully!",
			Description: "Please complete your profile to get personalized recommendations.",
			Variant:     models.NoticeDefault,
		}
	})
}

// Logout implements SessionCoordinator. Everything tied to the signed-in user
// is dropped. Requests still in flight keep their loading flags and their
// results are discarded when they arrive.
func (c *sessionCoordinator) Logout(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		fresh := models.NewSession(s.ID, s.CreatedAt)
		fresh.Generation = s.Generation + 1
		fresh.Loading = s.Loading
		fresh.Admin.Loading = s.Admin.Loading
		fresh.Nav = navigation.Transition(s.Nav, navigation.EventLogout)
		fresh.Notice = &models.Notice{
			Title:       "Logged out",
			Description: "You have been successfully logged out.",
			Variant:     models.NoticeDefault,
		}
		*s = *fresh
		return nil
	})
}

// UpdatePersonalInfo implements SessionCoordinator.
func (c *sessionCoordinator) UpdatePersonalInfo(ctx context.Context, sessionID string, u PersonalInfoUpdate) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.UpdatePersonalInfo(u) })
}

// UpdateEducation implements SessionCoordinator.
func (c *sessionCoordinator) UpdateEducation(ctx context.Context, sessionID string, u EducationUpdate) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.UpdateEducation(u) })
}

// UpdatePreferences implements SessionCoordinator.
func (c *sessionCoordinator) UpdatePreferences(ctx context.Context, sessionID string, u PreferencesUpdate) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.UpdatePreferences(u) })
}

// AddSkill implements SessionCoordinator.
func (c *sessionCoordinator) AddSkill(ctx context.Context, sessionID, skill string) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.AddSkill(skill) })
}

// RemoveSkill implements SessionCoordinator.
func (c *sessionCoordinator) RemoveSkill(ctx context.Context, sessionID, skill string) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.RemoveSkill(skill) })
}

// ToggleInterest implements SessionCoordinator.
func (c *sessionCoordinator) ToggleInterest(ctx context.Context, sessionID, interest string) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.ToggleInterest(interest) })
}

// TogglePreferredLocation implements SessionCoordinator.
func (c *sessionCoordinator) TogglePreferredLocation(ctx context.Context, sessionID, location string) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.TogglePreferredLocation(location) })
}

// TogglePreferredSector implements SessionCoordinator.
func (c *sessionCoordinator) TogglePreferredSector(ctx context.Context, sessionID, sector string) (*models.ViewModel, error) {
	return c.editProfile(ctx, sessionID, func(p *ProfileCollector) { p.TogglePreferredSector(sector) })
}

// SubmitProfile implements SessionCoordinator.
func (c *sessionCoordinator) SubmitProfile(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	var (
		snapshot   models.ProfileData
		userID     string
		generation int
	)
	if view, err := c.begin(ctx, sessionID, func(s *models.Session) error {
		if !s.Nav.Authenticated || s.User == nil {
			return ErrNotAuthenticated
		}
		generation = s.Generation
		submitted, err := NewProfileCollector(s.Profile).Submit()
		if err != nil {
			return err
		}
		snapshot = submitted
		userID = s.User.ID
		return nil
	}); err != nil {
		return view, err
	}

	callCtx := context.WithoutCancel(ctx)
	if c.cfg.SaveProfiles && c.client != nil {
		saved := c.client.SaveUserProfile(callCtx, ToUserProfile(userID, snapshot, c.now()))
		if !saved.Success {
			log.Printf("⚠️  Failed to save profile for user %s: %s\n", userID, saved.Error)
		}
	}

	log.Printf("🔍 Requesting recommendations for user %s\n", userID)
	resp, err := c.recommender.Recommend(callCtx, ToRecommendationRequest(userID, snapshot))

	return c.finish(ctx, sessionID, func(s *models.Session) {
		if s.Generation != generation {
			// signed out while the request was running
			return
		}
		if err != nil {
			log.Printf("❌ Recommendation failed for user %s: %v\n", userID, err)
			s.Notice = destructiveNotice("Could not get recommendations", err.Error())
			return
		}
		s.Recommendations = resp
		s.Nav = navigation.Transition(s.Nav, navigation.EventProfileSubmitted)
		s.Notice = &models.Notice{
			Title:       "Recommendations Generated!",
			Description: fmt.Sprintf("Found %d personalized internship recommendations for you.", len(resp.Recommendations)),
			Variant:     models.NoticeDefault,
		}
		log.Printf("✅ %d recommendations for user %s\n", len(resp.Recommendations), userID)
	})
}

// ProfileHistory implements SessionCoordinator.
func (c *sessionCoordinator) ProfileHistory(ctx context.Context, sessionID string) ([]models.UserProfile, error) {
	unlock := c.lock(sessionID)
	s, err := c.store.Get(ctx, sessionID)
	unlock()
	if err != nil {
		return nil, err
	}
	if !s.Nav.Authenticated || s.User == nil {
		return nil, ErrNotAuthenticated
	}
	if c.client == nil {
		return []models.UserProfile{}, nil
	}

	resp := c.client.GetUserHistory(ctx, s.User.ID)
	if !resp.Success {
		return nil, fmt.Errorf("failed to load profile history: %s", failureMessage(resp.Error))
	}
	if resp.Data == nil {
		return []models.UserProfile{}, nil
	}
	return *resp.Data, nil
}

// ToggleSave implements SessionCoordinator.
func (c *sessionCoordinator) ToggleSave(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		in, ok := s.Recommendations.Find(internshipID)
		if !ok {
			return ErrInternshipNotFound
		}
		next, saved := s.Saved.Toggle(internshipID)
		s.Saved = next
		title := "Removed from saved"
		if saved {
			title = "Saved"
		}
		s.Notice = &models.Notice{
			Title:       title,
			Description: fmt.Sprintf("%s at %s", in.Title, in.Company),
			Variant:     models.NoticeDefault,
		}
		return nil
	})
}

// Apply implements SessionCoordinator. Applying twice to the same posting
// records a single application.
func (c *sessionCoordinator) Apply(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		in, ok := s.Recommendations.Find(internshipID)
		if !ok {
			return ErrInternshipNotFound
		}
		if slices.ContainsFunc(s.Applications, func(a models.Application) bool { return a.InternshipID == internshipID }) {
			s.Notice = &models.Notice{
				Title:       "Already applied",
				Description: fmt.Sprintf("You have already applied for %s at %s", in.Title, in.Company),
				Variant:     models.NoticeDefault,
			}
			return nil
		}
		s.Applications = append(s.Applications, models.Application{
			InternshipID: in.ID,
			Title:        in.Title,
			Company:      in.Company,
			MatchScore:   in.MatchScore,
			Status:       models.ApplicationPending,
			AppliedAt:    c.now(),
		})
		s.Notice = &models.Notice{
			Title:       "Application successful",
			Description: fmt.Sprintf("Action completed for %s at %s", in.Title, in.Company),
			Variant:     models.NoticeDefault,
		}
		return nil
	})
}

// Share implements SessionCoordinator.
func (c *sessionCoordinator) Share(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		in, ok := s.Recommendations.Find(internshipID)
		if !ok {
			return ErrInternshipNotFound
		}
		s.Notice = &models.Notice{
			Title:       "Share link ready",
			Description: fmt.Sprintf("%s/internships/%s", c.cfg.PublicURL, in.ID),
			Variant:     models.NoticeDefault,
		}
		return nil
	})
}

// BackToProfile implements SessionCoordinator.
func (c *sessionCoordinator) BackToProfile(ctx context.Context, sessionID string) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		s.Nav = navigation.Transition(s.Nav, navigation.EventBackToProfile)
		return nil
	})
}

// SetDashboardTab implements SessionCoordinator.
func (c *sessionCoordinator) SetDashboardTab(ctx context.Context, sessionID, tab string) (*models.ViewModel, error) {
	parsed, err := ParseDashboardTab(tab)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		s.DashboardTab = parsed
		return nil
	})
}

func (c *sessionCoordinator) editProfile(ctx context.Context, sessionID string, edit func(p *ProfileCollector)) (*models.ViewModel, error) {
	return c.mutate(ctx, sessionID, func(s *models.Session) error {
		collector := NewProfileCollector(s.Profile)
		edit(collector)
		s.Profile = collector.Draft()
		return nil
	})
}

// mutate applies fn under the session lock. When fn fails the session is not
// saved, except for validation errors which are recorded as a notice.
func (c *sessionCoordinator) mutate(ctx context.Context, sessionID string, fn func(s *models.Session) error) (*models.ViewModel, error) {
	unlock := c.lock(sessionID)
	defer unlock()

	s, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(s); err != nil {
		return c.reject(ctx, s, err)
	}
	return c.save(ctx, s)
}

// begin marks the session as having a request in flight after prepare
// accepted it.
func (c *sessionCoordinator) begin(ctx context.Context, sessionID string, prepare func(s *models.Session) error) (*models.ViewModel, error) {
	unlock := c.lock(sessionID)
	defer unlock()

	s, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Loading {
		return nil, ErrRequestInFlight
	}
	if err := prepare(s); err != nil {
		return c.reject(ctx, s, err)
	}

	s.Loading = true
	s.Notice = nil
	if _, err := c.save(ctx, s); err != nil {
		return nil, err
	}
	return nil, nil
}

// finish clears the in-flight flag and applies the outcome of the request.
func (c *sessionCoordinator) finish(ctx context.Context, sessionID string, apply func(s *models.Session)) (*models.ViewModel, error) {
	unlock := c.lock(sessionID)
	defer unlock()

	s, err := c.store.Get(context.WithoutCancel(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	s.Loading = false
	apply(s)
	return c.save(context.WithoutCancel(ctx), s)
}

func (c *sessionCoordinator) reject(ctx context.Context, s *models.Session, err error) (*models.ViewModel, error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	s.Notice = destructiveNotice(verr.Title, verr.Description)
	view, saveErr := c.save(ctx, s)
	if saveErr != nil {
		return nil, saveErr
	}
	return view, err
}

func (c *sessionCoordinator) save(ctx context.Context, s *models.Session) (*models.ViewModel, error) {
	s.UpdatedAt = c.now()
	if err := c.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return c.render(s), nil
}

func (c *sessionCoordinator) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &c.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

func destructiveNotice(title, description string) *models.Notice {
	return &models.Notice{Title: title, Description: description, Variant: models.NoticeDestructive}
}
