package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/navigation"
	"pminternship/internship-ai/internal/services"
)

type coordinatorFixture struct {
	coord  services.SessionCoordinator
	client *fakeAPIClient
	id     string
}

func newFixture(t *testing.T, rec services.Recommender, client *fakeAPIClient, cfg services.CoordinatorConfig) *coordinatorFixture {
	t.Helper()
	return newFixtureWithAuth(t, services.NewSimulatedAuthenticator(0), rec, client, cfg)
}

func newFixtureWithAuth(t *testing.T, auth services.Authenticator, rec services.Recommender, client *fakeAPIClient, cfg services.CoordinatorConfig) *coordinatorFixture {
	t.Helper()
	if client == nil {
		client = &fakeAPIClient{}
	}
	if cfg.Thresholds == (services.ScoreThresholds{}) {
		cfg.Thresholds = services.DefaultScoreThresholds
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "https://portal.test"
	}

	coord := services.NewSessionCoordinator(
		services.NewMemorySessionStore(time.Hour),
		auth,
		rec,
		client,
		services.NewAdminViewer(client, 20),
		cfg,
	)
	id, err := coord.Open(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	return &coordinatorFixture{coord: coord, client: client, id: id}
}

func (f *coordinatorFixture) signup(t *testing.T) *models.ViewModel {
	t.Helper()
	view, err := f.coord.Signup(context.Background(), f.id, services.SignupRequest{
		Email: "a@b.com", Name: "A", Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return view
}

func (f *coordinatorFixture) fillProfile(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.coord.AddSkill(ctx, f.id, "Python"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.coord.ToggleInterest(ctx, f.id, "Technology"); err != nil {
		t.Fatal(err)
	}
}

func (f *coordinatorFixture) toResults(t *testing.T) *models.ViewModel {
	t.Helper()
	f.signup(t)
	f.fillProfile(t)
	view, err := f.coord.SubmitProfile(context.Background(), f.id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return view
}

// ── Sessions and navigation ──

func TestOpen_NewAndExistingSessions(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	ctx := context.Background()

	same, err := f.coord.Open(ctx, f.id)
	if err != nil || same != f.id {
		t.Fatalf("Open(existing) = %q, %v", same, err)
	}
	fresh, err := f.coord.Open(ctx, "expired-id")
	if err != nil || fresh == "expired-id" || fresh == "" {
		t.Fatalf("Open(unknown) = %q, %v", fresh, err)
	}

	view, err := f.coord.View(ctx, fresh)
	if err != nil {
		t.Fatal(err)
	}
	if view.View != navigation.ViewLanding || view.Landing == nil || view.Authenticated {
		t.Fatalf("fresh view = %+v", view)
	}
}

func TestNavigate_ProtectedViewsRequireAuth(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	ctx := context.Background()

	for _, page := range []string{"dashboard", "profile"} {
		view, err := f.coord.Navigate(ctx, f.id, page)
		if err != nil {
			t.Fatal(err)
		}
		if view.View != navigation.ViewAuth || view.Auth == nil {
			t.Errorf("navigate %s while anonymous = %s", page, view.View)
		}
	}

	view, _ := f.coord.Navigate(ctx, f.id, "nowhere")
	if view.View != navigation.ViewLanding {
		t.Errorf("unknown page = %s", view.View)
	}
}

func TestGetStarted(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	ctx := context.Background()

	view, _ := f.coord.GetStarted(ctx, f.id)
	if view.View != navigation.ViewAuth {
		t.Fatalf("anonymous get started = %s", view.View)
	}

	f.signup(t)
	f.coord.Navigate(ctx, f.id, "home")
	view, _ = f.coord.GetStarted(ctx, f.id)
	if view.View != navigation.ViewProfile {
		t.Fatalf("signed in get started = %s", view.View)
	}
}

// ── Auth ──

func TestSignup_GoesToProfile(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	view := f.signup(t)

	if view.View != navigation.ViewProfile || !view.Authenticated {
		t.Fatalf("view = %s authenticated=%v", view.View, view.Authenticated)
	}
	if view.Notice == nil || view.Notice.Title != "Account created successfully!" {
		t.Fatalf("notice = %+v", view.Notice)
	}
	if view.Profile.Draft.PersonalInfo.Name != "A" || view.Profile.Draft.PersonalInfo.Email != "a@b.com" {
		t.Fatalf("draft not prefilled: %+v", view.Profile.Draft.PersonalInfo)
	}
	if view.Loading {
		t.Fatal("loading left on")
	}
}

func TestSignup_PasswordMismatchStaysOnAuth(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	ctx := context.Background()
	f.coord.Navigate(ctx, f.id, "signup")

	view, err := f.coord.Signup(ctx, f.id, services.SignupRequest{
		Email: "a@b.com", Name: "A", Password: "secret1", ConfirmPassword: "secret2",
	})
	if !errors.Is(err, services.ErrPasswordMismatch) {
		t.Fatalf("err = %v", err)
	}
	if view == nil || view.View != navigation.ViewAuth || view.Authenticated {
		t.Fatalf("view = %+v", view)
	}
	if view.Notice == nil || view.Notice.Variant != models.NoticeDestructive || view.Notice.Title != "Passwords don't match" {
		t.Fatalf("notice = %+v", view.Notice)
	}
}

func TestLogin_GoesToDashboard(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	view, err := f.coord.Login(context.Background(), f.id, services.LoginRequest{Email: "ravi@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if view.View != navigation.ViewDashboard || view.Dashboard == nil {
		t.Fatalf("view = %+v", view)
	}
	if view.User == nil || view.User.Name != "ravi" {
		t.Fatalf("user = %+v", view.User)
	}
	if view.Notice == nil || view.Notice.Title != "Welcome back!" {
		t.Fatalf("notice = %+v", view.Notice)
	}
}

func TestLogout_ResetsSession(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: recommendations(95, 88, 82)}, nil, services.CoordinatorConfig{})
	f.toResults(t)
	ctx := context.Background()
	f.coord.ToggleSave(ctx, f.id, "1")

	view, err := f.coord.Logout(ctx, f.id)
	if err != nil {
		t.Fatal(err)
	}
	if view.View != navigation.ViewLanding || view.Authenticated || view.User != nil {
		t.Fatalf("view = %+v", view)
	}
	if view.Notice == nil || view.Notice.Title != "Logged out" {
		t.Fatalf("notice = %+v", view.Notice)
	}

	f.signup(t)
	view, _ = f.coord.Navigate(ctx, f.id, "dashboard")
	if view.Dashboard.Stats.SavedInternships != 0 {
		t.Fatal("saved set survived logout")
	}
}

func TestLogout_DropsLateAuthResult(t *testing.T) {
	cases := map[string]func(f *coordinatorFixture) (*models.ViewModel, error){
		"login": func(f *coordinatorFixture) (*models.ViewModel, error) {
			return f.coord.Login(context.Background(), f.id, services.LoginRequest{Email: "ravi@example.com", Password: "secret1"})
		},
		"signup": func(f *coordinatorFixture) (*models.ViewModel, error) {
			return f.coord.Signup(context.Background(), f.id, services.SignupRequest{
				Email: "a@b.com", Name: "A", Password: "secret1", ConfirmPassword: "secret1",
			})
		},
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			auth := newBlockingAuthenticator()
			f := newFixtureWithAuth(t, auth, &instantRecommender{}, nil, services.CoordinatorConfig{})
			ctx := context.Background()

			type result struct {
				view *models.ViewModel
				err  error
			}
			done := make(chan result, 1)
			go func() {
				view, err := call(f)
				done <- result{view, err}
			}()

			select {
			case <-auth.started:
			case <-time.After(5 * time.Second):
				t.Fatal("request never reached the authenticator")
			}

			view, err := f.coord.Logout(ctx, f.id)
			if err != nil {
				t.Fatal(err)
			}
			if !view.Loading {
				t.Fatal("logout cleared the in-flight flag")
			}

			close(auth.release)
			var r result
			select {
			case r = <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("request never completed")
			}
			if r.err != nil {
				t.Fatal(r.err)
			}
			if r.view.Authenticated || r.view.User != nil || r.view.View != navigation.ViewLanding || r.view.Loading {
				t.Fatalf("late result applied after logout: %+v", r.view)
			}

			view, err = f.coord.View(ctx, f.id)
			if err != nil {
				t.Fatal(err)
			}
			if view.Authenticated || view.User != nil {
				t.Fatalf("stored session signed in after logout: %+v", view)
			}
		})
	}
}

func TestLogout_KeepsAdminFetchInFlight(t *testing.T) {
	client := &fakeAPIClient{
		dashboard:        okDashboard(models.AdminDashboardData{TotalUsers: 7}),
		submissions:      pagedSubmissions(3),
		dashboardGate:    make(chan struct{}),
		dashboardStarted: make(chan struct{}, 8),
	}
	f := newFixture(t, &instantRecommender{}, client, services.CoordinatorConfig{})
	f.signup(t)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.coord.AdminDashboard(ctx, f.id, 0)
		done <- err
	}()

	select {
	case <-client.dashboardStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("admin fetch never started")
	}

	if _, err := f.coord.Logout(ctx, f.id); err != nil {
		t.Fatal(err)
	}
	f.signup(t)
	if _, err := f.coord.AdminDashboard(ctx, f.id, 0); !errors.Is(err, services.ErrRequestInFlight) {
		t.Fatalf("second fetch err = %v, want ErrRequestInFlight", err)
	}

	close(client.dashboardGate)
	select {
	case err := <-done:
		if !errors.Is(err, services.ErrNotAuthenticated) {
			t.Fatalf("stale fetch err = %v, want ErrNotAuthenticated", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("admin fetch never completed")
	}

	view, err := f.coord.AdminDashboard(ctx, f.id, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.TotalUsers != 7 || len(view.Submissions) != 3 {
		t.Fatalf("view = %+v", view)
	}
	if client.dashboardCalls != 2 {
		t.Fatalf("aggregate fetched %d times, want 2", client.dashboardCalls)
	}
}

// ── Profile submission ──

func TestSubmitProfile_WithoutSkillsStaysOnProfile(t *testing.T) {
	rec := &instantRecommender{resp: recommendations(95)}
	f := newFixture(t, rec, nil, services.CoordinatorConfig{})
	f.signup(t)

	view, err := f.coord.SubmitProfile(context.Background(), f.id)
	if !errors.Is(err, services.ErrSkillsRequired) {
		t.Fatalf("err = %v", err)
	}
	if view.View != navigation.ViewProfile {
		t.Fatalf("view = %s", view.View)
	}
	if view.Notice == nil || view.Notice.Title != "Skills required" {
		t.Fatalf("notice = %+v", view.Notice)
	}
	if rec.count() != 0 {
		t.Fatal("recommender called for an invalid profile")
	}
}

func TestSubmitProfile_ShowsResultsInOrder(t *testing.T) {
	rec := &instantRecommender{resp: recommendations(95, 88, 82)}
	f := newFixture(t, rec, nil, services.CoordinatorConfig{})
	view := f.toResults(t)

	if view.View != navigation.ViewResults || view.Results == nil {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Results.Items) != 3 || view.Results.Items[0].MatchScore != 95 || view.Results.Items[2].MatchScore != 82 {
		t.Fatalf("items = %+v", view.Results.Items)
	}
	if view.Results.Items[0].ScoreBand != models.ScoreExcellent {
		t.Fatalf("band = %s", view.Results.Items[0].ScoreBand)
	}
	if view.Notice == nil || view.Notice.Description != "Found 3 personalized internship recommendations for you." {
		t.Fatalf("notice = %+v", view.Notice)
	}
	if got := rec.requests[0].Skills; len(got) != 1 || got[0] != "Python" {
		t.Fatalf("request skills = %v", got)
	}
}

func TestSubmitProfile_EmptyResults(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: &models.RecommendationResponse{}}, nil, services.CoordinatorConfig{})
	view := f.toResults(t)

	if !view.Results.Empty || view.Results.EmptyState == nil || len(view.Results.Items) != 0 {
		t.Fatalf("results = %+v", view.Results)
	}
}

func TestSubmitProfile_FailureKeepsProfile(t *testing.T) {
	f := newFixture(t, &instantRecommender{err: errors.New("backend down")}, nil, services.CoordinatorConfig{})
	f.signup(t)
	f.fillProfile(t)

	view, err := f.coord.SubmitProfile(context.Background(), f.id)
	if err != nil {
		t.Fatal(err)
	}
	if view.View != navigation.ViewProfile || view.Loading {
		t.Fatalf("view = %s loading=%v", view.View, view.Loading)
	}
	if view.Notice == nil || view.Notice.Variant != models.NoticeDestructive || !strings.Contains(view.Notice.Description, "backend down") {
		t.Fatalf("notice = %+v", view.Notice)
	}
	if len(view.Profile.Draft.Skills) != 1 {
		t.Fatal("draft lost after failure")
	}
}

func TestSubmitProfile_RequiresAuth(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	if _, err := f.coord.SubmitProfile(context.Background(), f.id); !errors.Is(err, services.ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitProfile_RejectsSecondSubmissionInFlight(t *testing.T) {
	rec := newBlockingRecommender(recommendations(95, 88, 82))
	f := newFixture(t, rec, nil, services.CoordinatorConfig{})
	f.signup(t)
	f.fillProfile(t)
	ctx := context.Background()

	type result struct {
		view *models.ViewModel
		err  error
	}
	done := make(chan result, 1)
	go func() {
		view, err := f.coord.SubmitProfile(ctx, f.id)
		done <- result{view, err}
	}()

	select {
	case <-rec.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the recommender")
	}

	if _, err := f.coord.SubmitProfile(ctx, f.id); !errors.Is(err, services.ErrRequestInFlight) {
		t.Fatalf("second submit err = %v, want ErrRequestInFlight", err)
	}
	view, err := f.coord.View(ctx, f.id)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Loading || !view.Profile.SubmitDisabled {
		t.Fatalf("loading not visible while in flight: %+v", view)
	}

	close(rec.release)
	select {
	case r := <-done:
		if r.err != nil || r.view.View != navigation.ViewResults || r.view.Loading {
			t.Fatalf("first submission result = %+v, %v", r.view, r.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never completed")
	}
}

func TestSubmitProfile_SavesProfileWhenEnabled(t *testing.T) {
	client := &fakeAPIClient{saveProfile: models.APIResponse[models.UserProfile]{Success: true}}
	f := newFixture(t, &instantRecommender{resp: recommendations(90)}, client, services.CoordinatorConfig{SaveProfiles: true})
	f.toResults(t)

	if len(client.savedProfiles) != 1 || client.savedProfiles[0].Skills[0] != "Python" {
		t.Fatalf("saved profiles = %+v", client.savedProfiles)
	}
}

// ── Results actions ──

func TestToggleSave(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: recommendations(95, 88)}, nil, services.CoordinatorConfig{})
	f.toResults(t)
	ctx := context.Background()

	view, err := f.coord.ToggleSave(ctx, f.id, "2")
	if err != nil {
		t.Fatal(err)
	}
	if !view.Results.Items[1].Saved || view.Results.SavedCount != 1 {
		t.Fatalf("after save: %+v", view.Results)
	}
	view, _ = f.coord.ToggleSave(ctx, f.id, "2")
	if view.Results.Items[1].Saved || view.Results.SavedCount != 0 {
		t.Fatalf("after unsave: %+v", view.Results)
	}
	if view.Results.Items[1].MatchScore != 88 {
		t.Fatal("saving modified the posting")
	}

	if _, err := f.coord.ToggleSave(ctx, f.id, "404"); !errors.Is(err, services.ErrInternshipNotFound) {
		t.Fatalf("unknown id err = %v", err)
	}
}

func TestApply_RecordsOnce(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: recommendations(95, 88)}, nil, services.CoordinatorConfig{})
	f.toResults(t)
	ctx := context.Background()

	view, _ := f.coord.Apply(ctx, f.id, "1")
	if view.Notice.Title != "Application successful" || !view.Results.Items[0].Applied {
		t.Fatalf("apply view = %+v", view)
	}
	view, _ = f.coord.Apply(ctx, f.id, "1")
	if view.Notice.Title != "Already applied" {
		t.Fatalf("second apply notice = %+v", view.Notice)
	}

	view, _ = f.coord.Navigate(ctx, f.id, "dashboard")
	if view.Dashboard.Stats.TotalApplications != 1 {
		t.Fatalf("applications = %d", view.Dashboard.Stats.TotalApplications)
	}
	if view.Dashboard.RecentApplications[0].Status != models.ApplicationPending {
		t.Fatalf("status = %s", view.Dashboard.RecentApplications[0].Status)
	}
}

func TestShare_BuildsPublicLink(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: recommendations(95)}, nil, services.CoordinatorConfig{})
	f.toResults(t)

	view, err := f.coord.Share(context.Background(), f.id, "1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Notice.Description != "https://portal.test/internships/1" {
		t.Fatalf("share link = %q", view.Notice.Description)
	}
}

func TestBackToProfile(t *testing.T) {
	f := newFixture(t, &instantRecommender{resp: recommendations(95)}, nil, services.CoordinatorConfig{})
	f.toResults(t)

	view, _ := f.coord.BackToProfile(context.Background(), f.id)
	if view.View != navigation.ViewProfile || len(view.Profile.Draft.Skills) != 1 {
		t.Fatalf("view = %+v", view)
	}
}

func TestSetDashboardTab(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	ctx := context.Background()
	f.coord.Login(ctx, f.id, services.LoginRequest{Email: "a@b.com", Password: "secret1"})

	view, err := f.coord.SetDashboardTab(ctx, f.id, services.TabSaved)
	if err != nil || view.Dashboard.Tab != services.TabSaved {
		t.Fatalf("view = %+v, err = %v", view, err)
	}
	if _, err := f.coord.SetDashboardTab(ctx, f.id, "settings"); !errors.Is(err, services.ErrUnknownTab) {
		t.Fatalf("err = %v", err)
	}
}

func TestDismissNotice(t *testing.T) {
	f := newFixture(t, &instantRecommender{}, nil, services.CoordinatorConfig{})
	f.signup(t)

	view, _ := f.coord.DismissNotice(context.Background(), f.id)
	if view.Notice != nil {
		t.Fatalf("notice = %+v", view.Notice)
	}
}

// ── Profile history ──

func TestProfileHistory(t *testing.T) {
	client := &fakeAPIClient{history: models.APIResponse[[]models.UserProfile]{
		Success: true,
		Data:    &[]models.UserProfile{{UserID: "u-1"}},
	}}
	f := newFixture(t, &instantRecommender{}, client, services.CoordinatorConfig{})
	ctx := context.Background()

	if _, err := f.coord.ProfileHistory(ctx, f.id); !errors.Is(err, services.ErrNotAuthenticated) {
		t.Fatalf("anonymous err = %v", err)
	}
	f.signup(t)
	got, err := f.coord.ProfileHistory(ctx, f.id)
	if err != nil || len(got) != 1 {
		t.Fatalf("history = %+v, %v", got, err)
	}
}

// ── Admin ──

func TestAdminDashboard(t *testing.T) {
	client := &fakeAPIClient{
		dashboard:   okDashboard(models.AdminDashboardData{TotalUsers: 7, TotalSubmissions: 45}),
		submissions: pagedSubmissions(45),
	}
	f := newFixture(t, &instantRecommender{}, client, services.CoordinatorConfig{})
	ctx := context.Background()

	if _, err := f.coord.AdminDashboard(ctx, f.id, 1); !errors.Is(err, services.ErrNotAuthenticated) {
		t.Fatalf("anonymous err = %v", err)
	}

	f.signup(t)
	view, err := f.coord.AdminDashboard(ctx, f.id, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.Page != 1 || view.TotalUsers != 7 || view.TotalPages != 3 || len(view.Submissions) != 20 {
		t.Fatalf("view = %+v", view)
	}

	view, err = f.coord.AdminDashboard(ctx, f.id, 2)
	if err != nil || view.Page != 2 {
		t.Fatalf("page 2 view = %+v, %v", view, err)
	}
	calls := client.calls()
	if last := calls[len(calls)-1]; last != (submissionsCall{Page: 2, Limit: 20}) {
		t.Fatalf("last call = %+v", last)
	}
	if client.dashboardCalls != 1 {
		t.Fatalf("aggregate fetched %d times", client.dashboardCalls)
	}

	view, err = f.coord.AdminRefresh(ctx, f.id)
	if err != nil || view.Page != 2 || client.dashboardCalls != 2 {
		t.Fatalf("refresh view = %+v, err = %v, dashboard calls = %d", view, err, client.dashboardCalls)
	}
}

func TestAdminDashboard_FailureKeepsState(t *testing.T) {
	client := &fakeAPIClient{
		dashboard:   okDashboard(models.AdminDashboardData{TotalUsers: 7}),
		submissions: pagedSubmissions(45),
	}
	f := newFixture(t, &instantRecommender{}, client, services.CoordinatorConfig{})
	f.signup(t)
	ctx := context.Background()

	if _, err := f.coord.AdminDashboard(ctx, f.id, 0); err != nil {
		t.Fatal(err)
	}

	client.mu.Lock()
	client.submissions = failingSubmissions("backend down")
	client.mu.Unlock()

	view, err := f.coord.AdminDashboard(ctx, f.id, 2)
	if err != nil {
		t.Fatal(err)
	}
	if view.Page != 1 || len(view.Submissions) != 20 {
		t.Fatalf("state changed on failure: page %d, %d submissions", view.Page, len(view.Submissions))
	}
	if view.Notice == nil || view.Notice.Variant != models.NoticeDestructive {
		t.Fatalf("notice = %+v", view.Notice)
	}
}

func TestAdminSubmissions_LoadsOnFirstUse(t *testing.T) {
	client := &fakeAPIClient{
		dashboard:   okDashboard(models.AdminDashboardData{}),
		submissions: pagedSubmissions(3),
	}
	f := newFixture(t, &instantRecommender{}, client, services.CoordinatorConfig{})
	f.signup(t)

	subs, err := f.coord.AdminSubmissions(context.Background(), f.id)
	if err != nil || len(subs) != 3 {
		t.Fatalf("submissions = %d, %v", len(subs), err)
	}
}
