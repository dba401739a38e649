package services

import (
	"context"
	"log"

	"pminternship/internship-ai/internal/models"
)

// AdminDashboard implements SessionCoordinator. A page below 1 keeps the
// current page. The aggregate is fetched on first use only; AdminRefresh
// re-fetches it.
func (c *sessionCoordinator) AdminDashboard(ctx context.Context, sessionID string, page int) (*models.AdminView, error) {
	return c.adminRequest(ctx, sessionID, func(callCtx context.Context, state *models.AdminViewState) error {
		if state.Dashboard == nil {
			if err := c.admin.Load(callCtx, state); err != nil {
				return err
			}
		}
		if page >= 1 && page != state.Page {
			return c.admin.GoToPage(callCtx, state, page)
		}
		return nil
	})
}

// AdminRefresh implements SessionCoordinator.
func (c *sessionCoordinator) AdminRefresh(ctx context.Context, sessionID string) (*models.AdminView, error) {
	return c.adminRequest(ctx, sessionID, func(callCtx context.Context, state *models.AdminViewState) error {
		return c.admin.Refresh(callCtx, state)
	})
}

// AdminSubmissions implements SessionCoordinator. It returns the loaded
// submission page, loading it first when nothing is loaded yet.
func (c *sessionCoordinator) AdminSubmissions(ctx context.Context, sessionID string) ([]models.UserProfile, error) {
	view, err := c.AdminDashboard(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}
	return view.Submissions, nil
}

// adminRequest runs fetch on a copy of the admin state with the session lock
// released. The copy replaces the stored state only when fetch succeeds;
// a failure is reported as a destructive notice on the returned view.
func (c *sessionCoordinator) adminRequest(ctx context.Context, sessionID string, fetch func(ctx context.Context, state *models.AdminViewState) error) (*models.AdminView, error) {
	unlock := c.lock(sessionID)
	s, err := c.store.Get(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	if !s.Nav.Authenticated {
		unlock()
		return nil, ErrNotAuthenticated
	}
	if s.Admin.Loading {
		unlock()
		return nil, ErrRequestInFlight
	}
	work := s.Admin
	generation := s.Generation
	s.Admin.Loading = true
	_, err = c.save(ctx, s)
	unlock()
	if err != nil {
		return nil, err
	}

	fetchErr := fetch(context.WithoutCancel(ctx), &work)

	unlock = c.lock(sessionID)
	defer unlock()

	s, err = c.store.Get(context.WithoutCancel(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	if s.Generation != generation {
		// signed out while the fetch was running
		s.Admin.Loading = false
		if _, err := c.save(context.WithoutCancel(ctx), s); err != nil {
			return nil, err
		}
		return nil, ErrNotAuthenticated
	}
	if fetchErr == nil {
		s.Admin = work
	}
	s.Admin.Loading = false
	if _, err := c.save(context.WithoutCancel(ctx), s); err != nil {
		return nil, err
	}

	view := BuildAdminView(&s.Admin, c.admin.PageSize())
	if fetchErr != nil {
		log.Printf("❌ Admin fetch failed for session %s: %v\n", sessionID, fetchErr)
		view.Notice = destructiveNotice("Failed to load dashboard data", fetchErr.Error())
	}
	return view, nil
}
