// Package navigation defines the screen state machine of the portal.
//
// Screens:
//
//	landing ──login/signup──► auth ──login_succeeded──► dashboard
//	                            │
//	                            └──signup_succeeded──► profile ──profile_submitted──► results
//
// dashboard and profile requests fall back to auth while unauthenticated.
// logout always returns to landing and clears the authenticated flag.
package navigation

import "fmt"

// View is the screen currently shown to the user.
type View string

const (
	ViewLanding   View = "landing"
	ViewAuth      View = "auth"
	ViewProfile   View = "profile"
	ViewResults   View = "results"
	ViewDashboard View = "dashboard"
)

// Event triggers a transition. Page events come from user navigation,
// the *_succeeded and profile_submitted events from completed workflows.
type Event string

const (
	EventHome             Event = "home"
	EventLogin            Event = "login"
	EventSignup           Event = "signup"
	EventDashboard        Event = "dashboard"
	EventProfile          Event = "profile"
	EventGetStarted       Event = "get_started"
	EventLoginSucceeded   Event = "login_succeeded"
	EventSignupSucceeded  Event = "signup_succeeded"
	EventProfileSubmitted Event = "profile_submitted"
	EventBackToProfile    Event = "back_to_profile"
	EventLogout           Event = "logout"
)

// State is the complete navigation state: exactly one active view plus the
// orthogonal authenticated flag.
type State struct {
	View          View `json:"view"`
	Authenticated bool `json:"authenticated"`
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{View: ViewLanding}
}

// ParseView converts a raw string to a View.
func ParseView(s string) (View, error) {
	v := View(s)
	switch v {
	case ViewLanding, ViewAuth, ViewProfile, ViewResults, ViewDashboard:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// ParsePage maps a navigation page name to its event. Unknown pages map to
// EventHome.
func ParsePage(page string) Event {
	switch Event(page) {
	case EventHome, EventLogin, EventSignup, EventDashboard, EventProfile:
		return Event(page)
	}
	return EventHome
}

// Transition returns the state reached from s on e. It never mutates s.
func Transition(s State, e Event) State {
	switch e {
	case EventHome:
		s.View = ViewLanding
	case EventLogin, EventSignup:
		s.View = ViewAuth
	case EventDashboard:
		s.View = requireAuth(s, ViewDashboard)
	case EventProfile, EventGetStarted:
		s.View = requireAuth(s, ViewProfile)
	case EventLoginSucceeded:
		s = State{View: ViewDashboard, Authenticated: true}
	case EventSignupSucceeded:
		// first-time users complete a profile before seeing recommendations
		s = State{View: ViewProfile, Authenticated: true}
	case EventProfileSubmitted:
		s.View = ViewResults
	case EventBackToProfile:
		s.View = ViewProfile
	case EventLogout:
		s = State{View: ViewLanding, Authenticated: false}
	default:
		s.View = ViewLanding
	}
	return s
}

func requireAuth(s State, target View) View {
	if s.Authenticated {
		return target
	}
	return ViewAuth
}
