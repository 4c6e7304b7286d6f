package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JigneshCalidad/Achivement-Tracker/api"
	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

// ErrInvalidCredentials is returned by Login when the server rejects the
// email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

type SessionState int

const (
	Anonymous SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Route identifies a navigable view. The guard below implements the access
// rules: protected routes require an authenticated session, and the login
// view is unreachable while authenticated.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/"
	RouteProfile   Route = "/profile"
)

// SessionService owns the authenticated identity and bearer credential.
// A rejected credential on any authenticated call revokes the session.
type SessionService struct {
	api *api.Client
	log zerolog.Logger

	mu    sync.RWMutex
	state SessionState
	user  *models.User
	subs  []func(SessionState, *models.User)
}

func NewSessionService(client *api.Client) *SessionService {
	s := &SessionService{
		api: client,
		log: log.With().Str("component", "session").Logger(),
	}
	client.OnUnauthorized(s.revoke)
	return s
}

// Login exchanges credentials for a bearer token and loads the user profile.
// A rejected attempt leaves any held session untouched.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return ErrInvalidCredentials
		}
		return err
	}

	s.api.SetToken(token.AccessToken)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		return err
	}

	s.mu.Lock()
	s.state = Authenticated
	s.user = user
	s.mu.Unlock()

	s.log.Info().Str("email", user.Email).Msg("logged in")
	s.notify()
	return nil
}

// Logout clears the credential and current user. Safe to call from any state.
func (s *SessionService) Logout() {
	s.api.ClearToken()

	s.mu.Lock()
	changed := s.state != Anonymous
	s.state = Anonymous
	s.user = nil
	s.mu.Unlock()

	if changed {
		s.log.Info().Msg("logged out")
		s.notify()
	}
}

// revoke forces the session to anonymous after the server rejected the
// held credential.
func (s *SessionService) revoke() {
	s.mu.Lock()
	changed := s.state != Anonymous
	s.state = Anonymous
	s.user = nil
	s.mu.Unlock()

	s.api.ClearToken()
	if changed {
		s.log.Warn().Msg("session revoked: credential rejected")
		s.notify()
	}
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UpdateProfile applies a partial profile update and refreshes the held user.
func (s *SessionService) UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	user, err := s.api.UpdateMe(ctx, update)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify()
	return user, nil
}

// ResolveRoute returns the route the user actually lands on when asking for
// requested: anonymous users are sent to login, and an authenticated user
// asking for login is sent to the dashboard.
func (s *SessionService) ResolveRoute(requested Route) Route {
	if s.State() == Authenticated {
		if requested == RouteLogin {
			return RouteDashboard
		}
		return requested
	}
	return RouteLogin
}

// Subscribe registers fn to run after every session change.
func (s *SessionService) Subscribe(fn func(SessionState, *models.User)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *SessionService) notify() {
	s.mu.RLock()
	state, user := s.state, s.user
	subs := make([]func(SessionState, *models.User), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state, user)
	}
}
