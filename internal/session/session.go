// Package session holds the process-wide authentication state with an
// explicit lifecycle: Unresolved until the first who-am-I call finishes,
// then Anonymous or Authenticated. The session is passed by dependency,
// never reached through package globals.
package session

import (
	"context"
	"errors"
	"strings"

	"library-client/internal/api"
)

type State int

const (
	StateUnresolved State = iota
	StateAnonymous
	StateAuthenticated
)

type Session struct {
	auth    *api.AuthService
	state   State
	user    *api.User
	loading bool
	errMsg  string
}

func New(auth *api.AuthService) *Session {
	return &Session{auth: auth, state: StateUnresolved}
}

func (s *Session) State() State    { return s.state }
func (s *Session) User() *api.User { return s.user }
func (s *Session) Loading() bool   { return s.loading }

// Err is the last visible error message, empty when the last operation
// succeeded. A 401 on the session check never populates it.
func (s *Session) Err() string { return s.errMsg }

// Resolve runs the who-am-I call. 401 means "no session" and is not an
// error; any other failure leaves the session anonymous with a visible
// message.
func (s *Session) Resolve(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.user = nil
		s.state = StateAnonymous
		if !api.IsUnauthorized(err) {
			s.errMsg = "Failed to authenticate user"
		} else {
			s.errMsg = ""
		}
		return
	}
	s.user = user
	s.state = StateAuthenticated
	s.errMsg = ""
}

// Login authenticates and, on success, swaps the session identity. The
// error is returned so the login form can display it.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.loading = true
	defer func() { s.loading = false }()

	user, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.errMsg = messageOf(err, "Login failed")
		return err
	}
	s.user = user
	s.state = StateAuthenticated
	s.errMsg = ""
	return nil
}

// Register creates the account but does not log it in; the caller sends
// the user through the login flow afterwards.
func (s *Session) Register(ctx context.Context, student api.Student) error {
	s.loading = true
	defer func() { s.loading = false }()

	if _, err := s.auth.Register(ctx, student); err != nil {
		s.errMsg = messageOf(err, "Registration failed")
		return err
	}
	s.errMsg = ""
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	if err := s.auth.Logout(ctx); err != nil {
		s.errMsg = messageOf(err, "Logout failed")
		return err
	}
	s.user = nil
	s.state = StateAnonymous
	s.errMsg = ""
	return nil
}

func (s *Session) ChangePassword(ctx context.Context, req api.ChangePasswordRequest) error {
	s.loading = true
	defer func() { s.loading = false }()

	if err := s.auth.ChangePassword(ctx, req); err != nil {
		s.errMsg = messageOf(err, "Password change failed")
		return err
	}
	s.errMsg = ""
	return nil
}

// Expire drops the identity without a server round-trip. The 401
// interceptor uses it when the server has already ended the session.
func (s *Session) Expire() {
	s.user = nil
	s.state = StateAnonymous
	s.errMsg = ""
}

// HasRole reports case-normalized containment of role in the identity's
// role list.
func (s *Session) HasRole(role string) bool {
	if s.user == nil {
		return false
	}
	for _, r := range s.user.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// messageOf prefers the server's error message and falls back to a
// generic one for transport-level failures.
func messageOf(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
