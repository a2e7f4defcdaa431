package api

import "context"

// AuthService maps the session endpoints. Errors are logged and returned
// as-is; the session layer decides how they surface.
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService { return &AuthService{c: c} }

// Login posts credentials and returns the authenticated identity. The
// session cookie arrives via the jar as a side effect.
func (s *AuthService) Login(ctx context.Context, username, password string) (*User, error) {
	payload := map[string]string{"username": username, "password": password}
	var user User
	if err := s.c.postJSON(ctx, "/login", nil, payload, &user); err != nil {
		s.c.log.Error().Err(err).Msg("login failed")
		return nil, err
	}
	return &user, nil
}

// Register creates a student account. Registration shares the student
// creation endpoint; the server attaches the STUDENT role.
func (s *AuthService) Register(ctx context.Context, student Student) (*Student, error) {
	var created Student
	if err := s.c.postJSON(ctx, "/student/createStudent", nil, student, &created); err != nil {
		s.c.log.Error().Err(err).Msg("registration failed")
		return nil, err
	}
	return &created, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.c.postJSON(ctx, "/logout", nil, nil, nil); err != nil {
		s.c.log.Error().Err(err).Msg("logout failed")
		return err
	}
	return nil
}

// CurrentUser runs the who-am-I call. A 401 comes back as an *Error with
// that status; callers treat it as "no session", not a failure.
func (s *AuthService) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.c.getJSON(ctx, "/currentUser", nil, &user); err != nil {
		if !IsUnauthorized(err) {
			s.c.log.Error().Err(err).Msg("session check failed")
		}
		return nil, err
	}
	return &user, nil
}

// ChangePasswordRequest is the password change payload. The old password
// is verified server-side.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := s.c.postJSON(ctx, "/student/changePassword", nil, req, nil); err != nil {
		s.c.log.Error().Err(err).Msg("password change failed")
		return err
	}
	return nil
}
