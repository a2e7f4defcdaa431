package cli

import (
	"library-client/internal/api"
	"library-client/internal/session"
)

// Decision is the route guard outcome for a view that requires a role.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// RedirectLogin sends the user to the login view: no session, or a
	// session with no recognized role. The original destination is lost.
	RedirectLogin
	// RedirectHome sends an authenticated user lacking the required role
	// to their own home dashboard; the second return value names it.
	RedirectHome
)

// Decide evaluates whether the session may enter a view gated on role.
// Role matching is case-normalized containment over the user's roles.
func Decide(s *session.Session, role string) (Decision, string) {
	if s.State() != session.StateAuthenticated {
		return RedirectLogin, ""
	}
	if s.HasRole(role) {
		return Allow, ""
	}
	if s.HasRole(api.RoleAdmin) {
		return RedirectHome, api.RoleAdmin
	}
	if s.HasRole(api.RoleStudent) {
		return RedirectHome, api.RoleStudent
	}
	return RedirectLogin, ""
}
