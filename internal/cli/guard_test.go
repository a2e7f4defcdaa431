package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-client/internal/api"
	"library-client/internal/logging"
	"library-client/internal/session"
)

func sessionWithRoles(t *testing.T, roles ...string) *session.Session {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(roles) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(api.User{ID: 1, Name: "Someone", Roles: roles})
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, 30*time.Second, logging.Discard())
	s := session.New(api.NewAuthService(client))
	s.Resolve(context.Background())
	return s
}

func anonymousSession(t *testing.T) *session.Session {
	return sessionWithRoles(t)
}

func TestDecideUnauthenticatedRedirectsToLogin(t *testing.T) {
	decision, _ := Decide(anonymousSession(t), api.RoleAdmin)
	assert.Equal(t, RedirectLogin, decision)
}

func TestDecideMatchingRoleAllows(t *testing.T) {
	decision, _ := Decide(sessionWithRoles(t, api.RoleAdmin), api.RoleAdmin)
	assert.Equal(t, Allow, decision)

	decision, _ = Decide(sessionWithRoles(t, api.RoleStudent), api.RoleStudent)
	assert.Equal(t, Allow, decision)
}

func TestDecideRoleMatchIsCaseInsensitive(t *testing.T) {
	decision, _ := Decide(sessionWithRoles(t, "admin"), api.RoleAdmin)
	assert.Equal(t, Allow, decision)
}

func TestDecideStudentOnAdminPageGoesHome(t *testing.T) {
	decision, home := Decide(sessionWithRoles(t, api.RoleStudent), api.RoleAdmin)
	assert.Equal(t, RedirectHome, decision)
	assert.Equal(t, api.RoleStudent, home)
}

func TestDecideAdminOnStudentPageGoesHome(t *testing.T) {
	decision, home := Decide(sessionWithRoles(t, api.RoleAdmin), api.RoleStudent)
	assert.Equal(t, RedirectHome, decision)
	assert.Equal(t, api.RoleAdmin, home)
}

func TestDecideUnknownRoleRedirectsToLogin(t *testing.T) {
	decision, _ := Decide(sessionWithRoles(t, "LIBRARIAN"), api.RoleAdmin)
	assert.Equal(t, RedirectLogin, decision)
}
