package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 30*time.Second, logging.Discard())
}

type fakeNavigator struct {
	loginActive bool
	forced      int
}

func (n *fakeNavigator) LoginActive() bool { return n.loginActive }
func (n *fakeNavigator) ForceLogin()       { n.forced++ }

func TestDoSetsRequestID(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	require.NoError(t, c.getJSON(context.Background(), "/ping", nil, nil))
	assert.NotEmpty(t, got)
}

func TestErrorBodyJSONMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Genre not recognized"}`))
	}))
	err := c.getJSON(context.Background(), "/api/books/public/all", nil, nil)
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Genre not recognized", apiErr.Message)
}

func TestErrorBodyPlainText(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("something broke\n"))
	}))
	err := c.getJSON(context.Background(), "/whatever", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Contains(t, err.Error(), "something broke")
}

func TestUnauthorizedTriggersForceLogin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	nav := &fakeNavigator{}
	c.SetNavigator(nav)

	err := c.getJSON(context.Background(), "/currentUser", nil, nil)
	require.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, nav.forced)
}

func TestUnauthorizedSkippedWhileLoginActive(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	nav := &fakeNavigator{loginActive: true}
	c.SetNavigator(nav)

	err := c.postJSON(context.Background(), "/login", nil, map[string]string{"username": "x"}, nil)
	require.True(t, IsUnauthorized(err))
	assert.Zero(t, nav.forced)
}

func TestSessionCookieRidesFollowingRequests(t *testing.T) {
	var cookie string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123"})
			w.Write([]byte(`{"id":1,"name":"Admin","roles":["ADMIN"]}`))
		default:
			if ck, err := r.Cookie("JSESSIONID"); err == nil {
				cookie = ck.Value
			}
			w.Write([]byte(`[]`))
		}
	}))

	auth := NewAuthService(c)
	_, err := auth.Login(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)

	_, err = NewBookService(c).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", cookie)
}

func TestBookCreateSendsMultipartForm(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(cover, []byte("not-really-a-png"), 0o644))

	var form map[string]string
	var imageName string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			form[key] = values[0]
		}
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			imageName = files[0].Filename
		}
		w.Write([]byte(`{"id":9,"name":"Dune","genre":"FICTIONAL","available":true}`))
	}))

	created, err := NewBookService(c).Create(context.Background(), NewBook{
		Name:          "Dune",
		Genre:         "FICTIONAL",
		PublishedYear: 1965,
		AuthorName:    "Frank Herbert",
		AuthorEmail:   "frank@example.com",
		AuthorAge:     55,
		AuthorCountry: "USA",
		ImagePath:     cover,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	assert.Equal(t, "Dune", form["name"])
	assert.Equal(t, "FICTIONAL", form["genre"])
	assert.Equal(t, "1965", form["publishedYear"])
	assert.Equal(t, "Frank Herbert", form["authorName"])
	assert.Equal(t, "55", form["authorAge"])
	assert.Equal(t, "cover.png", imageName)
}

func TestBookCreateOmitsBlankYearAndImage(t *testing.T) {
	var form map[string][]string
	var hasImage bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		hasImage = len(r.MultipartForm.File["image"]) > 0
		w.Write([]byte(`{"id":1,"name":"Dune","available":true}`))
	}))

	_, err := NewBookService(c).Create(context.Background(), NewBook{
		Name:          "Dune",
		Genre:         "FICTIONAL",
		AuthorName:    "Frank Herbert",
		AuthorEmail:   "frank@example.com",
		AuthorAge:     55,
		AuthorCountry: "USA",
	})
	require.NoError(t, err)
	_, yearSent := form["publishedYear"]
	assert.False(t, yearSent)
	assert.False(t, hasImage)
}

func TestEmptyResponseBodyLeavesOutUntouched(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	var book Book
	require.NoError(t, c.getJSON(context.Background(), "/api/books/public/findById", nil, &book))
	assert.Zero(t, book.ID)
}
