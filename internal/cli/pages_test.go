package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/internal/api"
	"library-client/internal/config"
	"library-client/internal/logging"
	"library-client/internal/ui"
)

// recorder wraps a handler and keeps the method+path of every request.
type recorder struct {
	mu       sync.Mutex
	requests []string
	handler  http.Handler
}

func record(handler http.Handler) *recorder {
	return &recorder{handler: handler}
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.mu.Lock()
	rec.requests = append(rec.requests, r.Method+" "+r.URL.Path)
	rec.mu.Unlock()
	if rec.handler != nil {
		rec.handler.ServeHTTP(w, r)
	}
}

func (rec *recorder) Requests() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.requests...)
}

func (rec *recorder) Count(methodAndPath string) int {
	n := 0
	for _, r := range rec.Requests() {
		if r == methodAndPath {
			n++
		}
	}
	return n
}

func newTestApp(t *testing.T, handler http.Handler, input string) (*App, *bytes.Buffer) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		ServerURL:            srv.URL,
		UploadTimeoutSeconds: 30,
		PageSize:             10,
		DashboardLimit:       5,
	}
	var out bytes.Buffer
	app := NewApp(cfg, logging.Discard(), strings.NewReader(input), &out)
	return app, &out
}

func writeJSON(w http.ResponseWriter, v any) {
	json.NewEncoder(w).Encode(v)
}

func TestRegisterDialogRejectsEmptyFormWithoutRequest(t *testing.T) {
	rec := record(nil)
	app, out := newTestApp(t, rec, "\n\n\n\n\n\n")

	app.registerDialog(context.Background())

	assert.Contains(t, out.String(), "Please fill in all required fields")
	assert.Empty(t, rec.Requests())
}

func TestRegisterDialogChecksPasswordsBeforeRequest(t *testing.T) {
	rec := record(nil)
	input := "Ann\nann@example.com\n21\nFrance\npassword123\ndifferent123\n"
	app, out := newTestApp(t, rec, input)

	app.registerDialog(context.Background())

	assert.Contains(t, out.String(), "Passwords do not match")
	assert.Empty(t, rec.Requests())
}

func TestRegisterDialogSubmitsValidForm(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Student{ID: 3, Name: "Ann"})
	}))
	input := "Ann\nann@example.com\n21\nFrance\npassword123\npassword123\n"
	app, out := newTestApp(t, rec, input)

	app.registerDialog(context.Background())

	assert.Contains(t, out.String(), "Registration successful. Please log in.")
	assert.Equal(t, 1, rec.Count("POST /student/createStudent"))
}

func TestDeleteBookRemovesLocallyWithoutRefetch(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	app, _ := newTestApp(t, rec, "y\n")

	list := ui.NewList[api.Book](10, matchBook)
	list.SetItems([]api.Book{{ID: 1, Name: "Dune"}, {ID: 2, Name: "Emma"}})

	app.deleteBookDialog(context.Background(), list, 1)

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Emma", list.Items()[0].Name)
	assert.Equal(t, []string{"DELETE /api/books/public/deleteBook"}, rec.Requests())
}

func TestDeleteBookAbortsWithoutConfirmation(t *testing.T) {
	rec := record(nil)
	app, _ := newTestApp(t, rec, "n\n")

	list := ui.NewList[api.Book](10, matchBook)
	list.SetItems([]api.Book{{ID: 1, Name: "Dune"}})

	app.deleteBookDialog(context.Background(), list, 1)

	assert.Equal(t, 1, list.Len())
	assert.Empty(t, rec.Requests())
}

func TestEditAuthorMergesServerResponse(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var author api.Author
		require.NoError(t, json.NewDecoder(r.Body).Decode(&author))
		author.Name = author.Name + " (verified)"
		writeJSON(w, author)
	}))
	// New name, keep email, age, country.
	app, out := newTestApp(t, rec, "Frank Herbert\n\n\n\n")

	list := ui.NewList[api.Author](10, matchAuthor)
	list.SetItems([]api.Author{{ID: 4, Name: "F. Herbert", Email: "frank@example.com", Age: 55, Country: "USA"}})

	app.editAuthorDialog(context.Background(), list, 4)

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Frank Herbert (verified)", list.Items()[0].Name)
	assert.Equal(t, []string{"PUT /public/authors/updateAuthor"}, rec.Requests())
	assert.Contains(t, out.String(), "Author updated successfully")
}

func TestAddAuthorValidatesBeforeRequest(t *testing.T) {
	rec := record(nil)
	// Junk age becomes zero and the validator rejects it as missing.
	app, out := newTestApp(t, rec, "Frank\nfrank@example.com\nnot-a-number\nUSA\n")

	list := ui.NewList[api.Author](10, matchAuthor)
	app.addAuthorDialog(context.Background(), list)

	assert.Contains(t, out.String(), "Please fill in all required fields")
	assert.Empty(t, rec.Requests())
	assert.Zero(t, list.Len())
}

func TestIssueDialogOffersOnlyAvailableBooks(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/student/public/all":
			writeJSON(w, []api.Student{{ID: 1, Name: "Ann", EmailID: "ann@example.com"}})
		case "/api/books/public/all":
			writeJSON(w, []api.Book{
				{ID: 1, Name: "Dune", Available: true},
				{ID: 2, Name: "Emma", Available: false},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	// Student 1, then the unavailable book.
	app, out := newTestApp(t, rec, "1\n2\n")

	created := app.issueDialog(context.Background())

	assert.False(t, created)
	assert.Contains(t, out.String(), "not in the offered list")
	assert.Zero(t, rec.Count("POST /transaction/issueBook"))
}

func TestIssueDialogCreatesTransaction(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/student/public/all":
			writeJSON(w, []api.Student{{ID: 1, Name: "Ann"}})
		case "/api/books/public/all":
			writeJSON(w, []api.Book{{ID: 1, Name: "Dune", Available: true}})
		case "/transaction/issueBook":
			writeJSON(w, api.Transaction{ID: 7, TransactionID: "tx-7", IsIssueOperation: true, TransactionStatus: api.StatusSuccessful})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	app, out := newTestApp(t, rec, "1\n1\n")

	created := app.issueDialog(context.Background())

	assert.True(t, created)
	assert.Contains(t, out.String(), "tx-7")
	assert.Equal(t, 1, rec.Count("POST /transaction/issueBook"))
}

func TestReturnDialogNarrowsToBorrowedBooks(t *testing.T) {
	var borrowedQuery string
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/student/public/all":
			writeJSON(w, []api.Student{{ID: 1, Name: "Ann"}})
		case "/api/books/public/borrowed":
			borrowedQuery = r.URL.Query().Get("studentId")
			writeJSON(w, []api.Book{{ID: 5, Name: "Dune"}})
		case "/transaction/returnBook":
			writeJSON(w, api.Transaction{ID: 8, TransactionID: "tx-8", TransactionStatus: api.StatusSuccessful, FineAmount: 3})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	app, out := newTestApp(t, rec, "1\n5\n")

	created := app.returnDialog(context.Background())

	assert.True(t, created)
	assert.Equal(t, "1", borrowedQuery)
	assert.Contains(t, out.String(), "fine due: 3")
	// The general catalogue is never fetched; only the student's loans.
	assert.Zero(t, rec.Count("GET /api/books/public/all"))
}

func TestReturnDialogStopsWhenNothingBorrowed(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/student/public/all":
			writeJSON(w, []api.Student{{ID: 1, Name: "Ann"}})
		case "/api/books/public/borrowed":
			writeJSON(w, []api.Book{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	app, out := newTestApp(t, rec, "1\n")

	created := app.returnDialog(context.Background())

	assert.False(t, created)
	assert.Contains(t, out.String(), "no borrowed books")
	assert.Zero(t, rec.Count("POST /transaction/returnBook"))
}
