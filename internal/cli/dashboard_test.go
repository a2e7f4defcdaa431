package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-client/internal/api"
)

func TestAdminDashboardFallsBackToSampleData(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	app, out := newTestApp(t, rec, "")

	app.adminDashboard(context.Background())

	rendered := out.String()
	// Stats zero out; the lists fall back to the bundled samples.
	assert.Contains(t, rendered, "Books: 0")
	assert.Contains(t, rendered, "Clean Code")
	assert.Contains(t, rendered, "Robert C. Martin")
	assert.Contains(t, rendered, "No overdue books.")
}

func TestAdminDashboardRendersLiveData(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dashboard/stats":
			writeJSON(w, api.DashboardStats{TotalBooks: 12, TotalStudents: 4, TotalAuthors: 3, TotalTransactions: 20})
		case "/api/dashboard/recent-transactions":
			writeJSON(w, []api.Transaction{{ID: 1, TransactionID: "tx-live", IsIssueOperation: true, TransactionStatus: api.StatusSuccessful}})
		case "/api/dashboard/popular-books":
			writeJSON(w, []api.PopularBook{{ID: 1, Name: "Live Book", Author: "Live Author", Genre: "HISTORY", BorrowCount: 2}})
		case "/api/dashboard/overdue-books":
			writeJSON(w, []api.OverdueBook{{ID: 1, Student: "Ann", Book: "Dune", DueDate: "2026-08-01", DaysOverdue: 27}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	app, out := newTestApp(t, rec, "")

	app.adminDashboard(context.Background())

	rendered := out.String()
	assert.Contains(t, rendered, "Books: 12")
	assert.Contains(t, rendered, "tx-live")
	assert.Contains(t, rendered, "Live Book")
	assert.Contains(t, rendered, "Dune")
	assert.NotContains(t, rendered, "Clean Code")
}

func TestStudentDashboardListsOwnLoans(t *testing.T) {
	rec := record(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/currentUser":
			writeJSON(w, api.User{ID: 4, Name: "Ann", Roles: []string{api.RoleStudent}})
		case "/api/books/public/borrowed":
			writeJSON(w, []api.Book{{ID: 5, Name: "Dune", Author: &api.Author{Name: "Frank Herbert"}}})
		case "/transaction/student":
			writeJSON(w, []api.Transaction{{ID: 1, TransactionID: "tx-9", IsIssueOperation: true, TransactionStatus: api.StatusSuccessful}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	app, out := newTestApp(t, rec, "")
	app.session.Resolve(context.Background())

	app.studentDashboard(context.Background())

	rendered := out.String()
	assert.Contains(t, rendered, "Welcome, Ann")
	assert.Contains(t, rendered, "Dune by Frank Herbert")
	assert.Contains(t, rendered, "tx-9")
}
