package cli

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"library-client/internal/api"
	"library-client/internal/ui"
)

// Sample data shown when the dashboard list fetches fail. Stats render
// zeros instead; the asymmetry is deliberate and mirrors the web client.
var fallbackRecentTransactions = []api.Transaction{
	{ID: 1, TransactionID: "sample-0001", IsIssueOperation: true, TransactionStatus: api.StatusSuccessful,
		Student: &api.Student{Name: "John Doe"}, Book: &api.Book{Name: "Clean Code"}},
	{ID: 2, TransactionID: "sample-0002", IsIssueOperation: false, TransactionStatus: api.StatusSuccessful,
		Student: &api.Student{Name: "Sarah Williams"}, Book: &api.Book{Name: "Introduction to Algorithms"}},
	{ID: 3, TransactionID: "sample-0003", IsIssueOperation: true, TransactionStatus: api.StatusPending,
		Student: &api.Student{Name: "Mike Johnson"}, Book: &api.Book{Name: "Design Patterns"}},
}

var fallbackPopularBooks = []api.PopularBook{
	{ID: 1, Name: "Clean Code", Author: "Robert C. Martin", Genre: "NON_FICTIONAL", BorrowCount: 12},
	{ID: 2, Name: "Introduction to Algorithms", Author: "Thomas H. Cormen", Genre: "MATHEMATICS", BorrowCount: 9},
	{ID: 3, Name: "Design Patterns", Author: "Erich Gamma", Genre: "NON_FICTIONAL", BorrowCount: 7},
}

// adminDashboard renders the three aggregates. The fetches are issued in
// parallel and not coordinated beyond waiting for all of them; each slot
// falls back independently.
func (a *App) adminDashboard(ctx context.Context) {
	var (
		stats   api.DashboardStats
		recent  []api.Transaction
		popular []api.PopularBook
		wg      sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		if s, err := a.dashboard.Stats(ctx); err == nil {
			stats = *s
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if recent, err = a.dashboard.RecentTransactions(ctx, a.cfg.DashboardLimit); err != nil {
			recent = fallbackRecentTransactions
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if popular, err = a.dashboard.PopularBooks(ctx, a.cfg.DashboardLimit); err != nil {
			popular = fallbackPopularBooks
		}
	}()
	wg.Wait()
	overdue := a.dashboard.OverdueBooks(ctx, a.cfg.DashboardLimit)

	fmt.Fprintln(a.out, "\n--- Library overview ---")
	fmt.Fprintf(a.out, "Books: %d   Students: %d   Authors: %d   Transactions: %d\n",
		stats.TotalBooks, stats.TotalStudents, stats.TotalAuthors, stats.TotalTransactions)
	fmt.Fprintf(a.out, "Borrowed: %.0f%%   Engagement: %.0f%%   On-time returns: %.0f%%\n",
		stats.BorrowedBooksPercentage, stats.StudentEngagementPercentage, stats.OnTimeReturnsPercentage)

	fmt.Fprintln(a.out, "\nRecent transactions:")
	a.renderTransactionRows(recent)

	fmt.Fprintln(a.out, "\nPopular books:")
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Title", Width: 30},
		ui.Column{Header: "Author", Width: 22},
		ui.Column{Header: "Genre", Width: 18},
		ui.Column{Header: "Borrows", Width: 7},
	)
	table.Header()
	for _, b := range popular {
		table.Row(strconv.Itoa(b.ID), b.Name, b.Author, b.Genre, strconv.Itoa(b.BorrowCount))
	}

	fmt.Fprintln(a.out, "\nOverdue books:")
	if len(overdue) == 0 {
		fmt.Fprintln(a.out, "No overdue books.")
		return
	}
	overdueTable := ui.NewTable(a.out,
		ui.Column{Header: "Student", Width: 22},
		ui.Column{Header: "Book", Width: 30},
		ui.Column{Header: "Due", Width: 12},
		ui.Column{Header: "Days over", Width: 9},
	)
	overdueTable.Header()
	for _, o := range overdue {
		overdueTable.Row(o.Student, o.Book, o.DueDate, strconv.Itoa(o.DaysOverdue))
	}
}

// studentDashboard shows the student's own borrowed books and recent
// history.
func (a *App) studentDashboard(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		return
	}
	fmt.Fprintf(a.out, "\n--- Welcome, %s ---\n", user.Name)

	borrowed, err := a.books.BorrowedByStudent(ctx, user.ID)
	if err != nil {
		a.notify.Err(err)
		borrowed = nil
	}
	fmt.Fprintf(a.out, "\nBorrowed books (%d):\n", len(borrowed))
	if len(borrowed) == 0 {
		fmt.Fprintln(a.out, "No borrowed books.")
	}
	for _, b := range borrowed {
		authorName := ""
		if b.Author != nil {
			authorName = " by " + b.Author.Name
		}
		fmt.Fprintf(a.out, "  %d  %s%s\n", b.ID, b.Name, authorName)
	}

	history, err := a.transactions.ByStudent(ctx, user.ID)
	if err != nil {
		a.notify.Err(err)
		return
	}
	limit := a.cfg.DashboardLimit
	if len(history) > limit {
		history = history[:limit]
	}
	fmt.Fprintln(a.out, "\nRecent activity:")
	a.renderTransactionRows(history)
}
