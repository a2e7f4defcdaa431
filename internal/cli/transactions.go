package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"library-client/internal/api"
	"library-client/internal/ui"
)

// matchTransaction mirrors the web page's filter fields: transaction id,
// student name, book name.
func matchTransaction(tx api.Transaction, term string) bool {
	if ui.ContainsFold(tx.TransactionID, term) {
		return true
	}
	if tx.Student != nil && ui.ContainsFold(tx.Student.Name, term) {
		return true
	}
	return tx.Book != nil && ui.ContainsFold(tx.Book.Name, term)
}

// transactionsPage is the admin transaction ledger. Issue and return do
// not edit records; they create new ones. The type and status filters
// sit on top of the search, like the web page's dropdowns.
func (a *App) transactionsPage(ctx context.Context) {
	list := ui.NewList[api.Transaction](a.cfg.PageSize, matchTransaction)
	var all []api.Transaction
	var typeFilter, statusFilter string

	apply := func() {
		filtered := make([]api.Transaction, 0, len(all))
		for _, tx := range all {
			if typeFilter == "ISSUE" && !tx.IsIssueOperation {
				continue
			}
			if typeFilter == "RETURN" && tx.IsIssueOperation {
				continue
			}
			if statusFilter != "" && !strings.EqualFold(tx.TransactionStatus, statusFilter) {
				continue
			}
			filtered = append(filtered, tx)
		}
		list.SetItems(filtered)
	}
	load := func() {
		// All never fails: the service swallows a double endpoint
		// failure into an empty list.
		all, _ = a.transactions.All(ctx)
		apply()
	}
	load()

	for {
		a.renderTransactions(list, typeFilter, statusFilter)
		fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, type <ISSUE|RETURN|ALL>, status <name|ALL>, issue, return, overdue, refresh, back")
		input, ok := a.prompt.Prompt("> ")
		if !ok {
			a.quit = true
			return
		}
		cmd, arg := splitCommand(input)
		if listCommand(a.out, list, cmd, arg) {
			continue
		}
		switch cmd {
		case "type":
			switch strings.ToUpper(arg) {
			case "ISSUE":
				typeFilter = "ISSUE"
			case "RETURN":
				typeFilter = "RETURN"
			case "ALL", "":
				typeFilter = ""
			default:
				fmt.Fprintf(a.out, "Unknown type: %s\n", arg)
				continue
			}
			apply()
		case "status":
			if strings.EqualFold(arg, "ALL") || arg == "" {
				statusFilter = ""
			} else {
				statusFilter = strings.ToUpper(arg)
			}
			apply()
		case "issue":
			if a.issueDialog(ctx) {
				load()
			}
		case "return":
			if a.returnDialog(ctx) {
				load()
			}
		case "overdue":
			a.overdueView(ctx)
		case "refresh":
			// Manual refetch outside the create flows.
			load()
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
		}
	}
}

func (a *App) renderTransactions(list *ui.List[api.Transaction], typeFilter, statusFilter string) {
	pageBanner(a.out, "Transactions", list)
	if typeFilter != "" || statusFilter != "" {
		fmt.Fprintf(a.out, "Filters: type=%s status=%s\n", orAll(typeFilter), orAll(statusFilter))
	}
	a.renderTransactionRows(list.Rows())
}

func (a *App) renderTransactionRows(rows []api.Transaction) {
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Transaction", Width: 36},
		ui.Column{Header: "Type", Width: 6},
		ui.Column{Header: "Status", Width: 10},
		ui.Column{Header: "Student", Width: 20},
		ui.Column{Header: "Book", Width: 24},
		ui.Column{Header: "Fine", Width: 5},
	)
	table.Header()
	for _, tx := range rows {
		txType := "RETURN"
		if tx.IsIssueOperation {
			txType = "ISSUE"
		}
		studentName, bookName := "", ""
		if tx.Student != nil {
			studentName = tx.Student.Name
		}
		if tx.Book != nil {
			bookName = tx.Book.Name
		}
		fine := ""
		if tx.FineAmount > 0 {
			fine = strconv.Itoa(tx.FineAmount)
		}
		table.Row(strconv.Itoa(tx.ID), tx.TransactionID, txType, tx.TransactionStatus, studentName, bookName, fine)
	}
}

// issueDialog records a new loan. The offered books are pre-filtered to
// the available ones. Reports whether a transaction was created.
func (a *App) issueDialog(ctx context.Context) bool {
	studentID, ok := a.pickStudent(ctx)
	if !ok {
		return false
	}

	books, err := a.books.All(ctx)
	if err != nil {
		a.notify.Err(err)
		return false
	}
	available := books[:0]
	for _, b := range books {
		if b.Available {
			available = append(available, b)
		}
	}
	if len(available) == 0 {
		a.notify.Infof("No books are currently available to issue.")
		return false
	}
	bookID, ok := a.pickBook(available, "Book ID to issue")
	if !ok {
		return false
	}

	tx, err := a.transactions.Issue(ctx, bookID, studentID)
	if err != nil {
		a.notify.Err(err)
		return false
	}
	a.notify.Successf("Book issued successfully (transaction %s)", tx.TransactionID)
	return true
}

// returnDialog ends a loan. Picking the student narrows the book choices
// to that student's borrowed set via a dependent fetch. Reports whether
// a transaction was created.
func (a *App) returnDialog(ctx context.Context) bool {
	studentID, ok := a.pickStudent(ctx)
	if !ok {
		return false
	}

	borrowed, err := a.books.BorrowedByStudent(ctx, studentID)
	if err != nil {
		a.notify.Err(err)
		return false
	}
	if len(borrowed) == 0 {
		a.notify.Infof("This student has no borrowed books.")
		return false
	}
	bookID, ok := a.pickBook(borrowed, "Book ID to return")
	if !ok {
		return false
	}

	tx, err := a.transactions.Return(ctx, bookID, studentID)
	if err != nil {
		a.notify.Err(err)
		return false
	}
	if tx.FineAmount > 0 {
		a.notify.Successf("Book returned successfully; fine due: %d (transaction %s)", tx.FineAmount, tx.TransactionID)
	} else {
		a.notify.Successf("Book returned successfully (transaction %s)", tx.TransactionID)
	}
	return true
}

func (a *App) pickStudent(ctx context.Context) (int, bool) {
	students, err := a.students.All(ctx)
	if err != nil {
		a.notify.Err(err)
		return 0, false
	}
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Name", Width: 25},
		ui.Column{Header: "Email", Width: 28},
		ui.Column{Header: "Card", Width: 10},
	)
	table.Header()
	for _, s := range students {
		table.Row(strconv.Itoa(s.ID), s.Name, s.EmailID, s.CardStatus)
	}
	id, ok := a.prompt.Int("Student ID")
	if !ok {
		return 0, false
	}
	for _, s := range students {
		if s.ID == id {
			return id, true
		}
	}
	a.notify.Errorf("Student %d not found", id)
	return 0, false
}

func (a *App) pickBook(books []api.Book, label string) (int, bool) {
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Title", Width: 30},
		ui.Column{Header: "Author", Width: 22},
	)
	table.Header()
	for _, b := range books {
		authorName := ""
		if b.Author != nil {
			authorName = b.Author.Name
		}
		table.Row(strconv.Itoa(b.ID), b.Name, authorName)
	}
	id, ok := a.prompt.Int(label)
	if !ok {
		return 0, false
	}
	for _, b := range books {
		if b.ID == id {
			return id, true
		}
	}
	a.notify.Errorf("Book %d is not in the offered list", id)
	return 0, false
}

// overdueView lists overdue transactions from the live endpoint.
func (a *App) overdueView(ctx context.Context) {
	overdue, err := a.transactions.Overdue(ctx)
	if err != nil {
		a.notify.Err(err)
		return
	}
	if len(overdue) == 0 {
		fmt.Fprintln(a.out, "No overdue transactions.")
		return
	}
	fmt.Fprintln(a.out, "\nOverdue transactions:")
	a.renderTransactionRows(overdue)
}

// studentTransactionsPage is the student's own history, keyed by the
// session identity.
func (a *App) studentTransactionsPage(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		return
	}
	history, err := a.transactions.ByStudent(ctx, user.ID)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list := ui.NewList[api.Transaction](a.cfg.PageSize, matchTransaction)
	list.SetItems(history)

	for {
		pageBanner(a.out, "My transactions", list)
		a.renderTransactionRows(list.Rows())
		fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, refresh, back")
		input, ok := a.prompt.Prompt("> ")
		if !ok {
			a.quit = true
			return
		}
		cmd, arg := splitCommand(input)
		if listCommand(a.out, list, cmd, arg) {
			continue
		}
		switch cmd {
		case "refresh":
			if history, err := a.transactions.ByStudent(ctx, user.ID); err != nil {
				a.notify.Err(err)
			} else {
				list.SetItems(history)
			}
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
		}
	}
}

func orAll(s string) string {
	if s == "" {
		return "ALL"
	}
	return s
}
