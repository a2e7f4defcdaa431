package api

// Entities are exchanged verbatim with the server; the client imposes no
// invariants on them beyond what its forms validate before submission.

// Book carries the catalog metadata and current availability of a title.
// The cover image itself is served separately; `hasImage` only signals
// whether an image endpoint call is worth making.
type Book struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Genre         string  `json:"genre"`
	Description   string  `json:"description,omitempty"`
	PublishedYear int     `json:"publishedYear,omitempty"`
	Author        *Author `json:"author,omitempty"`
	Available     bool    `json:"available"`
	HasImage      bool    `json:"hasImage,omitempty"`
}

// Author is created either standalone or inline while adding a book.
type Author struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Age     int    `json:"age"`
	Country string `json:"country"`
}

// Student is both a managed entity and the login identity. The password
// is write-only; the server never echoes it back.
type Student struct {
	ID         int    `json:"id"`
	StudentID  string `json:"studentId,omitempty"`
	Name       string `json:"name"`
	EmailID    string `json:"emailId"`
	Age        int    `json:"age"`
	Country    string `json:"country"`
	CardStatus string `json:"cardStatus,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Transaction is an immutable audit record. The client only ever creates
// them through the issue/return endpoints; dates and fines are computed
// server-side and passed through as received.
type Transaction struct {
	ID                int      `json:"id"`
	TransactionID     string   `json:"transactionId"`
	Student           *Student `json:"student,omitempty"`
	Book              *Book    `json:"book,omitempty"`
	IsIssueOperation  bool     `json:"isIssueOperation"`
	TransactionStatus string   `json:"transactionStatus"`
	TransactionDate   string   `json:"transactionDate,omitempty"`
	ReturnDate        string   `json:"returnDate,omitempty"`
	FineAmount        int      `json:"fineAmount"`
}

// User is the session identity returned by the who-am-I call.
type User struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	EmailID   string   `json:"emailId"`
	StudentID string   `json:"studentId,omitempty"`
	Roles     []string `json:"roles"`
}

// DashboardStats is the summary aggregate behind the admin dashboard.
type DashboardStats struct {
	TotalBooks                  int     `json:"totalBooks"`
	TotalStudents               int     `json:"totalStudents"`
	TotalAuthors                int     `json:"totalAuthors"`
	TotalTransactions           int     `json:"totalTransactions"`
	BorrowedBooksPercentage     float64 `json:"borrowedBooksPercentage"`
	StudentEngagementPercentage float64 `json:"studentEngagementPercentage"`
	OnTimeReturnsPercentage     float64 `json:"onTimeReturnsPercentage"`
}

// PopularBook is the reduced book projection on the dashboard.
type PopularBook struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	BorrowCount int    `json:"borrowCount"`
}

// OverdueBook is the reduced loan projection on the dashboard.
type OverdueBook struct {
	ID          int    `json:"id"`
	Student     string `json:"student"`
	Book        string `json:"book"`
	DueDate     string `json:"dueDate"`
	DaysOverdue int    `json:"daysOverdue"`
}

// Genres accepted by the book form, in the server's enum spelling.
var Genres = []string{
	"FICTIONAL",
	"NON_FICTIONAL",
	"GEOGRAPHY",
	"HISTORY",
	"POLITICAL_SCIENCE",
	"BOTANY",
	"CHEMISTRY",
	"MATHEMATICS",
	"PHYSICS",
}

// Recognized roles on a session identity.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Transaction statuses as rendered in listings.
const (
	StatusSuccessful = "SUCCESSFUL"
	StatusPending    = "PENDING"
	StatusFailed     = "FAILED"
)
