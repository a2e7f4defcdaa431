package api

import (
	"context"
	"net/url"
	"strconv"
)

// TransactionService maps the transaction endpoints. Records are only
// ever created through Issue and Return; everything else is read-only.
type TransactionService struct {
	c *Client
}

func NewTransactionService(c *Client) *TransactionService { return &TransactionService{c: c} }

// All lists transactions. The reduced-join "basic" endpoint is tried
// first; on failure the full listing is attempted, and if that also
// fails the error is swallowed into an empty list so the page renders
// empty rather than broken.
func (s *TransactionService) All(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	if err := s.c.getJSON(ctx, "/transaction/basic", nil, &transactions); err == nil {
		return transactions, nil
	} else {
		s.c.log.Warn().Err(err).Msg("basic transaction listing failed, falling back to full listing")
	}
	transactions = nil
	if err := s.c.getJSON(ctx, "/transaction/all", nil, &transactions); err != nil {
		s.c.log.Error().Err(err).Msg("full transaction listing also failed")
		return []Transaction{}, nil
	}
	return transactions, nil
}

// Issue records a loan of bookID to studentID. Availability checks and
// card validation happen server-side.
func (s *TransactionService) Issue(ctx context.Context, bookID, studentID int) (*Transaction, error) {
	return s.post(ctx, "/transaction/issueBook", bookID, studentID)
}

// Return ends a loan. The response may carry a computed fine.
func (s *TransactionService) Return(ctx context.Context, bookID, studentID int) (*Transaction, error) {
	return s.post(ctx, "/transaction/returnBook", bookID, studentID)
}

func (s *TransactionService) post(ctx context.Context, path string, bookID, studentID int) (*Transaction, error) {
	query := url.Values{
		"bookId":    {strconv.Itoa(bookID)},
		"studentId": {strconv.Itoa(studentID)},
	}
	var tx Transaction
	if err := s.c.postJSON(ctx, path, query, nil, &tx); err != nil {
		s.c.log.Error().Err(err).Int("book_id", bookID).Int("student_id", studentID).Str("path", path).Msg("transaction failed")
		return nil, err
	}
	return &tx, nil
}

// ByStudent lists a student's transaction history by card id.
func (s *TransactionService) ByStudent(ctx context.Context, cardID int) ([]Transaction, error) {
	query := url.Values{"cardId": {strconv.Itoa(cardID)}}
	var transactions []Transaction
	if err := s.c.getJSON(ctx, "/transaction/student", query, &transactions); err != nil {
		s.c.log.Error().Err(err).Int("card_id", cardID).Msg("fetch student transactions failed")
		return nil, err
	}
	return transactions, nil
}

// ByBook lists a book's transaction history.
func (s *TransactionService) ByBook(ctx context.Context, bookID int) ([]Transaction, error) {
	query := url.Values{"bookId": {strconv.Itoa(bookID)}}
	var transactions []Transaction
	if err := s.c.getJSON(ctx, "/transaction/book", query, &transactions); err != nil {
		s.c.log.Error().Err(err).Int("book_id", bookID).Msg("fetch book transactions failed")
		return nil, err
	}
	return transactions, nil
}

func (s *TransactionService) Overdue(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	if err := s.c.getJSON(ctx, "/transaction/overdue", nil, &transactions); err != nil {
		s.c.log.Error().Err(err).Msg("fetch overdue transactions failed")
		return nil, err
	}
	return transactions, nil
}
