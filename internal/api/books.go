package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BookService maps the book endpoints. List and detail responses carry a
// nested author reference; creation flattens the author into form fields
// because the create endpoint is multipart.
type BookService struct {
	c *Client
}

func NewBookService(c *Client) *BookService { return &BookService{c: c} }

func (s *BookService) All(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := s.c.getJSON(ctx, "/api/books/public/all", nil, &books); err != nil {
		s.c.log.Error().Err(err).Msg("fetch books failed")
		return nil, err
	}
	return books, nil
}

func (s *BookService) FindByID(ctx context.Context, id int) (*Book, error) {
	query := url.Values{"id": {strconv.Itoa(id)}}
	var book Book
	if err := s.c.getJSON(ctx, "/api/books/public/findById", query, &book); err != nil {
		s.c.log.Error().Err(err).Int("book_id", id).Msg("fetch book failed")
		return nil, err
	}
	return &book, nil
}

// NewBook is the create payload. Author fields are always sent flat; the
// add dialog fills them either from a picked existing author or from the
// inline new-author form. ImagePath is an optional local cover image.
type NewBook struct {
	Name          string
	Genre         string
	Description   string
	PublishedYear int
	AuthorName    string
	AuthorEmail   string
	AuthorAge     int
	AuthorCountry string
	ImagePath     string
}

// Create posts the multipart create form. This is one of the two upload
// calls that carry the 30s deadline.
func (s *BookService) Create(ctx context.Context, nb NewBook) (*Book, error) {
	body, contentType, err := encodeBookForm(nb)
	if err != nil {
		return nil, err
	}
	var created Book
	if err := s.c.postMultipart(ctx, "/api/books/public/createWithImage", body, contentType, &created); err != nil {
		s.c.log.Error().Err(err).Str("name", nb.Name).Msg("create book failed")
		return nil, err
	}
	return &created, nil
}

func (s *BookService) Update(ctx context.Context, book Book) (*Book, error) {
	var updated Book
	if err := s.c.putJSON(ctx, "/api/books/public/updateBook", book, &updated); err != nil {
		s.c.log.Error().Err(err).Int("book_id", book.ID).Msg("update book failed")
		return nil, err
	}
	return &updated, nil
}

func (s *BookService) Delete(ctx context.Context, id int) error {
	query := url.Values{"id": {strconv.Itoa(id)}}
	if err := s.c.deleteJSON(ctx, "/api/books/public/deleteBook", query, nil); err != nil {
		s.c.log.Error().Err(err).Int("book_id", id).Msg("delete book failed")
		return err
	}
	return nil
}

// BorrowedByStudent lists the books currently checked out to a student.
// The return dialog uses it to narrow the offered titles.
func (s *BookService) BorrowedByStudent(ctx context.Context, studentID int) ([]Book, error) {
	query := url.Values{"studentId": {strconv.Itoa(studentID)}}
	var books []Book
	if err := s.c.getJSON(ctx, "/api/books/public/borrowed", query, &books); err != nil {
		s.c.log.Error().Err(err).Int("student_id", studentID).Msg("fetch borrowed books failed")
		return nil, err
	}
	return books, nil
}

// ImageURL builds the cover image URL. The timestamp defeats any
// intermediate caching after a cover changes.
func (s *BookService) ImageURL(id int) string {
	return fmt.Sprintf("%s/api/books/public/image?id=%d&timestamp=%d", s.c.BaseURL(), id, time.Now().UnixMilli())
}

func encodeBookForm(nb NewBook) (io.Reader, string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeBookForm(mw, nb)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()
	return pr, mw.FormDataContentType(), nil
}

func writeBookForm(mw *multipart.Writer, nb NewBook) error {
	fields := map[string]string{
		"name":          nb.Name,
		"genre":         nb.Genre,
		"description":   nb.Description,
		"authorName":    nb.AuthorName,
		"authorEmail":   nb.AuthorEmail,
		"authorAge":     strconv.Itoa(nb.AuthorAge),
		"authorCountry": nb.AuthorCountry,
	}
	if nb.PublishedYear > 0 {
		fields["publishedYear"] = strconv.Itoa(nb.PublishedYear)
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return err
		}
	}
	if nb.ImagePath == "" {
		return nil
	}
	f, err := os.Open(filepath.Clean(nb.ImagePath))
	if err != nil {
		return fmt.Errorf("open cover image: %w", err)
	}
	defer f.Close()
	part, err := mw.CreateFormFile("image", filepath.Base(nb.ImagePath))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
