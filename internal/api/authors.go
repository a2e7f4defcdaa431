package api

import (
	"context"
	"net/url"
	"strconv"
)

// AuthorService maps the author endpoints. Note the create path sits at
// the origin root while the rest live under /public/authors; the server
// grew that way and the client follows it.
type AuthorService struct {
	c *Client
}

func NewAuthorService(c *Client) *AuthorService { return &AuthorService{c: c} }

func (s *AuthorService) All(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := s.c.getJSON(ctx, "/public/authors/all", nil, &authors); err != nil {
		s.c.log.Error().Err(err).Msg("fetch authors failed")
		return nil, err
	}
	return authors, nil
}

func (s *AuthorService) FindByID(ctx context.Context, id int) (*Author, error) {
	query := url.Values{"id": {strconv.Itoa(id)}}
	var author Author
	if err := s.c.getJSON(ctx, "/public/authors/findById", query, &author); err != nil {
		s.c.log.Error().Err(err).Int("author_id", id).Msg("fetch author failed")
		return nil, err
	}
	return &author, nil
}

func (s *AuthorService) Create(ctx context.Context, author Author) (*Author, error) {
	var created Author
	if err := s.c.postJSON(ctx, "/createAuthor", nil, author, &created); err != nil {
		s.c.log.Error().Err(err).Str("name", author.Name).Msg("create author failed")
		return nil, err
	}
	return &created, nil
}

func (s *AuthorService) Update(ctx context.Context, author Author) (*Author, error) {
	var updated Author
	if err := s.c.putJSON(ctx, "/public/authors/updateAuthor", author, &updated); err != nil {
		s.c.log.Error().Err(err).Int("author_id", author.ID).Msg("update author failed")
		return nil, err
	}
	return &updated, nil
}

func (s *AuthorService) Delete(ctx context.Context, id int) error {
	query := url.Values{"id": {strconv.Itoa(id)}}
	if err := s.c.deleteJSON(ctx, "/public/authors/deleteAuthor", query, nil); err != nil {
		s.c.log.Error().Err(err).Int("author_id", id).Msg("delete author failed")
		return err
	}
	return nil
}
