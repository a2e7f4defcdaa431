package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response. Message holds the server's error body,
// either the "message" field of a JSON body or the raw text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// StatusOf extracts the HTTP status from err, or 0 when err is not a
// server response error (transport failures, decode failures).
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
