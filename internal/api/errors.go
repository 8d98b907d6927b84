package api

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrEmptyQuery is returned before any request is made for a blank query.
var ErrEmptyQuery = stderrors.New("query is empty")

// Error is a non-2xx reply from the service.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rag api: HTTP %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("rag api: HTTP %d: %s", e.Status, e.Detail)
}

// Unauthorized reports a rejected or missing API key.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// Message turns any error from this package into the single line shown to
// the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.Unauthorized():
			return "The API key was rejected. Check it in Settings."
		case apiErr.Detail != "":
			return apiErr.Detail
		default:
			return fmt.Sprintf("Request failed with status code %d", apiErr.Status)
		}
	}
	if errors.Cause(err) == ErrEmptyQuery {
		return "Type a question first."
	}
	return "Network error: " + errors.Cause(err).Error()
}
