package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when an id matches nothing in any source.
	ErrNotFound = errors.New("content not found")

	// ErrImmutableContent is returned for any attempt to change static content.
	ErrImmutableContent = errors.New("cannot modify static content")

	// ErrSaveFailed is returned when the upstream API rejected or could not
	// receive a mutation and no local fallback applies.
	ErrSaveFailed = errors.New("could not save content, please try again later")
)

// TransportError describes a failed upstream request: a network error,
// a timeout or a non-2xx status.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError carries one message per offending form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// MalformedLocalDataError reports a local store entry that could not be
// decoded. Readers log it and treat the entry as empty.
type MalformedLocalDataError struct {
	Key string
	Err error
}

func (e *MalformedLocalDataError) Error() string {
	return fmt.Sprintf("malformed local data under %q: %v", e.Key, e.Err)
}

func (e *MalformedLocalDataError) Unwrap() error { return e.Err }

// UserMessage returns the text shown to visitors for err.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return "please check the highlighted fields"
	case errors.Is(err, ErrImmutableContent):
		return ErrImmutableContent.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrSaveFailed):
		return ErrSaveFailed.Error()
	default:
		return "unexpected error"
	}
}
