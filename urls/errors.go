package urls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/landing/locale"
)

// Sentinel errors for classifying builder failures with errors.Is.
var (
	ErrUnknownRoute        = errors.New("unknown route")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrUnexpectedParameter = errors.New("unexpected parameter")
	ErrUnsupportedLocale   = errors.New("unsupported locale")
	ErrNoMatch             = errors.New("no route matches path")
)

// Error describes a failed build or match. It unwraps to one of the
// sentinel errors above.
type Error struct {
	Op     string // "build" or "match"
	Route  Route
	Locale locale.Locale
	Param  string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("urls: ")
	b.WriteString(e.Op)
	if e.Route != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Route))
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	switch {
	case e.Param != "":
		fmt.Fprintf(&b, " %q", e.Param)
	case errors.Is(e.Err, ErrUnsupportedLocale):
		fmt.Fprintf(&b, " %q", e.Locale)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
