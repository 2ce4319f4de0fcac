package parser

import (
	"errors"
	"fmt"
	"slices"
)

type ErrorKind int

const (
	// the markup is not a page of the expected site, usually a captcha or an
	// error page served in its place.
	ERROR_WRONG_SITE ErrorKind = iota + 1
	// the page is from the site but a required element is gone, the site
	// layout probably changed.
	ERROR_STRUCTURE_MISSING
	// anything else that went wrong while parsing.
	ERROR_UNHANDLED
)

func (k ErrorKind) String() string {
	switch k {
	case ERROR_WRONG_SITE:
		return "wrong_site"
	case ERROR_STRUCTURE_MISSING:
		return "structure_missing"
	case ERROR_UNHANDLED:
		return "unhandled"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

var (
	ErrWrongSite        = errors.New("page is not from the expected site")
	ErrStructureMissing = errors.New("required page structure is missing")
	ErrUnhandled        = errors.New("unhandled failure while parsing")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ERROR_WRONG_SITE:
		return ErrWrongSite
	case ERROR_STRUCTURE_MISSING:
		return ErrStructureMissing
	}
	return ErrUnhandled
}

// ParserError is the only error returned by the parse entry points. Dump
// holds a copy of the input so the caller can inspect what failed.
type ParserError struct {
	Kind    ErrorKind
	Message string
	Dump    []byte
	// Trace is the stack of the recovered panic, only set for unhandled
	// failures.
	Trace string

	cause error
}

func (e *ParserError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the sentinel of the kind and the underlying cause to
// errors.Is and errors.As.
func (e *ParserError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind.sentinel(), e.cause}
	}
	return []error{e.Kind.sentinel()}
}

func newParserError(kind ErrorKind, message string, data []byte, cause error) *ParserError {
	return &ParserError{
		Kind:    kind,
		Message: message,
		Dump:    slices.Clone(data),
		cause:   cause,
	}
}

// KindOf returns the kind of a ParserError found in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var perr *ParserError
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return 0, false
}
