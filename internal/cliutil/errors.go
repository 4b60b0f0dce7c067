// Package cliutil holds the CLI-side error taxonomy and display
// helpers. The codec's own *stego.Error already carries a display
// string; this package only adds the network-layer kinds and their
// suggestion text.
package cliutil

import "fmt"

// ClientErrorKind distinguishes CLI/transport-layer failures from the
// codec's own error taxonomy (internal/stego.Kind).
type ClientErrorKind int

const (
	KindConnectionFailed ClientErrorKind = iota
	KindRequestFailed
	KindInvalidURL
	KindResponse
)

// ClientError is the CLI's network-layer error type.
type ClientError struct {
	Kind    ClientErrorKind
	Message string
}

func (e *ClientError) Error() string {
	switch e.Kind {
	case KindConnectionFailed:
		return "connection failed"
	case KindRequestFailed:
		return "request failed"
	case KindInvalidURL:
		return "invalid server URL"
	case KindResponse:
		return e.Message
	default:
		return "client error"
	}
}

// HelpMessage returns the suggestion text attached to a client error
// kind.
func (e *ClientError) HelpMessage() string {
	switch e.Kind {
	case KindConnectionFailed:
		return "Ensure the server is running and check your network connection."
	case KindRequestFailed:
		return "Verify that the request parameters are correct and the server is available."
	case KindInvalidURL:
		return "Check that the URL is in the correct format and reachable."
	default:
		return ""
	}
}

func NewConnectionFailed() *ClientError { return &ClientError{Kind: KindConnectionFailed} }
func NewRequestFailed() *ClientError    { return &ClientError{Kind: KindRequestFailed} }
func NewInvalidURL() *ClientError       { return &ClientError{Kind: KindInvalidURL} }
func NewResponse(format string, args ...interface{}) *ClientError {
	return &ClientError{Kind: KindResponse, Message: fmt.Sprintf(format, args...)}
}

// PrintableError renders err's display string plus, when present, its
// help suggestion, for the CLI's stderr diagnostic before a nonzero
// exit.
func PrintableError(err error) string {
	if cerr, ok := err.(*ClientError); ok {
		if help := cerr.HelpMessage(); help != "" {
			return fmt.Sprintf("%s\n%s", cerr.Error(), help)
		}
		return cerr.Error()
	}
	return err.Error()
}
