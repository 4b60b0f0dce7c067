package stego

import "fmt"

// Kind identifies the canonical error categories the codec can return.
// Transports (REST, gRPC, CLI) switch on Kind to decide status codes
// and display text; they never inspect error strings.
type Kind int

const (
	KindInvalidFile Kind = iota
	KindNotEnoughSamples
	KindIncorrectPassword
	KindFailedToReceiveMessage
	KindUnsupportedFormat
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFile:
		return "InvalidFile"
	case KindNotEnoughSamples:
		return "NotEnoughSamples"
	case KindIncorrectPassword:
		return "IncorrectPassword"
	case KindFailedToReceiveMessage:
		return "FailedToReceiveMessage"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Error is the codec's single error type. Required is only meaningful
// for KindNotEnoughSamples; Detail is only meaningful for
// KindInvalidFile, KindUnsupportedFormat, and KindOther.
type Error struct {
	Kind     Kind
	Detail   string
	Required int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidFile:
		return fmt.Sprintf("invalid file: %s", e.Detail)
	case KindNotEnoughSamples:
		return fmt.Sprintf("not enough samples: %d required", e.Required)
	case KindIncorrectPassword:
		return "incorrect password"
	case KindFailedToReceiveMessage:
		return "failed to receive message"
	case KindUnsupportedFormat:
		return fmt.Sprintf("unsupported format %q", e.Detail)
	case KindOther:
		return e.Detail
	default:
		return "unknown stego error"
	}
}

func errInvalidFile(detail string) *Error {
	return &Error{Kind: KindInvalidFile, Detail: detail}
}

func errNotEnoughSamples(required int) *Error {
	return &Error{Kind: KindNotEnoughSamples, Required: required}
}

func errUnsupportedFormat(tag string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Detail: tag}
}

func errOther(detail string) *Error {
	return &Error{Kind: KindOther, Detail: detail}
}

// ErrIncorrectPassword and ErrFailedToReceiveMessage are shared instances
// since they carry no per-call data; errors.Is works against them directly.
var (
	ErrIncorrectPassword      = &Error{Kind: KindIncorrectPassword}
	ErrFailedToReceiveMessage = &Error{Kind: KindFailedToReceiveMessage}
)
