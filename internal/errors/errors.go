// Package errors provides structured error types for parley.
// These errors carry the operation that failed and a coarse category.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.Function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindContract
	KindClipboard
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindContract:
		return "contract violation"
	case KindClipboard:
		return "clipboard error"
	case KindImage:
		return "image error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for parley.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error. Arguments may be an Op, a Kind, a string (context) or an
// error (the cause), in any order. When no cause is given the context string
// becomes the cause.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// CountMismatch reports a data source whose count delta does not match what
// the caller announced.
func CountMismatch(op string, announced, observed int) error {
	return E(Op(op), KindContract, fmt.Sprintf("data source count changed by %d, caller announced %d", observed, announced))
}

// Clipboard errors
func ClipboardUnavailable(err error) error {
	return E(Op("clipboard.Init"), KindClipboard, "clipboard unavailable", err)
}

func ImageDecodeFailed(err error) error {
	return E(Op("clipboard.ReadImage"), KindImage, "failed to decode clipboard image", err)
}
