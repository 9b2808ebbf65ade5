// Package outcome classifies the failures of console workflows so the
// presentation layer can choose how to report them without the workflows
// knowing about toasts or dialogs.
package outcome

import (
	"errors"
	"fmt"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type Kind int

const (
	// KindValidation: blocked before any request; the input needs fixing.
	KindValidation Kind = iota + 1
	// KindBackend: the request failed or was refused; state is unchanged
	// and the user may retry.
	KindBackend
	// KindBusy: the same action is already in flight.
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBackend:
		return "backend"
	case KindBusy:
		return "busy"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid reports a local validation failure. It also matches
// models.ErrValidation.
func Invalid(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf("%s: %w", msg, models.ErrValidation)}
}

// Denied reports a rule violation detected locally, such as a lifecycle
// check, keeping the underlying error for errors.Is.
func Denied(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

func Backend(op string, err error) error {
	return &Error{Kind: KindBackend, Op: op, Err: err}
}

func Busy(op string) error {
	return &Error{Kind: KindBusy, Op: op, Err: errors.New("already in progress")}
}

// KindOf returns the kind of err, or 0 when err is nil or unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
