package scheduler

import (
	"errors"
	"fmt"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

var (
	// ErrInsufficientWorkers means the preferences could not be honored with
	// the remaining candidates. Callers may retry with AssignFallback.
	ErrInsufficientWorkers = errors.New("not enough workers to cover all shifts based on preferences")

	// ErrPoolExhausted means there was no candidate at all for a slot, which
	// only happens with structurally impossible input such as zero workers.
	ErrPoolExhausted = errors.New("not enough employees to cover all shifts")

	// ErrNotEnoughWorkers is returned by CheckMinimumWorkers
	ErrNotEnoughWorkers = errors.New("not enough workers")
)

// Kind classifies an AssignError
type Kind int

const (
	// KindInfeasible is recoverable: constraints could not be satisfied
	KindInfeasible Kind = iota + 1
	// KindFatal aborts the run: the candidate pool was empty on a first pop
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindInfeasible:
		return "infeasible"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// AssignError reports which slot could not be filled and why
type AssignError struct {
	Kind    Kind
	ShiftID string
	Day     models.Weekday
}

func (e *AssignError) Error() string {
	if e.ShiftID == "" {
		return e.Unwrap().Error()
	}
	return fmt.Sprintf("%v (shift %q on %s)", e.Unwrap(), e.ShiftID, e.Day)
}

func (e *AssignError) Unwrap() error {
	if e.Kind == KindFatal {
		return ErrPoolExhausted
	}
	return ErrInsufficientWorkers
}

// Conflict converts the error into the API's conflict shape
func (e *AssignError) Conflict() models.ConflictReason {
	c := models.ConflictReason{ShiftID: e.ShiftID, Reason: e.Unwrap().Error()}
	if e.Day.Valid() {
		c.Day = e.Day.String()
	}
	return c
}

// IsInfeasible reports whether err is the recoverable infeasibility signal
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInsufficientWorkers)
}

// IsFatal reports whether err is the unrecoverable pool exhaustion signal
func IsFatal(err error) bool {
	return errors.Is(err, ErrPoolExhausted)
}
