package scheduler

import (
	"fmt"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Decider is asked whether to drop preferences once the constrained
// assignment has reported infeasibility. cause is the AssignError.
type Decider func(cause error) bool

// AlwaysFallback accepts the preference-free schedule
func AlwaysFallback(error) bool { return true }

// NeverFallback aborts on infeasibility
func NeverFallback(error) bool { return false }

// Result is the outcome of Plan
type Result struct {
	Table        models.AssignmentTable
	UsedFallback bool
	Seed         int64
}

// Plan runs the constrained assignment and, only when it reports
// infeasibility and decide agrees, the fallback assignment. Fatal errors and
// declined fallbacks are returned unchanged.
func (s *Scheduler) Plan(decide Decider) (*Result, error) {
	table, err := s.AssignConstrained()
	if err == nil {
		return &Result{Table: table, Seed: s.seed}, nil
	}
	if !IsInfeasible(err) || decide == nil || !decide(err) {
		return nil, err
	}

	s.logger.Warn("generating schedule without worker preferences", "cause", err.Error())
	table, err = s.AssignFallback()
	if err != nil {
		return nil, err
	}
	return &Result{Table: table, UsedFallback: true, Seed: s.seed}, nil
}

// CheckMinimumWorkers verifies that at least min workers were provided
func CheckMinimumWorkers(have, min int) error {
	if min <= 0 {
		return fmt.Errorf("minimum workers must be a positive number, got %d", min)
	}
	if have < min {
		return fmt.Errorf("%w: have %d, need at least %d", ErrNotEnoughWorkers, have, min)
	}
	return nil
}
