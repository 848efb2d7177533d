package scheduler

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Scheduler handles the logic of assigning workers to weekly shifts.
// It is not safe for concurrent use; build one per run.
type Scheduler struct {
	Shifts  []models.Shift
	Workers []models.Worker

	seed   int64
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithSeed fixes the shuffle seed so repeated runs produce identical tables
func WithSeed(seed int64) Option {
	return func(s *Scheduler) {
		s.seed = seed
	}
}

// WithLogger sets the logger used for assignment outcomes
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(shifts []models.Shift, workers []models.Worker, opts ...Option) *Scheduler {
	s := &Scheduler{
		Shifts:  shifts,
		Workers: workers,
		seed:    time.Now().UnixNano(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	return s
}

// Seed returns the seed the shuffles were drawn from
func (s *Scheduler) Seed() int64 {
	return s.seed
}

// candidatePool returns worker indices: one shuffled permutation of all
// workers per (shift, weekday) round, concatenated.
func (s *Scheduler) candidatePool() []int {
	rounds := len(s.Shifts) * models.DaysPerWeek
	pool := make([]int, 0, rounds*len(s.Workers))
	for i := 0; i < rounds; i++ {
		pool = append(pool, s.rng.Perm(len(s.Workers))...)
	}
	return pool
}

// AssignConstrained assigns one worker to every active (shift, day) slot so
// that nobody works twice on the same day or on a day they marked
// unavailable. Candidates are drawn greedily from an oversized shuffled pool
// without backtracking, so it may report infeasibility even when another
// ordering would have worked.
func (s *Scheduler) AssignConstrained() (models.AssignmentTable, error) {
	table := models.NewAssignmentTable(s.Shifts)

	// indexed by position in s.Workers so same-named workers stay distinct
	committed := make([]map[models.Weekday]string, len(s.Workers))
	for i := range committed {
		committed[i] = make(map[models.Weekday]string, models.DaysPerWeek)
	}

	pool := s.candidatePool()
	pop := func() int {
		w := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		return w
	}
	ineligible := func(w int, day models.Weekday) bool {
		_, busy := committed[w][day]
		return busy || s.Workers[w].UnavailableOn(day)
	}

	for _, shift := range s.Shifts {
		for _, day := range shift.Days {
			if len(pool) == 0 {
				s.logger.Error("candidate pool exhausted", "shift", shift.ID, "day", day.String(), "workers", len(s.Workers))
				return nil, &AssignError{Kind: KindFatal, ShiftID: shift.ID, Day: day}
			}

			w := pop()
			for ineligible(w, day) {
				if len(pool) == 0 {
					s.logger.Info("preferences cannot be satisfied", "shift", shift.ID, "day", day.String())
					return nil, &AssignError{Kind: KindInfeasible, ShiftID: shift.ID, Day: day}
				}
				w = pop()
			}

			table.Add(shift.ID, day, s.Workers[w].Name)
			committed[w][day] = shift.ID
		}
	}

	return table, nil
}

// AssignFallback assigns every active slot by cycling through a shuffled
// worker list, ignoring unavailability and same-day double booking.
func (s *Scheduler) AssignFallback() (models.AssignmentTable, error) {
	if len(s.Workers) == 0 {
		return nil, &AssignError{Kind: KindFatal}
	}

	names := make([]string, len(s.Workers))
	for i, w := range s.Workers {
		names[i] = w.Name
	}
	s.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	next := cycle(names)

	table := models.NewAssignmentTable(s.Shifts)
	for _, shift := range s.Shifts {
		for _, day := range shift.Days {
			table.Add(shift.ID, day, next())
		}
	}
	return table, nil
}

// cycle returns a function yielding items round-robin forever
func cycle(items []string) func() string {
	i := 0
	return func() string {
		item := items[i%len(items)]
		i++
		return item
	}
}
