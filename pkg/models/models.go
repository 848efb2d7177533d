package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Days is a list of weekdays in the order they were given. It decodes from
// either a list of indices ([1, 3, 5]) or the compact string form ("135").
type Days []Weekday

// Contains reports whether d is in the list
func (ds Days) Contains(d Weekday) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

func (ds *Days) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return ds.parse(s)
	}
	var ints []int
	if err := json.Unmarshal(b, &ints); err != nil {
		return fmt.Errorf("days must be a list of day numbers or a string like \"135\": %w", err)
	}
	return ds.fromInts(ints)
}

func (ds *Days) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return ds.parse(value.Value)
	case yaml.SequenceNode:
		var ints []int
		if err := value.Decode(&ints); err != nil {
			return err
		}
		return ds.fromInts(ints)
	default:
		return fmt.Errorf("line %d: days must be a list or a string", value.Line)
	}
}

func (ds *Days) parse(s string) error {
	days, err := ParseDays(s)
	if err != nil {
		return err
	}
	*ds = days
	return nil
}

func (ds *Days) fromInts(ints []int) error {
	days := make(Days, 0, len(ints))
	for _, n := range ints {
		d := Weekday(n)
		if !d.Valid() {
			return fmt.Errorf("invalid day %d: must be between 1 and 7", n)
		}
		if days.Contains(d) {
			continue
		}
		days = append(days, d)
	}
	*ds = days
	return nil
}

// Shift is a recurring weekly shift. Start and End are display strings only.
type Shift struct {
	ID    string `json:"id" yaml:"id"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Days  Days   `json:"days" yaml:"days"`
}

// Worker represents a person who can be put on shifts
type Worker struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Unavailable Days   `json:"unavailable_days" yaml:"unavailable_days"`
}

// NewWorker creates a worker with a freshly generated ID
func NewWorker(name string, unavailable Days) Worker {
	return Worker{ID: uuid.NewString(), Name: name, Unavailable: unavailable}
}

// UnavailableOn reports whether the worker asked not to work on d
func (w Worker) UnavailableOn(d Weekday) bool {
	return w.Unavailable.Contains(d)
}

// EnsureIDs gives every worker without an ID a generated one
func EnsureIDs(workers []Worker) {
	for i := range workers {
		if workers[i].ID == "" {
			workers[i].ID = uuid.NewString()
		}
	}
}

// AssignmentTable maps shift ID -> weekday name -> assigned worker names
type AssignmentTable map[string]map[string][]string

// NewAssignmentTable creates an empty slot list for every day each shift is active
func NewAssignmentTable(shifts []Shift) AssignmentTable {
	t := make(AssignmentTable, len(shifts))
	for _, s := range shifts {
		days := make(map[string][]string, len(s.Days))
		for _, d := range s.Days {
			days[d.String()] = []string{}
		}
		t[s.ID] = days
	}
	return t
}

// Add appends a worker name to the (shift, day) slot
func (t AssignmentTable) Add(shiftID string, day Weekday, name string) {
	days, ok := t[shiftID]
	if !ok {
		days = make(map[string][]string)
		t[shiftID] = days
	}
	days[day.String()] = append(days[day.String()], name)
}

// Slot returns the workers assigned to a shift on a day
func (t AssignmentTable) Slot(shiftID string, day Weekday) []string {
	return t[shiftID][day.String()]
}

// WorkersOn returns every assignment on a day across all shifts
func (t AssignmentTable) WorkersOn(day Weekday) []string {
	var names []string
	for _, days := range t {
		names = append(names, days[day.String()]...)
	}
	return names
}

// ConflictReason represents why a schedule could not be built
type ConflictReason struct {
	ShiftID string `json:"shift_id,omitempty"`
	Day     string `json:"day,omitempty"`
	Reason  string `json:"reason"`
}

// ScheduleInput is the data structure for the scheduling endpoints
type ScheduleInput struct {
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Shifts        []Shift  `json:"shifts" yaml:"shifts"`
	Workers       []Worker `json:"workers" yaml:"workers"`
	MinWorkers    int      `json:"min_workers,omitempty" yaml:"min_workers,omitempty"`
	AllowFallback bool     `json:"allow_fallback" yaml:"allow_fallback"`
	Seed          *int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Save          bool     `json:"save,omitempty" yaml:"save,omitempty"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	Assignments  AssignmentTable `json:"assignments"`
	UsedFallback bool            `json:"used_fallback"`
	Seed         int64           `json:"seed"`
	ScheduleID   string          `json:"schedule_id,omitempty"`
}
