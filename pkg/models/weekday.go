package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday is a day index from 1 (Monday) to 7 (Sunday)
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of weekdays a shift can be active on
const DaysPerWeek = 7

// weekNames maps each weekday index to its canonical name. Index 0 is unused.
var weekNames = [DaysPerWeek + 1]string{
	"",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Valid reports whether d is within 1..7
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekNames[d]
}

// DayNames returns the weekday names Monday through Sunday
func DayNames() []string {
	names := make([]string, DaysPerWeek)
	copy(names, weekNames[1:])
	return names
}

// AllDays returns Monday through Sunday in order
func AllDays() []Weekday {
	days := make([]Weekday, 0, DaysPerWeek)
	for d := Monday; d <= Sunday; d++ {
		days = append(days, d)
	}
	return days
}

// ParseWeekday parses a single day index such as "3" or " 7 "
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: must be a number between 1 and 7", s)
	}
	d := Weekday(n)
	if !d.Valid() {
		return 0, fmt.Errorf("invalid day %q: must be between 1 and 7", s)
	}
	return d, nil
}

// ParseDays parses a list of day indices. Both the compact form used in shift
// files ("135") and separated forms ("1,3,5" or "1 3 5") are accepted.
// Listed order is preserved and repeated days are dropped.
func ParseDays(s string) ([]Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var parts []string
	if strings.ContainsAny(s, ", ") {
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		parts = strings.Split(s, "")
	}

	days := make([]Weekday, 0, len(parts))
	seen := make(map[Weekday]bool, len(parts))
	for _, p := range parts {
		d, err := ParseWeekday(p)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days, nil
}

// FormatDays renders days in the compact form accepted by ParseDays
func FormatDays(days []Weekday) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(strconv.Itoa(int(d)))
	}
	return b.String()
}
