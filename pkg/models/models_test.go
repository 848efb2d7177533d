package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseWeekday(t *testing.T) {
	for _, s := range []string{"1", "2", "3", "4", "5", "6", "7", " 7 "} {
		_, err := ParseWeekday(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"10", "test", "0", "", " ", "..."} {
		_, err := ParseWeekday(s)
		assert.Error(t, err, s)
	}
}

func TestWeekdayNames(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Weekday(9)", Weekday(9).String())

	names := DayNames()
	require.Len(t, names, DaysPerWeek)
	names[0] = "Funday"
	assert.Equal(t, "Monday", DayNames()[0], "DayNames must return a copy")
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in   string
		want []Weekday
	}{
		{"135", []Weekday{Monday, Wednesday, Friday}},
		{"1,3,5", []Weekday{Monday, Wednesday, Friday}},
		{"7 1", []Weekday{Sunday, Monday}},
		{"2, 2,4", []Weekday{Tuesday, Thursday}},
		{"1135", []Weekday{Monday, Wednesday, Friday}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := ParseDays(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDays("128")
	assert.Error(t, err)
	_, err = ParseDays("mon")
	assert.Error(t, err)
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "246", FormatDays([]Weekday{Tuesday, Thursday, Saturday}))
}

func TestDaysDecoding(t *testing.T) {
	var fromList, fromString Shift
	require.NoError(t, json.Unmarshal([]byte(`{"id":"Open","days":[1,2]}`), &fromList))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"Open","days":"12"}`), &fromString))
	assert.Equal(t, Days{Monday, Tuesday}, fromList.Days)
	assert.Equal(t, fromList, fromString)

	var repeated Shift
	require.NoError(t, json.Unmarshal([]byte(`{"id":"Open","days":[1,1,3]}`), &repeated))
	assert.Equal(t, Days{Monday, Wednesday}, repeated.Days)

	var bad Shift
	assert.Error(t, json.Unmarshal([]byte(`{"id":"Open","days":[8]}`), &bad))

	var w Worker
	require.NoError(t, yaml.Unmarshal([]byte("name: Alice\nunavailable_days: 67\n"), &w))
	assert.Equal(t, Days{Saturday, Sunday}, w.Unavailable)
	require.NoError(t, yaml.Unmarshal([]byte("name: Bob\nunavailable_days: [1, 3]\n"), &w))
	assert.Equal(t, Days{Monday, Wednesday}, w.Unavailable)
}

func TestAssignmentTable(t *testing.T) {
	shifts := []Shift{
		{ID: "Open", Days: Days{Monday, Tuesday}},
		{ID: "Close", Days: Days{Monday}},
	}
	table := NewAssignmentTable(shifts)

	assert.NotNil(t, table.Slot("Open", Tuesday))
	assert.Empty(t, table.Slot("Open", Tuesday))
	assert.Nil(t, table.Slot("Close", Tuesday))

	table.Add("Open", Monday, "Alice")
	table.Add("Close", Monday, "Bob")
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, table.WorkersOn(Monday))
	assert.Empty(t, table.WorkersOn(Tuesday))
}

func TestEnsureIDs(t *testing.T) {
	workers := []Worker{{Name: "Alice"}, {ID: "fixed", Name: "Bob"}}
	EnsureIDs(workers)

	assert.NotEmpty(t, workers[0].ID)
	assert.Equal(t, "fixed", workers[1].ID)
	assert.NotEqual(t, workers[0].ID, NewWorker("Alice", nil).ID)
}
