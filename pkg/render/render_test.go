package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

func fixture() ([]models.Shift, models.AssignmentTable) {
	shifts := []models.Shift{
		{ID: "Open", Start: "08:00", End: "12:00", Days: models.Days{models.Monday, models.Tuesday}},
		{ID: "Close", Start: "12:00", End: "20:00", Days: models.Days{models.Sunday}},
	}
	table := models.NewAssignmentTable(shifts)
	table.Add("Open", models.Monday, "Bob")
	table.Add("Open", models.Tuesday, "Alice")
	table.Add("Close", models.Sunday, "Carol")
	table.Add("Close", models.Sunday, "Dan")
	return shifts, table
}

func TestShiftsTable(t *testing.T) {
	shifts, _ := fixture()
	out := ShiftsTable(shifts)

	for _, want := range []string{"Shift", "Start", "End", "Monday", "Sunday", "Open", "08:00", "Close", "20:00"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 3, strings.Count(out, "+"))
}

func TestScheduleRows(t *testing.T) {
	shifts, table := fixture()
	rows := ScheduleRows(shifts, table)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Open", "Bob", "Alice", "", "", "", "", ""}, rows[0])
	assert.Equal(t, []string{"Close", "", "", "", "", "", "", "Carol, Dan"}, rows[1])
}

func TestScheduleTable(t *testing.T) {
	shifts, table := fixture()
	out := ScheduleTable(shifts, table)

	for _, want := range []string{"Shift", "Wednesday", "Open", "Bob", "Alice", "Carol, Dan"} {
		assert.Contains(t, out, want)
	}
}

func TestRequestedFreeDays(t *testing.T) {
	out := RequestedFreeDays([]models.Worker{
		{Name: "Alice", Unavailable: models.Days{models.Monday, models.Sunday}},
		{Name: "Bob"},
	})

	assert.Contains(t, out, "Alice: Monday, Sunday\n")
	assert.Contains(t, out, "Bob has no requested free days.\n")
}

func TestWriteCSV(t *testing.T) {
	shifts, table := fixture()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, shifts, table))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"shift", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}, records[0])
	assert.Equal(t, "Carol, Dan", records[2][7])
}
