// Package render turns shifts and assignment tables into the grids printed by
// the CLI and returned by the API, and into CSV exports.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)

func grid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		String()
}

// ShiftsTable shows every shift with a "+" on the days it needs a worker
func ShiftsTable(shifts []models.Shift) string {
	headers := append([]string{"Shift", "Start", "End"}, models.DayNames()...)
	rows := make([][]string, 0, len(shifts))
	for _, s := range shifts {
		row := make([]string, 3+models.DaysPerWeek)
		row[0], row[1], row[2] = s.ID, s.Start, s.End
		for _, d := range s.Days {
			row[2+int(d)] = "+"
		}
		rows = append(rows, row)
	}
	return grid(headers, rows)
}

// ScheduleRows returns one row per shift: the shift ID followed by the
// comma-joined workers for Monday through Sunday.
func ScheduleRows(shifts []models.Shift, assignments models.AssignmentTable) [][]string {
	rows := make([][]string, 0, len(shifts))
	for _, s := range shifts {
		row := []string{s.ID}
		for _, d := range models.AllDays() {
			row = append(row, strings.Join(assignments.Slot(s.ID, d), ", "))
		}
		rows = append(rows, row)
	}
	return rows
}

// ScheduleTable renders the assignments as a shift by weekday grid
func ScheduleTable(shifts []models.Shift, assignments models.AssignmentTable) string {
	headers := append([]string{"Shift"}, models.DayNames()...)
	return grid(headers, ScheduleRows(shifts, assignments))
}

// RequestedFreeDays lists each worker's unavailable days, one line per worker
func RequestedFreeDays(workers []models.Worker) string {
	var b strings.Builder
	b.WriteString("Requested Free Days:\n")
	for _, w := range workers {
		if len(w.Unavailable) == 0 {
			fmt.Fprintf(&b, "%s has no requested free days.\n", w.Name)
			continue
		}
		names := make([]string, len(w.Unavailable))
		for i, d := range w.Unavailable {
			names[i] = d.String()
		}
		fmt.Fprintf(&b, "%s: %s\n", w.Name, strings.Join(names, ", "))
	}
	return b.String()
}

// WriteCSV exports the assignments with a shift column and one column per weekday
func WriteCSV(w io.Writer, shifts []models.Shift, assignments models.AssignmentTable) error {
	writer := csv.NewWriter(w)
	header := []string{"shift"}
	for _, name := range models.DayNames() {
		header = append(header, strings.ToLower(name))
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(ScheduleRows(shifts, assignments)); err != nil {
		return err
	}
	return writer.Error()
}
