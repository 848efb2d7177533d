package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

var (
	ErrNotCSV         = errors.New("loader: file does not have a .csv extension")
	ErrEmptyCSV       = errors.New("loader: CSV file is empty")
	ErrMissingHeaders = errors.New("loader: CSV file is missing required headers")
)

// ShiftHeaders are the columns a shifts file must provide
var ShiftHeaders = []string{"shift", "start", "end", "days"}

// WorkerHeaders are the columns a workers file must provide
var WorkerHeaders = []string{"name", "unavailable_days"}

// ImportShiftsFile reads shifts from a CSV file on disk
func ImportShiftsFile(path string) ([]models.Shift, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("%w: %s", ErrNotCSV, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open shifts file: %w", err)
	}
	defer f.Close()
	return ImportShifts(f)
}

// ImportShifts reads shifts from CSV with headers shift,start,end,days.
// Column order does not matter and extra columns are ignored. Days use the
// compact form "135" or a separated list.
func ImportShifts(r io.Reader) ([]models.Shift, error) {
	cols, reader, err := readHeader(r, ShiftHeaders)
	if err != nil {
		return nil, err
	}

	var shifts []models.Shift
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: shifts line %d: %w", line, err)
		}

		id := strings.TrimSpace(record[cols["shift"]])
		if id == "" {
			return nil, fmt.Errorf("loader: shifts line %d: empty shift name", line)
		}
		if seen[id] {
			return nil, fmt.Errorf("loader: shifts line %d: duplicate shift %q", line, id)
		}
		seen[id] = true

		days, err := models.ParseDays(record[cols["days"]])
		if err != nil {
			return nil, fmt.Errorf("loader: shifts line %d: %w", line, err)
		}

		shifts = append(shifts, models.Shift{
			ID:    id,
			Start: strings.TrimSpace(record[cols["start"]]),
			End:   strings.TrimSpace(record[cols["end"]]),
			Days:  days,
		})
	}
	return shifts, nil
}

// ImportWorkers reads workers from CSV with headers name,unavailable_days.
// Every worker is given a generated ID.
func ImportWorkers(r io.Reader) ([]models.Worker, error) {
	cols, reader, err := readHeader(r, WorkerHeaders)
	if err != nil {
		return nil, err
	}

	var workers []models.Worker
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: workers line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[cols["name"]])
		if name == "" {
			return nil, fmt.Errorf("loader: workers line %d: empty worker name", line)
		}
		days, err := models.ParseDays(record[cols["unavailable_days"]])
		if err != nil {
			return nil, fmt.Errorf("loader: workers line %d: %w", line, err)
		}
		workers = append(workers, models.NewWorker(name, days))
	}
	return workers, nil
}

// ImportWorkersFile reads workers from a CSV or YAML file on disk. YAML files
// hold a list of workers, or a roster document with a workers key.
func ImportWorkersFile(path string) ([]models.Worker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open workers file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportWorkers(f)
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.NewDecoder(f).Decode(&node); err != nil {
			return nil, fmt.Errorf("loader: decode workers: %w", err)
		}
		var workers []models.Worker
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			err = node.Decode(&workers)
		} else {
			var roster models.ScheduleInput
			err = node.Decode(&roster)
			workers = roster.Workers
		}
		if err != nil {
			return nil, fmt.Errorf("loader: decode workers: %w", err)
		}
		models.EnsureIDs(workers)
		return workers, nil
	default:
		return nil, fmt.Errorf("loader: unsupported workers file %s", path)
	}
}

// LoadRoster decodes a YAML roster document holding shifts, workers and
// scheduling options.
func LoadRoster(r io.Reader) (*models.ScheduleInput, error) {
	var roster models.ScheduleInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if err == io.EOF {
			return nil, errors.New("loader: roster is empty")
		}
		return nil, fmt.Errorf("loader: decode roster: %w", err)
	}
	models.EnsureIDs(roster.Workers)
	return &roster, nil
}

func readHeader(r io.Reader, required []string) (map[string]int, *csv.Reader, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loader: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range required {
		if _, ok := cols[h]; !ok {
			return nil, nil, fmt.Errorf("%w: want %s", ErrMissingHeaders, strings.Join(required, ","))
		}
	}
	return cols, reader, nil
}
