// Command roster builds a weekly schedule from a shifts CSV file and worker
// availability entered at the prompt or read from a file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/loader"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/render"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
)

func main() {
	config.LoadDotEnv()
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type options struct {
	shiftsFile  string
	workersFile string
	minWorkers  int
	seed        int64
	fallback    string
	out         string
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: roster [flags] shifts_file.csv")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.workersFile, "workers", "", "read workers from a CSV or YAML file instead of prompting")
	fs.IntVar(&opts.minWorkers, "min", 0, "minimum number of workers (prompted when 0)")
	fs.Int64Var(&opts.seed, "seed", 0, "shuffle seed for a reproducible schedule (random when 0)")
	fs.StringVar(&opts.fallback, "fallback", "ask", "when preferences cannot be met: ask, yes or no")
	fs.StringVar(&opts.out, "out", "", "save the schedule to this file (.csv for CSV, otherwise a text grid)")
	fs.BoolVar(&opts.verbose, "v", false, "log scheduling decisions to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return nil, errors.New("missing shifts file")
	}
	opts.shiftsFile = fs.Arg(0)

	switch opts.fallback {
	case "ask", "yes", "no":
	default:
		return nil, fmt.Errorf("-fallback must be ask, yes or no, got %q", opts.fallback)
	}
	if opts.seed == 0 {
		if cfg, err := config.FromEnv(); err == nil && cfg.Seed != nil {
			opts.seed = *cfg.Seed
		}
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	p := newPrompter(stdin, stdout)

	shifts, err := loader.ImportShiftsFile(opts.shiftsFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, render.ShiftsTable(shifts))

	minWorkers := opts.minWorkers
	if minWorkers <= 0 {
		if minWorkers, err = p.minimumWorkers(); err != nil {
			return err
		}
	}

	var workers []models.Worker
	if opts.workersFile != "" {
		workers, err = loader.ImportWorkersFile(opts.workersFile)
	} else {
		workers, err = p.workers()
	}
	if err != nil {
		return err
	}

	if err := scheduler.CheckMinimumWorkers(len(workers), minWorkers); err != nil {
		fmt.Fprintln(stdout, "Not enough workers!")
		return err
	}

	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, render.RequestedFreeDays(workers))

	schedOpts := []scheduler.Option{}
	if opts.seed != 0 {
		schedOpts = append(schedOpts, scheduler.WithSeed(opts.seed))
	}
	if opts.verbose {
		schedOpts = append(schedOpts, scheduler.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	s := scheduler.NewScheduler(shifts, workers, schedOpts...)

	var promptErr error
	res, err := s.Plan(func(error) bool {
		switch opts.fallback {
		case "yes":
			return true
		case "no":
			return false
		}
		ok, err := p.yes("It's not possible to accommodate everyone's preferences.\n" +
			"Do you want to generate a schedule without considering employee preferences? (yes/no): ")
		promptErr = err
		return ok
	})
	if promptErr != nil {
		return promptErr
	}
	if scheduler.IsInfeasible(err) {
		fmt.Fprintln(stdout, "Exiting the program. Please adjust preferences or provide more workers.")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nSchedule Assignments:")
	if res.UsedFallback {
		fmt.Fprintln(stdout, "(generated without worker preferences)")
	}
	fmt.Fprintln(stdout, render.ScheduleTable(shifts, res.Table))
	fmt.Fprintf(stdout, "Seed: %d\n", res.Seed)

	out := opts.out
	if out == "" {
		save, err := p.yes("Do you want to save the schedule to a file? (yes/no): ")
		if err != nil || !save {
			return err
		}
		if out, err = p.ask("Enter the filename (include extension, e.g., schedule.txt): "); err != nil {
			return err
		}
		if out == "" {
			return errors.New("no filename given")
		}
	}
	if err := saveSchedule(out, shifts, res.Table); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Schedule saved to %s\n", out)
	return nil
}

func saveSchedule(path string, shifts []models.Shift, table models.AssignmentTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = render.WriteCSV(f, shifts, table)
	} else {
		_, err = fmt.Fprintln(f, render.ScheduleTable(shifts, table))
	}
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return f.Close()
}
