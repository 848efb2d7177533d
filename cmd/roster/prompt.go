package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

var errNoInput = errors.New("input ended before all answers were given")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) yes(question string) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes") || strings.EqualFold(answer, "y"), nil
}

func (p *prompter) minimumWorkers() (int, error) {
	for {
		answer, err := p.ask("Whats the minimum amount of workers you need? ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		switch {
		case err != nil:
			fmt.Fprintln(p.out, "Input invalid: Please input a positive integer!")
		case n <= 0:
			fmt.Fprintln(p.out, "Input invalid: please give a positive number!")
		default:
			return n, nil
		}
	}
}

// workers keeps asking for names until an empty one is entered
func (p *prompter) workers() ([]models.Worker, error) {
	fmt.Fprintln(p.out, "Keep typing names of workers. When you're done, press enter.")
	var workers []models.Worker
	for {
		name, err := p.ask("Worker: ")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return workers, nil
		}
		days, err := p.unavailableDays(name)
		if err != nil {
			return nil, err
		}
		workers = append(workers, models.NewWorker(name, days))
	}
}

func (p *prompter) unavailableDays(name string) (models.Days, error) {
	for {
		answer, err := p.ask(fmt.Sprintf("Enter days (1-7) when %s can't work (comma-separated): ", name))
		if err != nil {
			return nil, err
		}
		days, err := models.ParseDays(answer)
		if err == nil {
			return days, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter valid days (1-7). Try again.")
	}
}
