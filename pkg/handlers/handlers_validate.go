package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
)

type inputReport struct {
	Errors   []string
	Warnings []string
}

func checkInput(input *models.ScheduleInput) inputReport {
	var r inputReport

	if len(input.Workers) == 0 {
		r.Errors = append(r.Errors, "At least one worker is required")
	}
	if len(input.Shifts) == 0 {
		r.Errors = append(r.Errors, "At least one shift is required")
	}

	shiftIDs := make(map[string]bool)
	for _, s := range input.Shifts {
		switch {
		case strings.TrimSpace(s.ID) == "":
			r.Errors = append(r.Errors, "Every shift needs an id")
		case shiftIDs[s.ID]:
			r.Errors = append(r.Errors, "Duplicate shift ID: "+s.ID)
		case len(s.Days) == 0:
			r.Warnings = append(r.Warnings, "Shift "+s.ID+" is not active on any day")
		}
		shiftIDs[s.ID] = true
	}

	names := make(map[string]bool)
	for _, w := range input.Workers {
		if strings.TrimSpace(w.Name) == "" {
			r.Errors = append(r.Errors, "Every worker needs a name")
			continue
		}
		if names[w.Name] {
			r.Warnings = append(r.Warnings, "Duplicate worker name: "+w.Name+" (schedules will not tell them apart)")
		}
		names[w.Name] = true
		if len(w.Unavailable) == models.DaysPerWeek {
			r.Warnings = append(r.Warnings, w.Name+" is unavailable every day")
		}
	}

	if input.MinWorkers != 0 {
		if err := scheduler.CheckMinimumWorkers(len(input.Workers), input.MinWorkers); err != nil {
			r.Errors = append(r.Errors, err.Error())
		}
	}

	if len(r.Errors) == 0 {
		for _, d := range models.AllDays() {
			need, free := 0, 0
			for _, s := range input.Shifts {
				if s.Days.Contains(d) {
					need++
				}
			}
			for _, w := range input.Workers {
				if !w.UnavailableOn(d) {
					free++
				}
			}
			if need > free {
				r.Warnings = append(r.Warnings, fmt.Sprintf("%s needs %d workers but only %d are available; preferences cannot be honored", d, need, free))
			}
		}
	}
	return r
}

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	report := checkInput(&input)
	if len(report.Errors) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid":    false,
			"error":    report.Errors[0],
			"errors":   report.Errors,
			"warnings": report.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": report.Warnings,
		"stats": gin.H{
			"worker_count": len(input.Workers),
			"shift_count":  len(input.Shifts),
			"slot_count":   countSlots(input.Shifts),
		},
	})
}
