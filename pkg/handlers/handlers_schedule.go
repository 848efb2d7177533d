package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/loader"
	"github.com/arnavshah/roster-api-go/pkg/metrics"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/render"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
)

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondSchedule(c, &input)
}

// ScheduleYAML handles a YAML roster document
func (h *Handler) ScheduleYAML(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}
	input, err := loader.LoadRoster(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondSchedule(c, input)
}

func (h *Handler) respondSchedule(c *gin.Context, input *models.ScheduleInput) {
	res, ok := h.runSchedule(c, input)
	if !ok {
		return
	}

	resp := models.ScheduleResponse{
		Assignments:  res.Table,
		UsedFallback: res.UsedFallback,
		Seed:         res.Seed,
	}
	if input.Save {
		saved, ok := h.saveSchedule(c, input, res)
		if !ok {
			return
		}
		resp.ScheduleID = saved.PublicID
	}
	c.JSON(http.StatusOK, resp)
}

// ScheduleCSV handles CSV file uploads for scheduling. It expects a
// shifts_file (shift,start,end,days) and a workers_file
// (name,unavailable_days); allow_fallback, min_workers and seed are
// optional form fields.
func (h *Handler) ScheduleCSV(c *gin.Context) {
	shiftsFile, _ := c.FormFile("shifts_file")
	workersFile, _ := c.FormFile("workers_file")
	if shiftsFile == nil || workersFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shifts_file and workers_file are required"})
		return
	}

	sFile, err := shiftsFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open shifts file"})
		return
	}
	defer sFile.Close()
	shifts, err := loader.ImportShifts(sFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wFile, err := workersFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open workers file"})
		return
	}
	defer wFile.Close()
	workers, err := loader.ImportWorkers(wFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &models.ScheduleInput{
		Name:          c.PostForm("name"),
		Shifts:        shifts,
		Workers:       workers,
		AllowFallback: formBool(c.PostForm("allow_fallback")),
		Save:          formBool(c.PostForm("save")),
	}
	if v := c.PostForm("min_workers"); v != "" {
		if input.MinWorkers, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_workers must be an integer"})
			return
		}
	}
	if v := c.PostForm("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
			return
		}
		input.Seed = &seed
	}

	res, ok := h.runSchedule(c, input)
	if !ok {
		return
	}

	var outCSV strings.Builder
	if err := render.WriteCSV(&outCSV, shifts, res.Table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not export schedule"})
		return
	}

	resp := gin.H{
		"csv":           outCSV.String(),
		"table":         render.ScheduleTable(shifts, res.Table),
		"used_fallback": res.UsedFallback,
		"seed":          res.Seed,
	}
	if input.Save {
		saved, ok := h.saveSchedule(c, input, res)
		if !ok {
			return
		}
		resp["schedule_id"] = saved.PublicID
	}
	c.JSON(http.StatusOK, resp)
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// runSchedule validates the input, plans the schedule and records usage and
// metrics. On failure it writes the error response and returns false.
func (h *Handler) runSchedule(c *gin.Context, input *models.ScheduleInput) (*scheduler.Result, bool) {
	report := checkInput(input)
	if len(report.Errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": report.Errors[0], "errors": report.Errors})
		return nil, false
	}
	models.EnsureIDs(input.Workers)

	s := scheduler.NewScheduler(input.Shifts, input.Workers,
		scheduler.WithSeed(h.seedFor(input)),
		scheduler.WithLogger(h.logger()),
	)
	res, err := s.Plan(func(error) bool { return input.AllowFallback })

	slots := countSlots(input.Shifts)
	delta := database.UsageDelta{Shifts: len(input.Shifts), Workers: len(input.Workers)}
	outcome := metrics.OutcomeConstrained
	switch {
	case err == nil && res.UsedFallback:
		outcome = metrics.OutcomeFallback
		delta.Infeasible, delta.Fallback = true, true
	case scheduler.IsInfeasible(err):
		outcome = metrics.OutcomeInfeasible
		delta.Infeasible = true
	case err != nil:
		outcome = metrics.OutcomeFatal
	}
	h.Metrics.ObserveSchedule(outcome, slots, len(input.Workers))
	setUsage(c, delta)

	if err != nil {
		body := gin.H{"error": err.Error(), "seed": s.Seed()}
		var assignErr *scheduler.AssignError
		if errors.As(err, &assignErr) {
			body["conflict"] = assignErr.Conflict()
		}
		status := http.StatusUnprocessableEntity
		if scheduler.IsInfeasible(err) {
			status = http.StatusConflict
			body["hint"] = "set allow_fallback to generate a schedule without worker preferences"
		}
		c.JSON(status, body)
		return nil, false
	}
	return res, true
}

func (h *Handler) seedFor(input *models.ScheduleInput) int64 {
	if input.Seed != nil {
		return *input.Seed
	}
	if h.Seed != nil {
		return *h.Seed
	}
	return time.Now().UnixNano()
}

func countSlots(shifts []models.Shift) int {
	n := 0
	for _, s := range shifts {
		n += len(s.Days)
	}
	return n
}

func (h *Handler) saveSchedule(c *gin.Context, input *models.ScheduleInput, res *scheduler.Result) (*database.SavedSchedule, bool) {
	apiKey, ok := apiKeyFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return nil, false
	}
	saved, err := database.SaveSchedule(c.Request.Context(), h.DB, apiKey.ID, input.Name, input.Shifts, res.Table, res.UsedFallback, res.Seed)
	if err != nil {
		h.logger().Error("save schedule", "key_id", apiKey.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save schedule"})
		return nil, false
	}
	return saved, true
}

func (h *Handler) loadSchedule(c *gin.Context) (*database.SavedSchedule, []models.Shift, models.AssignmentTable, bool) {
	apiKey, ok := apiKeyFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return nil, nil, nil, false
	}

	saved, err := database.FindSchedule(c.Request.Context(), h.DB, apiKey.ID, c.Param("id"))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedule"})
		}
		return nil, nil, nil, false
	}

	shifts, err := saved.Shifts()
	if err == nil {
		var table models.AssignmentTable
		if table, err = saved.Assignments(); err == nil {
			return saved, shifts, table, true
		}
	}
	h.logger().Error("decode saved schedule", "id", saved.PublicID, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedule"})
	return nil, nil, nil, false
}

// GetSchedule returns a saved schedule
func (h *Handler) GetSchedule(c *gin.Context) {
	saved, shifts, table, ok := h.loadSchedule(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":            saved.PublicID,
		"name":          saved.Name,
		"created_at":    saved.CreatedAt,
		"used_fallback": saved.UsedFallback,
		"seed":          saved.Seed,
		"shifts":        shifts,
		"assignments":   table,
	})
}

// GetScheduleTable renders a saved schedule as a text grid, or as CSV with ?format=csv
func (h *Handler) GetScheduleTable(c *gin.Context) {
	_, shifts, table, ok := h.loadSchedule(c)
	if !ok {
		return
	}

	if c.Query("format") == "csv" {
		var out bytes.Buffer
		if err := render.WriteCSV(&out, shifts, table); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not export schedule"})
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out.Bytes())
		return
	}
	c.String(http.StatusOK, render.ScheduleTable(shifts, table)+"\n")
}
