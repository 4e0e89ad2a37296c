// Package main provides the time-based workflow scheduler. It periodically
// scans deals for workflows with date triggers and runs the ones that are
// due.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dealclarity/clarity/pkg/dotpath"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/runner"
)

const defaultDateField = "closeDate"

// stageEnteredAtField records when the deal entered its current stage.
const stageEnteredAtField = "stageEnteredAt"

var scheduledTriggerTypes = []models.TriggerType{
	models.TriggerCustomDate,
	models.TriggerDealDaysInStage,
}

type Scheduler struct {
	logger *slog.Logger
	store  persistence.Persistence
	runner *runner.Runner
	cron   *cron.Cron
}

func NewScheduler(store persistence.Persistence, workflowRunner *runner.Runner, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With("module", "clarity-scheduler"),
		store:  store,
		runner: workflowRunner,
		cron:   cron.New(),
	}
}

// Start registers the scan job with the given cron spec and blocks until
// the process is signalled to stop.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.RunDue(ctx, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Scheduler started", "spec", spec)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	s.logger.InfoContext(ctx, "Shutting down scheduler...")

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	return nil
}

// RunDue scans every workflow with a time-based trigger and runs it against
// the team's deals that are due at the given time. One workflow failing
// never stops the scan.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) {
	enabled := true

	for _, triggerType := range scheduledTriggerTypes {
		workflows, err := s.store.Workflows().List(ctx, persistence.ListWorkflowsOptions{
			Enabled:     &enabled,
			TriggerType: &triggerType,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to list scheduled workflows",
				"trigger", triggerType, "error", err)

			continue
		}

		for _, workflow := range workflows {
			s.runDueWorkflow(ctx, workflow, now)
		}
	}
}

func (s *Scheduler) runDueWorkflow(ctx context.Context, workflow *models.Workflow, now time.Time) {
	deals, err := s.store.Deals().List(ctx, workflow.TeamID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list deals",
			"workflow_id", workflow.ID, "team_id", workflow.TeamID, "error", err)

		return
	}

	for _, deal := range deals {
		if !triggerDue(workflow.Trigger, deal, now) {
			continue
		}

		s.logger.InfoContext(ctx, "Running scheduled workflow",
			"workflow_id", workflow.ID, "deal_id", deal.ID, "trigger", workflow.Trigger.Type)

		if err := s.runner.RunScheduled(ctx, workflow.ID, deal.ID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to run scheduled workflow",
				"workflow_id", workflow.ID, "deal_id", deal.ID, "error", err)
		}
	}
}

// triggerDue decides whether the trigger fires for the deal at the given
// time.
func triggerDue(trigger models.WorkflowTrigger, deal *models.Deal, now time.Time) bool {
	switch trigger.Type {
	case models.TriggerCustomDate:
		field, _ := trigger.Config["dateField"].(string)
		if field == "" {
			field = defaultDateField
		}

		value, ok := dotpath.Resolve(deal.Fields, field)
		if !ok {
			return false
		}

		date, ok := parseDate(value)
		if !ok {
			return false
		}

		return sameDay(date, now)

	case models.TriggerDealDaysInStage:
		days, ok := toDays(trigger.Config["days"])
		if !ok {
			return false
		}

		if stage, _ := trigger.Config["stage"].(string); stage != "" && deal.Stage() != stage {
			return false
		}

		enteredAt := deal.UpdatedAt

		if value, ok := deal.Fields[stageEnteredAtField]; ok {
			if parsed, ok := parseDate(value); ok {
				enteredAt = parsed
			}
		}

		return now.Sub(enteredAt) >= time.Duration(days)*24*time.Hour

	default:
		return false
	}
}

func parseDate(value any) (time.Time, bool) {
	text, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func toDays(value any) (int, bool) {
	switch days := value.(type) {
	case int:
		return days, true
	case int64:
		return int(days), true
	case float64:
		return int(days), true
	default:
		return 0, false
	}
}
