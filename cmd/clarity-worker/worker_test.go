package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/mocks"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/persistence/file"
	"github.com/dealclarity/clarity/pkg/registry"
	"github.com/dealclarity/clarity/pkg/runner"
)

func newTestWorker(t *testing.T, store persistence.Persistence) *Worker {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.NewDefaultRegistry(logger, store, &mocks.MockMailer{}, &mocks.MockNotifier{})
	workflowRunner := runner.NewRunner(logger, store, reg)
	tracer := noop.NewTracerProvider().Tracer("test")

	return NewWorker("worker-test", workflowRunner, nil, tracer, logger)
}

func stageChangedEvent(teamID, dealID string) events.DealStageChanged {
	return events.DealStageChanged{
		BaseEvent: events.NewBaseEvent(events.DealStageChangedEvent, teamID, dealID),
		NewStage:  "negotiation",
	}
}

func TestWorker_HandleDealEvent_RunsMatchingWorkflows(t *testing.T) {
	ctx := context.Background()
	store := file.NewPersistence(t.TempDir())
	worker := newTestWorker(t, store)

	deal := &models.Deal{ID: "deal-1", TeamID: "team-1", Fields: map[string]any{"stage": "negotiation"}}
	require.NoError(t, store.Deals().Save(ctx, deal))

	workflow := &models.Workflow{
		Name:    "Tag on stage change",
		TeamID:  "team-1",
		Enabled: true,
		Trigger: models.WorkflowTrigger{Type: models.TriggerDealStageChanged},
		Actions: []models.ActionItem{
			{Type: models.ActionAddTag, Config: map[string]any{"tag": "in-negotiation"}},
		},
	}
	require.NoError(t, store.Workflows().Save(ctx, workflow))

	require.NoError(t, worker.handleDealEvent(ctx, stageChangedEvent("team-1", "deal-1")))

	tagged, err := store.Deals().ByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Contains(t, tagged.Tags(), "in-negotiation")
}

func TestWorker_HandleDealEvent_AcksUnknownDeal(t *testing.T) {
	ctx := context.Background()
	store := file.NewPersistence(t.TempDir())
	worker := newTestWorker(t, store)

	// Returning an error would Nack the message and the bus would redeliver
	// it forever. A deleted deal never reappears, so the event is dropped.
	err := worker.handleDealEvent(ctx, stageChangedEvent("team-1", "deal-gone"))
	assert.NoError(t, err)
}

func TestWorker_HandleDealEvent_ReturnsTransientErrors(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockPersistence()
	store.DealRepo.On("ByID", mock.Anything, "deal-1").Return(nil, errors.New("connection refused"))

	worker := newTestWorker(t, store)

	err := worker.handleDealEvent(ctx, stageChangedEvent("team-1", "deal-1"))
	require.Error(t, err)
}
