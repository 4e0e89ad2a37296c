// Package main provides the event-driven workflow worker.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dealclarity/clarity/pkg/eventbus"
	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/otelhelper"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/runner"
)

// Worker consumes deal events and runs the matching workflows for each.
type Worker struct {
	id       string
	logger   *slog.Logger
	runner   *runner.Runner
	eventBus eventbus.EventBus
	tracer   trace.Tracer
}

func NewWorker(
	id string,
	workflowRunner *runner.Runner,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		id:       id,
		logger:   logger.With("module", "clarity-worker", "worker_id", id),
		runner:   workflowRunner,
		eventBus: eventBus,
		tracer:   tracer,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Starting worker")

	dealEventTypes := []events.EventType{
		events.DealCreatedEvent,
		events.DealUpdatedEvent,
		events.DealStageChangedEvent,
		events.DealAmountChangedEvent,
		events.DealClosedEvent,
		events.ContactCreatedEvent,
		events.ContactUpdatedEvent,
	}

	for _, eventType := range dealEventTypes {
		if err := w.eventBus.Handle(eventType, w.handleDealEvent); err != nil {
			return err
		}
	}

	if err := w.eventBus.Subscribe(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	w.logger.InfoContext(ctx, "Worker started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	w.logger.InfoContext(ctx, "Shutting down worker...")

	return nil
}

func (w *Worker) handleDealEvent(ctx context.Context, event eventbus.Event) error {
	logger := w.logger.With(
		"event_type", event.GetType(),
		"deal_id", event.GetDealID(),
		"team_id", event.GetTeamID(),
	)
	logger.InfoContext(ctx, "Processing deal event")

	ctx, span := otelhelper.StartSpan(ctx, w.tracer, "worker.handle_deal_event",
		attribute.String(otelhelper.TriggerTypeKey, string(event.TriggerType())),
		attribute.String(otelhelper.DealIDKey, event.GetDealID()),
		attribute.String(otelhelper.TeamIDKey, event.GetTeamID()),
	)
	defer span.End()

	err := w.runner.Trigger(ctx, event.TriggerType(), event.GetDealID(), event.GetTeamID())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to run workflows for deal event", "error", err)
		otelhelper.SetError(span, err)

		// A missing deal will not appear on redelivery. Ack and drop the
		// event instead of letting the bus retry it forever.
		if persistence.IsDealNotFound(err) {
			return nil
		}

		return err
	}

	return nil
}
