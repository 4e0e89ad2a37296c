package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealclarity/clarity/pkg/eventbus"
	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence/file"
	"github.com/dealclarity/clarity/pkg/services"
)

type capturePublisher struct {
	published []eventbus.Event
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.published = append(p.published, event)

	return nil
}

func (p *capturePublisher) types() []events.EventType {
	published := make([]events.EventType, 0, len(p.published))
	for _, event := range p.published {
		published = append(published, event.GetType())
	}

	return published
}

func newDealService(t *testing.T) (*services.Deal, *capturePublisher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := file.NewPersistence(t.TempDir())
	publisher := &capturePublisher{}

	return services.NewDeal(store, publisher, logger), publisher
}

func TestDealService_Ingest_NewDealPublishesCreated(t *testing.T) {
	svc, publisher := newDealService(t)

	deal, err := svc.Ingest(context.Background(), &models.Deal{
		TeamID: "team-1",
		Fields: map[string]any{"name": "Acme renewal", "stage": "prospecting"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, deal.ID)

	assert.Equal(t, []events.EventType{events.DealCreatedEvent}, publisher.types())
}

func TestDealService_Ingest_StageChange(t *testing.T) {
	svc, publisher := newDealService(t)
	ctx := context.Background()

	deal, err := svc.Ingest(ctx, &models.Deal{
		TeamID: "team-1",
		Fields: map[string]any{"stage": "proposal", "amount": 1000},
	})
	require.NoError(t, err)

	publisher.published = nil

	deal.Fields["stage"] = "negotiation"

	_, err = svc.Ingest(ctx, deal)
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.DealUpdatedEvent,
		events.DealStageChangedEvent,
	}, publisher.types())

	stageChanged := publisher.published[1].(events.DealStageChanged)
	assert.Equal(t, "proposal", stageChanged.PreviousStage)
	assert.Equal(t, "negotiation", stageChanged.NewStage)
}

func TestDealService_Ingest_ClosedWon(t *testing.T) {
	svc, publisher := newDealService(t)
	ctx := context.Background()

	deal, err := svc.Ingest(ctx, &models.Deal{
		TeamID: "team-1",
		Fields: map[string]any{"stage": "negotiation"},
	})
	require.NoError(t, err)

	publisher.published = nil

	deal.Fields["stage"] = "closed_won"

	_, err = svc.Ingest(ctx, deal)
	require.NoError(t, err)

	types := publisher.types()
	assert.Contains(t, types, events.DealStageChangedEvent)
	assert.Contains(t, types, events.DealClosedEvent)

	for _, event := range publisher.published {
		if closed, ok := event.(events.DealClosed); ok {
			assert.True(t, closed.Won)
		}
	}
}

func TestDealService_Ingest_AmountChange(t *testing.T) {
	svc, publisher := newDealService(t)
	ctx := context.Background()

	deal, err := svc.Ingest(ctx, &models.Deal{
		TeamID: "team-1",
		Fields: map[string]any{"stage": "proposal", "amount": 1000},
	})
	require.NoError(t, err)

	publisher.published = nil

	deal.Fields["amount"] = 2500

	_, err = svc.Ingest(ctx, deal)
	require.NoError(t, err)

	require.Equal(t, []events.EventType{
		events.DealUpdatedEvent,
		events.DealAmountChangedEvent,
	}, publisher.types())

	amountChanged := publisher.published[1].(events.DealAmountChanged)
	assert.InDelta(t, 1000, amountChanged.PreviousAmount, 0.001)
	assert.InDelta(t, 2500, amountChanged.NewAmount, 0.001)

	updated := publisher.published[0].(events.DealUpdated)
	assert.Equal(t, []string{"amount"}, updated.ChangedFields)
}

func TestDealService_Ingest_Validation(t *testing.T) {
	svc, _ := newDealService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, nil)
	assert.True(t, services.IsValidationError(err))

	_, err = svc.Ingest(ctx, &models.Deal{Fields: map[string]any{}})
	assert.True(t, services.IsValidationError(err))
}
