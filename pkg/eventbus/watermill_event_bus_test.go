package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealclarity/clarity/pkg/channels/gochannel"
	"github.com/dealclarity/clarity/pkg/eventbus"
	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/models"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() {
		_ = bus.Close()
	})

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan eventbus.Event, 1)

	require.NoError(t, bus.Handle(events.DealStageChangedEvent, func(_ context.Context, event eventbus.Event) error {
		received <- event

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	event := events.DealStageChanged{
		BaseEvent:     events.NewBaseEvent(events.DealStageChangedEvent, "team-1", "deal-1"),
		PreviousStage: "qualification",
		NewStage:      "negotiation",
	}

	require.NoError(t, bus.Publish(ctx, "deal-1", event))

	select {
	case got := <-received:
		assert.Equal(t, events.DealStageChangedEvent, got.GetType())
		assert.Equal(t, models.TriggerDealStageChanged, got.TriggerType())
		assert.Equal(t, "deal-1", got.GetDealID())
		assert.Equal(t, "team-1", got.GetTeamID())

		stageChanged, ok := got.(*events.DealStageChanged)
		require.True(t, ok)
		assert.Equal(t, "negotiation", stageChanged.NewStage)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledEventTypeIsAcked(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	event := events.DealCreated{
		BaseEvent: events.NewBaseEvent(events.DealCreatedEvent, "team-1", "deal-1"),
	}

	require.NoError(t, bus.Publish(ctx, "deal-1", event))
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
