// Package eventbus carries deal events between the API and the workers.
package eventbus

import (
	"context"

	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/models"
)

// Event is any deal lifecycle event. TriggerType names the workflow trigger
// the event maps to.
type Event interface {
	GetType() events.EventType
	GetTeamID() string
	GetDealID() string
	TriggerType() models.TriggerType
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

type EventHandler func(ctx context.Context, event Event) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
