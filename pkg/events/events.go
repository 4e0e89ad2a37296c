// Package events defines the deal lifecycle events that drive workflow
// automation.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/dealclarity/clarity/pkg/models"
)

type EventType string

// Topic is the single stream all deal events flow through.
const Topic = "clarity.deal.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	DealCreatedEvent       EventType = "deal.created"
	DealUpdatedEvent       EventType = "deal.updated"
	DealStageChangedEvent  EventType = "deal.stage_changed"
	DealAmountChangedEvent EventType = "deal.amount_changed"
	DealClosedEvent        EventType = "deal.closed"
	ContactCreatedEvent    EventType = "contact.created"
	ContactUpdatedEvent    EventType = "contact.updated"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	TeamID    string         `json:"team_id"`
	DealID    string         `json:"deal_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, teamID, dealID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		TeamID:    teamID,
		DealID:    dealID,
	}
}

func (b BaseEvent) GetTeamID() string {
	return b.TeamID
}

func (b BaseEvent) GetDealID() string {
	return b.DealID
}

type DealCreated struct {
	BaseEvent
}

func (e DealCreated) GetType() EventType {
	return DealCreatedEvent
}

func (e DealCreated) TriggerType() models.TriggerType {
	return models.TriggerDealCreated
}

type DealUpdated struct {
	BaseEvent

	ChangedFields []string `json:"changed_fields,omitempty"`
}

func (e DealUpdated) GetType() EventType {
	return DealUpdatedEvent
}

func (e DealUpdated) TriggerType() models.TriggerType {
	return models.TriggerDealUpdated
}

type DealStageChanged struct {
	BaseEvent

	PreviousStage string `json:"previous_stage"`
	NewStage      string `json:"new_stage"`
}

func (e DealStageChanged) GetType() EventType {
	return DealStageChangedEvent
}

func (e DealStageChanged) TriggerType() models.TriggerType {
	return models.TriggerDealStageChanged
}

type DealAmountChanged struct {
	BaseEvent

	PreviousAmount float64 `json:"previous_amount"`
	NewAmount      float64 `json:"new_amount"`
}

func (e DealAmountChanged) GetType() EventType {
	return DealAmountChangedEvent
}

func (e DealAmountChanged) TriggerType() models.TriggerType {
	return models.TriggerDealAmountChanged
}

type DealClosed struct {
	BaseEvent

	Won bool `json:"won"`
}

func (e DealClosed) GetType() EventType {
	return DealClosedEvent
}

func (e DealClosed) TriggerType() models.TriggerType {
	return models.TriggerDealClosed
}

type ContactCreated struct {
	BaseEvent

	ContactID string `json:"contact_id"`
}

func (e ContactCreated) GetType() EventType {
	return ContactCreatedEvent
}

func (e ContactCreated) TriggerType() models.TriggerType {
	return models.TriggerContactCreated
}

type ContactUpdated struct {
	BaseEvent

	ContactID string `json:"contact_id"`
}

func (e ContactUpdated) GetType() EventType {
	return ContactUpdatedEvent
}

func (e ContactUpdated) TriggerType() models.TriggerType {
	return models.TriggerContactUpdated
}
