package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dealclarity/clarity/pkg/eventbus"
	"github.com/dealclarity/clarity/pkg/events"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
)

const (
	stageClosedWon  = "closed_won"
	stageClosedLost = "closed_lost"
)

// Deal ingests deal changes and publishes the lifecycle events that drive
// workflow triggering.
type Deal struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewDeal creates a new deal service.
func NewDeal(store persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Deal {
	return &Deal{
		persistence: store,
		publisher:   publisher,
		logger:      logger.With("module", "deal_service"),
	}
}

// FetchByID retrieves a deal by its ID.
func (d *Deal) FetchByID(ctx context.Context, id string) (*models.Deal, error) {
	return d.persistence.Deals().ByID(ctx, id)
}

// Ingest stores the deal and publishes the deal events implied by the
// change: created on first sight, otherwise updated plus stage, amount and
// closed events when those fields moved.
func (d *Deal) Ingest(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	if deal == nil {
		return nil, ErrDealNil
	}

	if strings.TrimSpace(deal.TeamID) == "" {
		return nil, ErrEmptyTeamID
	}

	var existing *models.Deal

	if deal.ID != "" {
		found, err := d.persistence.Deals().ByID(ctx, deal.ID)
		if err != nil && !persistence.IsDealNotFound(err) {
			return nil, fmt.Errorf("failed to fetch deal %s: %w", deal.ID, err)
		}

		existing = found
	}

	if err := d.persistence.Deals().Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	if err := d.publishChanges(ctx, existing, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

func (d *Deal) publishChanges(ctx context.Context, existing, deal *models.Deal) error {
	if existing == nil {
		return d.publish(ctx, deal, events.DealCreated{
			BaseEvent: events.NewBaseEvent(events.DealCreatedEvent, deal.TeamID, deal.ID),
		})
	}

	if err := d.publish(ctx, deal, events.DealUpdated{
		BaseEvent:     events.NewBaseEvent(events.DealUpdatedEvent, deal.TeamID, deal.ID),
		ChangedFields: changedFields(existing.Fields, deal.Fields),
	}); err != nil {
		return err
	}

	previousStage, newStage := existing.Stage(), deal.Stage()
	if previousStage != newStage {
		if err := d.publish(ctx, deal, events.DealStageChanged{
			BaseEvent:     events.NewBaseEvent(events.DealStageChangedEvent, deal.TeamID, deal.ID),
			PreviousStage: previousStage,
			NewStage:      newStage,
		}); err != nil {
			return err
		}

		if newStage == stageClosedWon || newStage == stageClosedLost {
			if err := d.publish(ctx, deal, events.DealClosed{
				BaseEvent: events.NewBaseEvent(events.DealClosedEvent, deal.TeamID, deal.ID),
				Won:       newStage == stageClosedWon,
			}); err != nil {
				return err
			}
		}
	}

	previousAmount, newAmount := amountOf(existing), amountOf(deal)
	if previousAmount != newAmount {
		if err := d.publish(ctx, deal, events.DealAmountChanged{
			BaseEvent:      events.NewBaseEvent(events.DealAmountChangedEvent, deal.TeamID, deal.ID),
			PreviousAmount: previousAmount,
			NewAmount:      newAmount,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (d *Deal) publish(ctx context.Context, deal *models.Deal, event eventbus.Event) error {
	if err := d.publisher.Publish(ctx, deal.ID, event); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.GetType(), err)
	}

	d.logger.DebugContext(ctx, "Published deal event", "type", event.GetType(), "deal_id", deal.ID)

	return nil
}

func changedFields(before, after map[string]any) []string {
	seen := make(map[string]struct{}, len(before)+len(after))
	for key := range before {
		seen[key] = struct{}{}
	}

	for key := range after {
		seen[key] = struct{}{}
	}

	var changed []string

	for key := range seen {
		if fmt.Sprintf("%v", before[key]) != fmt.Sprintf("%v", after[key]) {
			changed = append(changed, key)
		}
	}

	sort.Strings(changed)

	return changed
}

func amountOf(deal *models.Deal) float64 {
	switch amount := deal.Fields["amount"].(type) {
	case float64:
		return amount
	case float32:
		return float64(amount)
	case int:
		return float64(amount)
	case int64:
		return float64(amount)
	default:
		return 0
	}
}
