// Package update_field implements the update_field workflow action.
package update_field

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/dotpath"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

// Action sets a dot-path field on the deal and persists it. Intermediate
// nested objects are created as needed.
type Action struct {
	Field string
	Value any

	deals persistence.DealRepository
}

func NewAction(config map[string]any, deals persistence.DealRepository) (*Action, error) {
	field, _ := config["field"].(string)
	if field == "" {
		return nil, errors.New("update_field action requires a 'field' path")
	}

	return &Action{
		Field: field,
		Value: config["value"],
		deals: deals,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	deal := execCtx.Deal

	if deal.Fields == nil {
		deal.Fields = make(map[string]any)
	}

	dotpath.Set(deal.Fields, a.Field, a.Value)

	if err := a.deals.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to persist deal %s: %w", deal.ID, err)
	}

	logger.InfoContext(ctx, "Updated deal field", "deal_id", deal.ID, "field", a.Field)

	return map[string]any{
		"message": "Field updated",
		"field":   a.Field,
		"value":   a.Value,
	}, nil
}
