// Package add_tag implements the add_tag workflow action.
package add_tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

// Action appends a tag to the deal's tag set. Tags are a set: adding an
// existing tag changes nothing and skips the save.
type Action struct {
	Tag string

	deals persistence.DealRepository
}

func NewAction(config map[string]any, deals persistence.DealRepository) (*Action, error) {
	tag, _ := config["tag"].(string)
	if tag == "" {
		return nil, errors.New("add_tag action requires a 'tag'")
	}

	return &Action{
		Tag:   tag,
		deals: deals,
	}, nil
}

func (a *Action) Execute(ctx context.Context, execCtx protocol.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	deal := execCtx.Deal

	if deal.AddTag(a.Tag) {
		if err := a.deals.Save(ctx, deal); err != nil {
			return nil, fmt.Errorf("failed to persist deal %s: %w", deal.ID, err)
		}

		logger.InfoContext(ctx, "Tagged deal", "deal_id", deal.ID, "tag", a.Tag)
	}

	return map[string]any{
		"message": "Tag added",
		"tag":     a.Tag,
	}, nil
}
