package change_stage

import (
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

type Factory struct {
	deals persistence.DealRepository
}

func NewFactory(deals persistence.DealRepository) *Factory {
	return &Factory{deals: deals}
}

func (f *Factory) ID() models.ActionType {
	return models.ActionChangeStage
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	action, err := NewAction(config, f.deals)
	if err != nil {
		return nil, err
	}

	return action, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"newStage": map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"newStage"},
		"additionalProperties": false,
	}
}
