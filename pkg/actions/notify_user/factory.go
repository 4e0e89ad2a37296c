package notify_user

import (
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/protocol"
)

type Factory struct {
	notifier protocol.Notifier
}

func NewFactory(notifier protocol.Notifier) *Factory {
	return &Factory{notifier: notifier}
}

func (f *Factory) ID() models.ActionType {
	return models.ActionNotifyUser
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	action, err := NewAction(config, f.notifier)
	if err != nil {
		return nil, err
	}

	return action, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId":  map[string]any{"type": "string", "minLength": 1},
			"title":   map[string]any{"type": "string"},
			"message": map[string]any{"type": "string"},
		},
		"required":             []any{"userId"},
		"additionalProperties": false,
	}
}
