package slack_notification

import (
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ID() models.ActionType {
	return models.ActionSlackNotification
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	action, err := NewAction(config)
	if err != nil {
		return nil, err
	}

	return action, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"webhookUrl": map[string]any{"type": "string", "minLength": 1},
			"message":    map[string]any{"type": "string"},
			"channel":    map[string]any{"type": "string"},
		},
		"required":             []any{"webhookUrl"},
		"additionalProperties": false,
	}
}
