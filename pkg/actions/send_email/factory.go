package send_email

import (
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/protocol"
)

type Factory struct {
	mailer protocol.Mailer
}

func NewFactory(mailer protocol.Mailer) *Factory {
	return &Factory{mailer: mailer}
}

func (f *Factory) ID() models.ActionType {
	return models.ActionSendEmail
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	action, err := NewAction(config, f.mailer)
	if err != nil {
		return nil, err
	}

	return action, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"to":       map[string]any{"type": "string", "minLength": 1},
			"subject":  map[string]any{"type": "string"},
			"template": map[string]any{"type": "string"},
			"variables": map[string]any{
				"type": "object",
			},
		},
		"required":             []any{"to"},
		"additionalProperties": false,
	}
}
