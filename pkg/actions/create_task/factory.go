package create_task

import (
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

type Factory struct {
	tasks persistence.TaskRepository
}

func NewFactory(tasks persistence.TaskRepository) *Factory {
	return &Factory{tasks: tasks}
}

func (f *Factory) ID() models.ActionType {
	return models.ActionCreateTask
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	action, err := NewAction(config, f.tasks)
	if err != nil {
		return nil, err
	}

	return action, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"assigneeId":  map[string]any{"type": "string"},
			"dueInDays":   map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"title"},
		"additionalProperties": false,
	}
}
