package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/google/uuid"
)

// TaskRepository stores one JSON file per task under <root>/tasks.
type TaskRepository struct {
	store *Persistence
}

func (r *TaskRepository) dir() string {
	return filepath.Join(r.store.root, "tasks")
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if task.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate task ID: %w", err)
		}

		task.ID = id.String()
	}

	if err := os.MkdirAll(r.dir(), fs.FileMode(0o755)); err != nil {
		return fmt.Errorf("failed to create tasks directory: %w", err)
	}

	data, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
	}

	path := filepath.Join(r.dir(), task.ID+".json")
	if err := os.WriteFile(path, data, fs.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write task %s: %w", task.ID, err)
	}

	return nil
}
