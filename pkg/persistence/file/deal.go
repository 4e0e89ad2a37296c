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
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/google/uuid"
)

// DealRepository stores one JSON file per deal under <root>/deals.
type DealRepository struct {
	store *Persistence
}

func (r *DealRepository) dir() string {
	return filepath.Join(r.store.root, "deals")
}

func (r *DealRepository) path(id string) string {
	return filepath.Join(r.dir(), id+".json")
}

func (r *DealRepository) List(ctx context.Context, teamID string) ([]*models.Deal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, err := os.ReadDir(r.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Deal{}, nil
		}

		return nil, fmt.Errorf("failed to list deal files: %w", err)
	}

	deals := make([]*models.Deal, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir(), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read deal file %s: %w", entry.Name(), err)
		}

		var deal models.Deal
		if err := json.Unmarshal(data, &deal); err != nil {
			return nil, fmt.Errorf("failed to decode deal file %s: %w", entry.Name(), err)
		}

		if teamID != "" && deal.TeamID != teamID {
			continue
		}

		deals = append(deals, &deal)
	}

	return deals, nil
}

func (r *DealRepository) ByID(ctx context.Context, id string) (*models.Deal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.ErrDealNotFound
		}

		return nil, fmt.Errorf("failed to read deal %s: %w", id, err)
	}

	var deal models.Deal
	if err := json.Unmarshal(data, &deal); err != nil {
		return nil, fmt.Errorf("failed to decode deal %s: %w", id, err)
	}

	return &deal, nil
}

func (r *DealRepository) Save(ctx context.Context, deal *models.Deal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}

	deal.UpdatedAt = now

	if deal.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate deal ID: %w", err)
		}

		deal.ID = id.String()
	}

	if err := os.MkdirAll(r.dir(), fs.FileMode(0o755)); err != nil {
		return fmt.Errorf("failed to create deals directory: %w", err)
	}

	data, err := json.MarshalIndent(deal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deal %s: %w", deal.ID, err)
	}

	if err := os.WriteFile(r.path(deal.ID), data, fs.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write deal %s: %w", deal.ID, err)
	}

	return nil
}
