package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/google/uuid"
)

// DealRepository handles deal-related database operations.
type DealRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDealRepository creates a new deal repository.
func NewDealRepository(db *sql.DB, logger *slog.Logger) *DealRepository {
	return &DealRepository{db: db, logger: logger}
}

// List returns the team's deals, or every deal when teamID is empty.
func (r *DealRepository) List(ctx context.Context, teamID string) ([]*models.Deal, error) {
	query := `
		SELECT id, team_id, fields, created_at, updated_at
		FROM deals
	`

	var args []any

	if teamID != "" {
		query += " WHERE team_id = $1"

		args = append(args, teamID)
	}

	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Warn("failed to close rows", "error", err)
		}
	}()

	var deals []*models.Deal

	for rows.Next() {
		var (
			deal   models.Deal
			fields []byte
		)

		if err := rows.Scan(&deal.ID, &deal.TeamID, &fields, &deal.CreatedAt, &deal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}

		if err := json.Unmarshal(fields, &deal.Fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deal fields: %w", err)
		}

		deals = append(deals, &deal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deals: %w", err)
	}

	return deals, nil
}

// ByID returns the deal with the given id.
func (r *DealRepository) ByID(ctx context.Context, id string) (*models.Deal, error) {
	query := `
		SELECT id, team_id, fields, created_at, updated_at
		FROM deals
		WHERE id = $1
	`

	var (
		deal   models.Deal
		fields []byte
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&deal.ID,
		&deal.TeamID,
		&fields,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrDealNotFound
		}

		return nil, fmt.Errorf("failed to query deal %s: %w", id, err)
	}

	if err := json.Unmarshal(fields, &deal.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal fields: %w", err)
	}

	return &deal, nil
}

// Save upserts the deal.
func (r *DealRepository) Save(ctx context.Context, deal *models.Deal) error {
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

	fields, err := json.Marshal(orEmptyMap(deal.Fields))
	if err != nil {
		return fmt.Errorf("failed to marshal deal fields: %w", err)
	}

	query := `
		INSERT INTO deals (id, team_id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			fields = EXCLUDED.fields,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		deal.ID,
		deal.TeamID,
		fields,
		deal.CreatedAt,
		deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deal %s: %w", deal.ID, err)
	}

	return nil
}
