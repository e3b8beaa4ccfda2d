package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/Houeta/top20-launcher/internal/repository"
)

// GetProvision returns the last recorded provisioning run.
func (r *Repository) GetProvision(ctx context.Context) (*models.ProvisionRecord, error) {
	const opn = "repository.sqlite.GetProvision"

	var (
		rec    models.ProvisionRecord
		status string
	)
	err := r.db.QueryRowContext(
		ctx,
		"SELECT env_dir, requirements_hash, status, updated_at FROM provision_state WHERE id = 1",
	).Scan(&rec.EnvDir, &rec.RequirementsHash, &status, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStateNotFound
		}
		return nil, fmt.Errorf("%s: failed to get provision state: %w", opn, err)
	}
	rec.Status = models.ProvisionStatus(status)

	return &rec, nil
}

// MarkProvisionStarted replaces the ledger row with a fresh "started" marker.
// The row stays in that status until MarkProvisionComplete, so an interrupted
// run is visible on the next start.
func (r *Repository) MarkProvisionStarted(ctx context.Context, envDir, requirementsHash string) error {
	const opn = "repository.sqlite.MarkProvisionStarted"

	_, err := r.db.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO provision_state (id, env_dir, requirements_hash, status, updated_at) VALUES (1, ?, ?, ?, ?)",
		envDir, requirementsHash, string(models.ProvisionStarted), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// MarkProvisionComplete flips the current run to "complete".
func (r *Repository) MarkProvisionComplete(ctx context.Context) error {
	const opn = "repository.sqlite.MarkProvisionComplete"

	res, err := r.db.ExecContext(
		ctx,
		"UPDATE provision_state SET status = ?, updated_at = ? WHERE id = 1",
		string(models.ProvisionComplete), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrStateNotFound)
	}

	return nil
}
