package sqlite

import (
	"context"
	"fmt"

	"github.com/Houeta/top20-launcher/internal/models"
)

// RecordLaunch stores a detached server start and returns its row id.
func (r *Repository) RecordLaunch(ctx context.Context, rec *models.LaunchRecord) (int64, error) {
	const opn = "repository.sqlite.RecordLaunch"

	res, err := r.db.ExecContext(
		ctx,
		"INSERT INTO launches (pid, port, url, ready, started_at) VALUES (?, ?, ?, ?, ?)",
		rec.PID, rec.Port, rec.URL, rec.Ready, rec.StartedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get inserted id: %w", opn, err)
	}

	return id, nil
}

// MarkReady records that the server answered the readiness probe.
func (r *Repository) MarkReady(ctx context.Context, id int64) error {
	const opn = "repository.sqlite.MarkReady"

	_, err := r.db.ExecContext(ctx, "UPDATE launches SET ready = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// RecentLaunches returns up to limit launches, newest first.
func (r *Repository) RecentLaunches(ctx context.Context, limit int) ([]models.LaunchRecord, error) {
	const opn = "repository.sqlite.RecentLaunches"

	rows, err := r.db.QueryContext(
		ctx,
		"SELECT id, pid, port, url, ready, started_at FROM launches ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var launches []models.LaunchRecord
	for rows.Next() {
		var rec models.LaunchRecord
		if err = rows.Scan(&rec.ID, &rec.PID, &rec.Port, &rec.URL, &rec.Ready, &rec.StartedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan launch: %w", opn, err)
		}
		launches = append(launches, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return launches, nil
}
