package sqlite

import (
	"context"

	"github.com/Houeta/top20-launcher/internal/models"
)

// StateRepository tracks provisioning progress of the virtual environment.
type StateRepository interface {
	GetProvision(ctx context.Context) (*models.ProvisionRecord, error)
	MarkProvisionStarted(ctx context.Context, envDir, requirementsHash string) error
	MarkProvisionComplete(ctx context.Context) error
}

// LaunchRepository keeps the history of detached server starts.
type LaunchRepository interface {
	RecordLaunch(ctx context.Context, rec *models.LaunchRecord) (int64, error)
	MarkReady(ctx context.Context, id int64) error
	RecentLaunches(ctx context.Context, limit int) ([]models.LaunchRecord, error)
}
