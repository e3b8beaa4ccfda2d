package launcher

import (
	"context"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/Houeta/top20-launcher/internal/repository/sqlite"
)

type EnvInspector interface {
	// Inspect reports whether the virtual environment is absent, valid or corrupt.
	Inspect(ctx context.Context) (*models.Inspection, error)
}

type EnvProvisioner interface {
	// Provision creates the environment, upgrades pip and installs requirements, in that order.
	Provision(ctx context.Context) error
}

type ServerSpawner interface {
	// Start launches the web UI in the background and returns its PID.
	Start(ctx context.Context) (int, error)
}

type ReadinessProber interface {
	// WaitReady blocks until the URL serves a page or the probe budget runs out.
	WaitReady(ctx context.Context, url string) (string, error)
}

type BrowserOpener interface {
	Open(url string) error
}

type SessionCatalog interface {
	List(ctx context.Context) ([]models.Session, error)
}

// Ledger is the persistent record of provisioning runs and launches.
type Ledger interface {
	sqlite.StateRepository
	sqlite.LaunchRepository
}
