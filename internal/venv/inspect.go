package venv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/Houeta/top20-launcher/internal/repository"
	"github.com/Houeta/top20-launcher/internal/repository/sqlite"
)

// ErrCorrupt marks an environment directory that exists but cannot be used.
var ErrCorrupt = errors.New("virtual environment is corrupt")

// Inspector decides whether the environment is absent, usable or broken.
type Inspector struct {
	log  *slog.Logger
	repo sqlite.StateRepository
	dir  string
}

func NewInspector(log *slog.Logger, repo sqlite.StateRepository, dir string) *Inspector {
	return &Inspector{log: log, repo: repo, dir: dir}
}

// PythonPath returns the interpreter location inside a venv directory.
func PythonPath(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

// Inspect classifies the environment directory. An existing environment
// with no ledger entry is treated as valid: it was provisioned by hand or
// by an older launcher.
func (i *Inspector) Inspect(ctx context.Context) (*models.Inspection, error) {
	const opn = "venv.Inspector.Inspect"
	log := i.log.With("op", opn, "dir", i.dir)

	res := &models.Inspection{Dir: i.dir, Python: PythonPath(i.dir)}

	info, err := os.Stat(i.dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.State = models.EnvAbsent
		log.DebugContext(ctx, "Environment directory not found")
		return res, nil
	case err != nil:
		return nil, fmt.Errorf("%s: failed to stat environment: %w", opn, err)
	case !info.IsDir():
		return corrupt(res, "path exists but is not a directory"), nil
	}

	if _, err = os.Stat(res.Python); err != nil {
		return corrupt(res, "interpreter "+res.Python+" is missing"), nil
	}

	rec, err := i.repo.GetProvision(ctx)
	if err != nil && !errors.Is(err, repository.ErrStateNotFound) {
		return nil, fmt.Errorf("%s: failed to read provision state: %w", opn, err)
	}
	if err == nil && sameDir(rec.EnvDir, i.dir) && rec.Status == models.ProvisionStarted {
		return corrupt(res, "previous provisioning did not finish"), nil
	}

	res.State = models.EnvValid
	log.DebugContext(ctx, "Environment is usable")

	return res, nil
}

func corrupt(res *models.Inspection, reason string) *models.Inspection {
	res.State = models.EnvCorrupt
	res.Reason = reason
	return res
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
