package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/Houeta/top20-launcher/internal/venv"
)

// ErrProvisioning wraps every failure that must stop the launch and exit non-zero.
var ErrProvisioning = errors.New("provisioning failed")

// Options are the fixed parameters of one launch.
type Options struct {
	URL          string
	Port         int
	Requirements string
	OpenBrowser  bool
}

// Launcher is an orchestrator that performs the whole bootstrap sequence once.
type Launcher struct {
	log         *slog.Logger
	inspector   EnvInspector
	provisioner EnvProvisioner
	spawner     ServerSpawner
	prober      ReadinessProber
	opener      BrowserOpener
	sessions    SessionCatalog
	ledger      Ledger
	opts        Options
	now         func() time.Time
}

// Deps groups the collaborators of a Launcher.
type Deps struct {
	Inspector   EnvInspector
	Provisioner EnvProvisioner
	Spawner     ServerSpawner
	Prober      ReadinessProber
	Opener      BrowserOpener
	Sessions    SessionCatalog
	Ledger      Ledger
}

// NewLauncher creates a new Launcher instance.
func NewLauncher(log *slog.Logger, deps Deps, opts Options) *Launcher {
	return &Launcher{
		log:         log,
		inspector:   deps.Inspector,
		provisioner: deps.Provisioner,
		spawner:     deps.Spawner,
		prober:      deps.Prober,
		opener:      deps.Opener,
		sessions:    deps.Sessions,
		ledger:      deps.Ledger,
		opts:        opts,
		now:         time.Now,
	}
}

// Run provisions the environment if needed, starts the server in the
// background and opens the browser. Only provisioning problems are
// returned; anything after the spawn is logged and swallowed.
func (l *Launcher) Run(ctx context.Context) error {
	const opn = "launcher.Run"
	log := l.log.With("op", opn)

	// 1. Inspect the environment.
	insp, err := l.inspector.Inspect(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", opn, ErrProvisioning, err)
	}
	log.InfoContext(ctx, "Inspected environment", "state", insp.State.String(), "dir", insp.Dir)

	// 2. Provision only when there is nothing there.
	switch insp.State {
	case models.EnvAbsent:
		log.InfoContext(ctx, "Environment not found. Creating it and installing requirements...")
		if err = l.provisioner.Provision(ctx); err != nil {
			return fmt.Errorf("%s: %w: %w", opn, ErrProvisioning, err)
		}
	case models.EnvCorrupt:
		return fmt.Errorf("%s: %w: %w: %s; delete %s and run the launcher again",
			opn, ErrProvisioning, venv.ErrCorrupt, insp.Reason, insp.Dir)
	case models.EnvValid:
		l.warnOnDrift(ctx)
	}

	// 3. Saved searches and the previous launch are informational only.
	l.logSessions(ctx)
	l.logPreviousLaunch(ctx)

	// 4. Fire and forget.
	launch := &models.LaunchRecord{Port: l.opts.Port, URL: l.opts.URL, StartedAt: l.now()}
	pid, err := l.spawner.Start(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to start the server", "error", err)
		return nil
	}
	launch.PID = pid

	// 5. Record the launch.
	id, err := l.ledger.RecordLaunch(ctx, launch)
	if err != nil {
		log.WarnContext(ctx, "failed to record launch", "error", err)
	}

	// 6. Wait for the server to listen.
	if _, err = l.prober.WaitReady(ctx, l.opts.URL); err != nil {
		log.WarnContext(ctx, "server did not report ready; opening the browser anyway", "error", err)
	} else if id != 0 {
		if err = l.ledger.MarkReady(ctx, id); err != nil {
			log.WarnContext(ctx, "failed to mark launch ready", "error", err)
		}
	}

	// 7. Open the browser.
	if l.opts.OpenBrowser {
		if err = l.opener.Open(l.opts.URL); err != nil {
			log.WarnContext(ctx, "failed to open the browser", "url", l.opts.URL, "error", err)
		}
	}

	log.InfoContext(ctx, "Launch issued. The server keeps running after this window closes.",
		"pid", pid, "url", l.opts.URL)

	return nil
}

// warnOnDrift flags requirements that changed since the environment was built.
// Nothing is reinstalled.
func (l *Launcher) warnOnDrift(ctx context.Context) {
	rec, err := l.ledger.GetProvision(ctx)
	if err != nil {
		l.log.DebugContext(ctx, "no provisioning record to compare against", "error", err)
		return
	}

	hash, err := venv.RequirementsHash(l.opts.Requirements)
	if err != nil {
		l.log.DebugContext(ctx, "cannot hash requirements", "error", err)
		return
	}

	if hash != rec.RequirementsHash {
		l.log.WarnContext(ctx, "requirements changed since the environment was provisioned; delete it to reinstall",
			"requirements", l.opts.Requirements, "env", rec.EnvDir)
	}
}

func (l *Launcher) logSessions(ctx context.Context) {
	list, err := l.sessions.List(ctx)
	if err != nil {
		l.log.WarnContext(ctx, "failed to list saved searches", "error", err)
		return
	}

	l.log.InfoContext(ctx, "Saved searches found", "count", len(list))
	if len(list) > 0 {
		l.log.DebugContext(ctx, "Latest saved search", "id", list[0].ID, "name", list[0].Meta.Name)
	}
}

// logPreviousLaunch helps to spot a server left over from an earlier run on the same port.
func (l *Launcher) logPreviousLaunch(ctx context.Context) {
	launches, err := l.ledger.RecentLaunches(ctx, 1)
	if err != nil {
		l.log.WarnContext(ctx, "failed to read launch history", "error", err)
		return
	}
	if len(launches) == 0 {
		return
	}

	prev := launches[0]
	l.log.InfoContext(ctx, "Previous launch", "pid", prev.PID, "port", prev.Port,
		"ready", prev.Ready, "started_at", prev.StartedAt.Format(time.RFC3339))
}
