package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/top20-launcher/internal/browser"
	"github.com/Houeta/top20-launcher/internal/config"
	"github.com/Houeta/top20-launcher/internal/readiness"
	"github.com/Houeta/top20-launcher/internal/repository/sqlite"
	"github.com/Houeta/top20-launcher/internal/server"
	"github.com/Houeta/top20-launcher/internal/services/launcher"
	"github.com/Houeta/top20-launcher/internal/sessions"
	"github.com/Houeta/top20-launcher/internal/venv"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	os.Exit(run(os.Stdin, os.Stderr))
}

// run performs one launch and returns the process exit status.
func run(stdin io.Reader, stderr io.Writer) int {
	// Ctrl+C during pip install should stop the child, not leave it orphaned.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		reportFailure(stdin, stderr, "Launcher failed", err, true)
		return 1
	}

	logger := setupLogger(cfg.Env)

	// Everything below is relative to the launcher's own directory.
	if err = os.Chdir(cfg.RootDir); err != nil {
		reportFailure(stdin, stderr, "Launcher failed", err, cfg.Behavior.PauseOnError)
		return 1
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.Storage.StatePath)
	if err != nil {
		reportFailure(stdin, stderr, "Launcher failed", err, cfg.Behavior.PauseOnError)
		return 1
	}
	defer repo.Close()

	app := launcher.NewLauncher(logger, launcher.Deps{
		Inspector: venv.NewInspector(logger, repo, cfg.Python.VenvDir),
		Provisioner: venv.NewProvisioner(
			logger,
			venv.NewExecRunner(logger, os.Stdout),
			repo,
			cfg.RootDir,
			cfg.Python.Bootstrap,
			cfg.Python.VenvDir,
			cfg.Python.Requirements,
		),
		Spawner: server.NewSpawner(
			logger,
			cfg.RootDir,
			venv.PythonPath(cfg.Python.VenvDir),
			cfg.Server.AppEntry,
			cfg.Server.Port,
			cfg.Server.LogPath,
		),
		Prober:   readiness.NewProber(logger, cfg.Ready.Delay, cfg.Ready.Timeout, cfg.Ready.Interval, cfg.Ready.Attempts),
		Opener:   browser.NewOpener(logger),
		Sessions: sessions.NewStore(logger, cfg.Storage.SessionsDir),
		Ledger:   repo,
	}, launcher.Options{
		URL:          cfg.Server.URL(),
		Port:         cfg.Server.Port,
		Requirements: cfg.Python.Requirements,
		OpenBrowser:  cfg.Behavior.OpenBrowser,
	})

	logger.InfoContext(ctx, "Launcher started", "root", cfg.RootDir, "url", cfg.Server.URL())

	if err = app.Run(ctx); err != nil {
		title := "Launcher failed"
		if errors.Is(err, launcher.ErrProvisioning) {
			title = "Provisioning failed"
		}
		reportFailure(stdin, stderr, title, err, cfg.Behavior.PauseOnError)
		return 1
	}

	return 0
}

// loadConfig turns a configuration panic into an error so the console can stay open.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = rErr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	return config.MustLoad(), nil
}

// reportFailure prints a visible message and, if asked, holds the console
// open until the user presses Enter.
func reportFailure(stdin io.Reader, stderr io.Writer, title string, err error, pause bool) {
	fmt.Fprintf(stderr, "\n%s: %v\n", title, err)
	if errors.Is(err, venv.ErrStepFailed) {
		fmt.Fprintln(stderr, "Check your network connection and that Python is installed, then run the launcher again.")
	}

	if !pause {
		return
	}

	fmt.Fprint(stderr, "Press Enter to close this window...")
	_, _ = bufio.NewReader(stdin).ReadString('\n')
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
