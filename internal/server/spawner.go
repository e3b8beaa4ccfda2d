package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const (
	logDirPerm  = 0o755
	logFilePerm = 0o644
)

// Spawner starts the web UI as a detached child and forgets about it.
// There is no join, no restart and no health tracking after Start returns.
type Spawner struct {
	log      *slog.Logger
	rootDir  string
	python   string
	appEntry string
	port     int
	logPath  string
}

func NewSpawner(log *slog.Logger, rootDir, python, appEntry string, port int, logPath string) *Spawner {
	return &Spawner{
		log:      log,
		rootDir:  rootDir,
		python:   python,
		appEntry: appEntry,
		port:     port,
		logPath:  logPath,
	}
}

// Args returns the interpreter arguments used to serve the app headless on the fixed port.
func (s *Spawner) Args() []string {
	return []string{
		"-m", "streamlit", "run", s.appEntry,
		"--server.port", strconv.Itoa(s.port),
		"--server.headless", "true",
		"--browser.gatherUsageStats", "false",
	}
}

// Start launches the server and returns its PID without waiting for it.
func (s *Spawner) Start(ctx context.Context) (int, error) {
	const opn = "server.Spawner.Start"

	if err := os.MkdirAll(filepath.Dir(s.logPath), logDirPerm); err != nil {
		return 0, fmt.Errorf("%s: failed to create log directory: %w", opn, err)
	}

	logFile, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to open server log: %w", opn, err)
	}
	// The child holds its own handle once started.
	defer logFile.Close()

	// Not CommandContext: the server must outlive the launcher.
	cmd := exec.Command(s.python, s.Args()...) //nolint:gosec // interpreter path comes from local config
	cmd.Dir = s.rootDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err = cmd.Start(); err != nil {
		return 0, fmt.Errorf("%s: failed to start %s: %w", opn, s.python, err)
	}

	pid := cmd.Process.Pid
	if err = cmd.Process.Release(); err != nil {
		s.log.WarnContext(ctx, "failed to release server process handle", "op", opn, "pid", pid, "error", err)
	}

	s.log.InfoContext(ctx, "Server started in background", "op", opn, "pid", pid, "port", s.port, "log", s.logPath)

	return pid, nil
}
