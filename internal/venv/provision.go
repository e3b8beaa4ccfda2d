package venv

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Houeta/top20-launcher/internal/repository/sqlite"
)

var (
	ErrStepFailed          = errors.New("provisioning step failed")
	ErrMissingRequirements = errors.New("requirements file is missing")
)

// Step is one command of the provisioning sequence.
type Step struct {
	Name string
	Cmd  string
	Args []string
}

// Provisioner creates the environment and installs the declared dependencies.
type Provisioner struct {
	log          *slog.Logger
	runner       Runner
	repo         sqlite.StateRepository
	rootDir      string
	bootstrap    string
	dir          string
	requirements string
}

func NewProvisioner(
	log *slog.Logger,
	runner Runner,
	repo sqlite.StateRepository,
	rootDir, bootstrap, dir, requirements string,
) *Provisioner {
	return &Provisioner{
		log:          log,
		runner:       runner,
		repo:         repo,
		rootDir:      rootDir,
		bootstrap:    bootstrap,
		dir:          dir,
		requirements: requirements,
	}
}

// Steps returns the provisioning commands in execution order.
func (p *Provisioner) Steps() []Step {
	python := PythonPath(p.dir)

	return []Step{
		{Name: "create environment", Cmd: p.bootstrap, Args: []string{"-m", "venv", p.dir}},
		{Name: "upgrade pip", Cmd: python, Args: []string{"-m", "pip", "install", "--upgrade", "pip"}},
		{Name: "install requirements", Cmd: python, Args: []string{"-m", "pip", "install", "-r", p.requirements}},
	}
}

// Provision runs every step in order and stops at the first failure.
func (p *Provisioner) Provision(ctx context.Context) error {
	const opn = "venv.Provisioner.Provision"
	log := p.log.With("op", opn)

	hash, err := RequirementsHash(p.requirements)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", opn, ErrMissingRequirements, err)
	}

	if err = p.repo.MarkProvisionStarted(ctx, p.dir, hash); err != nil {
		return fmt.Errorf("%s: failed to record provisioning start: %w", opn, err)
	}

	steps := p.Steps()
	for idx, step := range steps {
		log.InfoContext(ctx, "Provisioning", "step", idx+1, "of", len(steps), "name", step.Name)

		if err = p.runner.Run(ctx, p.rootDir, step.Cmd, step.Args...); err != nil {
			return fmt.Errorf("%s: %s: %w: %w", opn, step.Name, ErrStepFailed, err)
		}
	}

	if err = p.repo.MarkProvisionComplete(ctx); err != nil {
		return fmt.Errorf("%s: failed to record provisioning completion: %w", opn, err)
	}
	log.InfoContext(ctx, "Environment provisioned", "dir", p.dir)

	return nil
}

// RequirementsHash calculates the SHA256 hash of the requirements file.
func RequirementsHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
