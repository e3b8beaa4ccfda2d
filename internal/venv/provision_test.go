package venv_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Houeta/top20-launcher/internal/venv"
	"github.com/Houeta/top20-launcher/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type provisionFixture struct {
	root         string
	dir          string
	requirements string
	hash         string
	runner       *mocks.Runner
	repo         *mocks.Ledger
	provisioner  *venv.Provisioner
}

func newProvisionFixture(t *testing.T) *provisionFixture {
	t.Helper()

	root := t.TempDir()
	requirements := filepath.Join(root, "requirements.txt")
	require.NoError(t, os.WriteFile(requirements, []byte("streamlit==1.38.0\nrequests\n"), 0o600))
	hash, err := venv.RequirementsHash(requirements)
	require.NoError(t, err)

	f := &provisionFixture{
		root:         root,
		dir:          filepath.Join(root, "venv"),
		requirements: requirements,
		hash:         hash,
		runner:       mocks.NewRunner(t),
		repo:         mocks.NewLedger(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.provisioner = venv.NewProvisioner(logger, f.runner, f.repo, root, "python3", f.dir, requirements)

	return f
}

func TestProvisioner_Steps(t *testing.T) {
	f := newProvisionFixture(t)
	python := venv.PythonPath(f.dir)

	steps := f.provisioner.Steps()

	require.Len(t, steps, 3)
	assert.Equal(t, venv.Step{Name: "create environment", Cmd: "python3", Args: []string{"-m", "venv", f.dir}}, steps[0])
	assert.Equal(t, venv.Step{
		Name: "upgrade pip", Cmd: python, Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
	}, steps[1])
	assert.Equal(t, venv.Step{
		Name: "install requirements", Cmd: python, Args: []string{"-m", "pip", "install", "-r", f.requirements},
	}, steps[2])
}

func TestProvisioner_Provision(t *testing.T) {
	t.Run("success: steps run in order", func(t *testing.T) {
		f := newProvisionFixture(t)
		ctx := testContext(t)
		python := venv.PythonPath(f.dir)

		mock.InOrder(
			f.repo.On("MarkProvisionStarted", ctx, f.dir, f.hash).Return(nil).Once(),
			f.runner.On("Run", ctx, f.root, "python3", "-m", "venv", f.dir).Return(nil).Once(),
			f.runner.On("Run", ctx, f.root, python, "-m", "pip", "install", "--upgrade", "pip").Return(nil).Once(),
			f.runner.On("Run", ctx, f.root, python, "-m", "pip", "install", "-r", f.requirements).Return(nil).Once(),
			f.repo.On("MarkProvisionComplete", ctx).Return(nil).Once(),
		)

		require.NoError(t, f.provisioner.Provision(ctx))
	})

	t.Run("error: create fails, nothing else runs", func(t *testing.T) {
		f := newProvisionFixture(t)
		ctx := testContext(t)

		f.repo.On("MarkProvisionStarted", ctx, f.dir, f.hash).Return(nil).Once()
		f.runner.On("Run", ctx, f.root, "python3", "-m", "venv", f.dir).Return(assert.AnError).Once()

		err := f.provisioner.Provision(ctx)

		require.ErrorIs(t, err, venv.ErrStepFailed)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "create environment")
		f.runner.AssertNumberOfCalls(t, "Run", 1)
		f.repo.AssertNotCalled(t, "MarkProvisionComplete", mock.Anything)
	})

	t.Run("error: install fails after upgrade", func(t *testing.T) {
		f := newProvisionFixture(t)
		ctx := testContext(t)
		python := venv.PythonPath(f.dir)

		f.repo.On("MarkProvisionStarted", ctx, f.dir, f.hash).Return(nil).Once()
		f.runner.On("Run", ctx, f.root, "python3", "-m", "venv", f.dir).Return(nil).Once()
		f.runner.On("Run", ctx, f.root, python, "-m", "pip", "install", "--upgrade", "pip").Return(nil).Once()
		f.runner.On("Run", ctx, f.root, python, "-m", "pip", "install", "-r", f.requirements).
			Return(assert.AnError).Once()

		err := f.provisioner.Provision(ctx)

		require.ErrorIs(t, err, venv.ErrStepFailed)
		assert.Contains(t, err.Error(), "install requirements")
		f.repo.AssertNotCalled(t, "MarkProvisionComplete", mock.Anything)
	})

	t.Run("error: requirements file missing", func(t *testing.T) {
		f := newProvisionFixture(t)
		require.NoError(t, os.Remove(f.requirements))

		err := f.provisioner.Provision(testContext(t))

		require.ErrorIs(t, err, venv.ErrMissingRequirements)
		f.runner.AssertNumberOfCalls(t, "Run", 0)
		f.repo.AssertNotCalled(t, "MarkProvisionStarted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error: ledger start fails", func(t *testing.T) {
		f := newProvisionFixture(t)
		ctx := testContext(t)
		f.repo.On("MarkProvisionStarted", ctx, f.dir, f.hash).Return(assert.AnError).Once()

		err := f.provisioner.Provision(ctx)

		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to record provisioning start")
		f.runner.AssertNumberOfCalls(t, "Run", 0)
	})
}

func TestRequirementsHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("pandas\n"), 0o600))

	first, err := venv.RequirementsHash(path)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	require.NoError(t, os.WriteFile(path, []byte("pandas\nopenpyxl\n"), 0o600))
	second, err := venv.RequirementsHash(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = venv.RequirementsHash(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
