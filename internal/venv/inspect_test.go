package venv_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Houeta/top20-launcher/internal/models"
	"github.com/Houeta/top20-launcher/internal/repository"
	"github.com/Houeta/top20-launcher/internal/venv"
	"github.com/Houeta/top20-launcher/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// makeEnv creates a venv-shaped directory, optionally with its interpreter.
func makeEnv(t *testing.T, withPython bool) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "venv")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	if withPython {
		python := venv.PythonPath(dir)
		require.NoError(t, os.MkdirAll(filepath.Dir(python), 0o755))
		require.NoError(t, os.WriteFile(python, []byte(""), 0o755))
	}

	return dir
}

func TestInspector_Inspect(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name       string
		setup      func(t *testing.T) string
		setupMocks func(mRepo *mocks.Ledger, dir string)
		expected   models.EnvState
		reason     string
		expectErr  bool
	}{
		{
			name:       "absent: directory missing",
			setup:      func(t *testing.T) string { return filepath.Join(t.TempDir(), "venv") },
			setupMocks: func(_ *mocks.Ledger, _ string) {},
			expected:   models.EnvAbsent,
		},
		{
			name: "corrupt: path is a file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "venv")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
				return path
			},
			setupMocks: func(_ *mocks.Ledger, _ string) {},
			expected:   models.EnvCorrupt,
			reason:     "not a directory",
		},
		{
			name:       "corrupt: interpreter missing",
			setup:      func(t *testing.T) string { return makeEnv(t, false) },
			setupMocks: func(_ *mocks.Ledger, _ string) {},
			expected:   models.EnvCorrupt,
			reason:     "is missing",
		},
		{
			name:  "corrupt: interrupted provisioning",
			setup: func(t *testing.T) string { return makeEnv(t, true) },
			setupMocks: func(mRepo *mocks.Ledger, dir string) {
				mRepo.On("GetProvision", mock.Anything).
					Return(&models.ProvisionRecord{EnvDir: dir, Status: models.ProvisionStarted}, nil).Once()
			},
			expected: models.EnvCorrupt,
			reason:   "did not finish",
		},
		{
			name:  "valid: completed provisioning",
			setup: func(t *testing.T) string { return makeEnv(t, true) },
			setupMocks: func(mRepo *mocks.Ledger, dir string) {
				mRepo.On("GetProvision", mock.Anything).
					Return(&models.ProvisionRecord{EnvDir: dir, Status: models.ProvisionComplete}, nil).Once()
			},
			expected: models.EnvValid,
		},
		{
			name:  "valid: no ledger record",
			setup: func(t *testing.T) string { return makeEnv(t, true) },
			setupMocks: func(mRepo *mocks.Ledger, _ string) {
				mRepo.On("GetProvision", mock.Anything).Return(nil, repository.ErrStateNotFound).Once()
			},
			expected: models.EnvValid,
		},
		{
			name:  "valid: started record belongs to another directory",
			setup: func(t *testing.T) string { return makeEnv(t, true) },
			setupMocks: func(mRepo *mocks.Ledger, _ string) {
				mRepo.On("GetProvision", mock.Anything).
					Return(&models.ProvisionRecord{EnvDir: "/elsewhere", Status: models.ProvisionStarted}, nil).Once()
			},
			expected: models.EnvValid,
		},
		{
			name:  "error: ledger unreadable",
			setup: func(t *testing.T) string { return makeEnv(t, true) },
			setupMocks: func(mRepo *mocks.Ledger, _ string) {
				mRepo.On("GetProvision", mock.Anything).Return(nil, assert.AnError).Once()
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := tc.setup(t)
			mRepo := mocks.NewLedger(t)
			tc.setupMocks(mRepo, dir)

			insp := venv.NewInspector(logger, mRepo, dir)
			res, err := insp.Inspect(testContext(t))

			if tc.expectErr {
				require.ErrorIs(t, err, assert.AnError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, res.State)
			assert.Equal(t, dir, res.Dir)
			assert.Equal(t, venv.PythonPath(dir), res.Python)
			if tc.reason != "" {
				assert.Contains(t, res.Reason, tc.reason)
			}
		})
	}
}
