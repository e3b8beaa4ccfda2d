package browser

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		var got string
		o := &Opener{log: logger, open: func(url string) error {
			got = url
			return nil
		}}

		require.NoError(t, o.Open("http://localhost:8501"))
		assert.Equal(t, "http://localhost:8501", got)
	})

	t.Run("error", func(t *testing.T) {
		o := &Opener{log: logger, open: func(string) error { return assert.AnError }}

		err := o.Open("http://localhost:8501")

		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "browser.Opener.Open")
	})
}
