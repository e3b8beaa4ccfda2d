package browser

import (
	"fmt"
	"io"
	"log/slog"

	pkgbrowser "github.com/pkg/browser"
)

// Opener hands a URL to the user's default browser.
type Opener struct {
	log  *slog.Logger
	open func(url string) error
}

func NewOpener(log *slog.Logger) *Opener {
	// The platform helper (xdg-open, open, rundll32) must not write into the console.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard

	return &Opener{log: log, open: pkgbrowser.OpenURL}
}

func (o *Opener) Open(url string) error {
	const opn = "browser.Opener.Open"

	if err := o.open(url); err != nil {
		return fmt.Errorf("%s: failed to open %s: %w", opn, url, err)
	}
	o.log.Info("Opened browser", "op", opn, "url", url)

	return nil
}
