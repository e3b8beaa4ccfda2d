package readiness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotReady is returned when the server never answered within the probe budget.
var ErrNotReady = errors.New("server did not become ready")

// Prober waits for the freshly spawned web UI to serve its index page.
type Prober struct {
	log      *slog.Logger
	client   *http.Client
	delay    time.Duration
	timeout  time.Duration
	interval time.Duration
	attempts int
}

func NewProber(log *slog.Logger, delay, timeout, interval time.Duration, attempts int) *Prober {
	return &Prober{
		log:      log,
		client:   &http.Client{Timeout: interval + time.Second},
		delay:    delay,
		timeout:  timeout,
		interval: interval,
		attempts: max(attempts, 1),
	}
}

// WaitReady sleeps the fixed delay, then polls url until it returns an HTML
// page or the attempt count or timeout runs out. It returns the page title.
func (p *Prober) WaitReady(ctx context.Context, url string) (string, error) {
	const opn = "readiness.Prober.WaitReady"
	log := p.log.With("op", opn, "url", url)

	if err := sleep(ctx, p.delay); err != nil {
		return "", fmt.Errorf("%s: %w", opn, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		title, err := p.probe(ctx, url)
		if err == nil {
			log.InfoContext(ctx, "Server is ready", "attempt", attempt, "title", title)
			return title, nil
		}
		lastErr = err
		log.DebugContext(ctx, "Server not ready yet", "attempt", attempt, "error", err)

		if attempt == p.attempts {
			break
		}
		if err = sleep(ctx, p.interval); err != nil {
			break
		}
	}

	return "", fmt.Errorf("%s: %w: %w", opn, ErrNotReady, lastErr)
}

func (p *Prober) probe(ctx context.Context, url string) (string, error) {
	resp, err := p.getHTMLResponse(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseTitle(resp.Body)
}

func (p *Prober) getHTMLResponse(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", url, err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", url, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	return res, nil
}

func parseTitle(inp io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return "", fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
