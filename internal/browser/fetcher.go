package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nao1215/iso3166gen/internal/model"
)

// DefaultTimeout bounds navigation plus both table waits. rod itself never
// gives up waiting for a selector.
const DefaultTimeout = 60 * time.Second

// Fetcher renders the registry page in headless Chromium.
type Fetcher struct {
	// url is the registry page.
	url string

	// bin is the Chromium executable. Empty lets rod find or download one.
	bin string

	// controlURL connects to an already running browser instead of
	// launching one. The caller owns that browser's lifetime.
	controlURL string

	// headless runs the launched browser without a window.
	headless bool

	// timeout bounds one Tables or Page call.
	timeout time.Duration

	// logger receives progress messages.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithURL sets the registry page URL.
func WithURL(u string) Option {
	return func(f *Fetcher) {
		f.url = u
	}
}

// WithBrowserBin sets the Chromium executable.
func WithBrowserBin(bin string) Option {
	return func(f *Fetcher) {
		f.bin = bin
	}
}

// WithControlURL connects to a running browser's DevTools endpoint.
func WithControlURL(u string) Option {
	return func(f *Fetcher) {
		f.controlURL = u
	}
}

// WithHeadless toggles headless mode for launched browsers.
func WithHeadless(headless bool) Option {
	return func(f *Fetcher) {
		f.headless = headless
	}
}

// WithTimeout sets the wait timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher for DefaultURL.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		url:      DefaultURL,
		headless: true,
		timeout:  DefaultTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the registry page URL.
func (f *Fetcher) URL() string {
	return f.url
}

// Tables renders the registry page and returns both tables.
func (f *Fetcher) Tables(ctx context.Context) (*model.Tables, error) {
	tables := &model.Tables{BaseURL: f.url}

	err := f.withPage(ctx, func(page *rod.Page) error {
		var err error
		if tables.LegendHTML, err = waitOuterHTML(page, LegendSelector); err != nil {
			return err
		}
		tables.CodesHTML, err = waitOuterHTML(page, CodesSelector)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Page renders the registry page, waits for both tables and returns the
// whole document. The result can be fed back through FileSource.
func (f *Fetcher) Page(ctx context.Context) (string, error) {
	var doc string

	err := f.withPage(ctx, func(page *rod.Page) error {
		for _, sel := range []string{LegendSelector, CodesSelector} {
			if _, err := waitOuterHTML(page, sel); err != nil {
				return err
			}
		}
		var err error
		doc, err = page.HTML()
		if err != nil {
			return fmt.Errorf("failed to read page: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return doc, nil
}

// withPage acquires a browser and an incognito page on the registry URL,
// runs fn, and releases everything on return.
func (f *Fetcher) withPage(ctx context.Context, fn func(page *rod.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	controlURL := f.controlURL
	if controlURL == "" {
		l := f.newLauncher()
		defer l.Cleanup()

		f.logger.Debug("launching browser", "bin", f.bin, "headless", f.headless)
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	f.logger.Debug("connecting to browser", "control_url", controlURL)
	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	if f.controlURL == "" {
		defer func() {
			if err := b.Close(); err != nil {
				f.logger.Debug("failed to close browser", "error", err)
			}
		}()
	}

	incognito, err := b.Incognito()
	if err != nil {
		return fmt.Errorf("failed to open incognito context: %w", err)
	}
	defer func() {
		_ = incognito.Close()
	}()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()
	page = page.Context(ctx)

	f.logger.Debug("navigating", "url", f.url)
	if err := page.Navigate(f.url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", f.url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", f.url, err)
	}

	return fn(page)
}

// newLauncher builds the Chromium launcher. The sandbox is disabled so the
// browser runs inside containers and as root.
func (f *Fetcher) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Headless(f.headless).
		NoSandbox(true).
		Set(flags.Flag("disable-setuid-sandbox")).
		Set(flags.Flag("disable-dev-shm-usage"))
	if f.bin != "" {
		l = l.Bin(f.bin)
	}
	return l
}

// waitOuterHTML waits for selector and returns the element's outer HTML.
// The page carries the wait timeout, so a deadline here means the table
// never appeared.
func waitOuterHTML(page *rod.Page, selector string) (string, error) {
	el, err := page.Element(selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrTableNotFound, selector)
		}
		return "", fmt.Errorf("failed to find %s: %w", selector, err)
	}
	out, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", selector, err)
	}
	return out, nil
}
