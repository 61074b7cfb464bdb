package scrollpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// chromeConfig holds internal configuration for a ChromeAutomation.
type chromeConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool
}

func defaultChromeConfig() chromeConfig {
	return chromeConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// ChromeOption configures a [ChromeAutomation].
type ChromeOption func(*chromeConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) ChromeOption {
	return func(c *chromeConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single automation call.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) ChromeOption {
	return func(c *chromeConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() ChromeOption {
	return func(c *chromeConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a compatible Chromium binary when no
// Chrome executable is found in standard locations.
func WithAutoDownload() ChromeOption {
	return func(c *chromeConfig) {
		c.autoDownload = true
	}
}

// ChromeAutomation implements [Automation] against a document open in
// headless Chrome, using the DevTools protocol. The "window" is the
// page's layout viewport; scroll input is delivered as synthetic
// PageDown/Home key events; captures are clipped screenshots.
//
// It manages a single browser process reused across sessions. Call
// [ChromeAutomation.Close] when it is no longer needed.
type ChromeAutomation struct {
	cfg           chromeConfig
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeAutomation starts a headless browser and returns an
// Automation driving it. The caller must call Close when finished.
func NewChromeAutomation(opts ...ChromeOption) (*ChromeAutomation, error) {
	cfg := defaultChromeConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("scrollpdf: starting browser: %w", err)
	}

	return &ChromeAutomation{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases the browser process. Close is idempotent.
func (c *ChromeAutomation) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Open navigates the browser to rawURL and waits for the document body
// to be ready. It must be called before a capture session starts.
func (c *ChromeAutomation) Open(ctx context.Context, rawURL string) error {
	return c.runActions(ctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// FrontmostApp returns the open page's title and URL.
func (c *ChromeAutomation) FrontmostApp(ctx context.Context) (AppIdentity, error) {
	var title, location string
	err := c.runActions(ctx,
		chromedp.Title(&title),
		chromedp.Location(&location),
	)
	if err != nil {
		return AppIdentity{}, fmt.Errorf("%w: %v", ErrNoFrontmostApp, err)
	}
	if location == "" || location == "about:blank" {
		return AppIdentity{}, fmt.Errorf("%w: no document open", ErrNoFrontmostApp)
	}
	return AppIdentity{Name: title, ID: location}, nil
}

// WindowBounds returns the page's layout viewport.
func (c *ChromeAutomation) WindowBounds(ctx context.Context, _ AppIdentity) (Rect, error) {
	var bounds Rect
	err := c.runActions(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, _, viewport, _, _, err := page.GetLayoutMetrics().Do(ctx)
		if err != nil {
			return err
		}
		if viewport == nil {
			return fmt.Errorf("no layout viewport")
		}
		bounds = Rect{
			X:      int(viewport.PageX),
			Y:      int(viewport.PageY),
			Width:  int(viewport.ClientWidth),
			Height: int(viewport.ClientHeight),
		}
		return nil
	}))
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrBoundsUnavailable, err)
	}
	if bounds.Empty() {
		return Rect{}, fmt.Errorf("%w: viewport %dx%d", ErrBoundsUnavailable, bounds.Width, bounds.Height)
	}
	// Captures clip the rendered viewport, whose origin is always the
	// top-left of the screenshot surface.
	bounds.X, bounds.Y = 0, 0
	return bounds, nil
}

// ScrollPage sends a synthetic PageDown key event to the document.
func (c *ChromeAutomation) ScrollPage(ctx context.Context) error {
	return c.runActions(ctx, chromedp.KeyEvent(kb.PageDown))
}

// ScrollHome sends a synthetic Home key event, returning the document
// to its top.
func (c *ChromeAutomation) ScrollHome(ctx context.Context) error {
	return c.runActions(ctx, chromedp.KeyEvent(kb.Home))
}

// CaptureRegion takes a screenshot clipped to r.
func (c *ChromeAutomation) CaptureRegion(ctx context.Context, r Rect) (*image.RGBA, error) {
	var buf []byte
	err := c.runActions(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{
				X:      float64(r.X),
				Y:      float64(r.Y),
				Width:  float64(r.Width),
				Height: float64(r.Height),
				Scale:  1,
			}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot: %v", ErrCaptureFailed, err)
	}
	return toRGBA(img), nil
}

// runActions executes actions against the browser tab, honouring the
// configured per-call timeout.
func (c *ChromeAutomation) runActions(ctx context.Context, actions ...chromedp.Action) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	tab := c.browserCtx
	timeout := c.cfg.timeout
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		tab, cancel = context.WithTimeout(tab, timeout)
		defer cancel()
	}
	return chromedp.Run(tab, actions...)
}

// toRGBA returns img as *image.RGBA, converting only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
