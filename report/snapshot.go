package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"complaints-dashboard/models"
	"complaints-dashboard/utils"
)

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found.
var ErrNoBrowser = errors.New("report: no chrome binary found")

// Snapshotter renders the HTML dashboard in headless Chrome and captures it
// as a PNG.
type Snapshotter struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
}

// NewSnapshotter resolves the browser binary. configured takes precedence
// over the binaries found on PATH and in the usual install locations.
func NewSnapshotter(configured string, timeout time.Duration, logger *utils.Logger) (*Snapshotter, error) {
	bin := FindChromeBinary(configured)
	if bin == "" {
		return nil, ErrNoBrowser
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	logger.Info("[snapshot] Using browser binary: %s", bin)
	return &Snapshotter{chromeBin: bin, timeout: timeout, logger: logger}, nil
}

// Capture renders the dashboard for c and v and returns a full-page PNG.
func (s *Snapshotter) Capture(ctx context.Context, c models.Catalog, v models.DashboardView) ([]byte, error) {
	page, err := HTML(c, v)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "dashboard-snapshot-")
	if err != nil {
		return nil, fmt.Errorf("report: snapshot: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "dashboard.html")
	if err := os.WriteFile(path, page, 0o600); err != nil {
		return nil, fmt.Errorf("report: snapshot: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1280, 960),
		chromedp.ExecPath(s.chromeBin),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("report: snapshot: %w", err)
	}

	s.logger.Debug("[snapshot] Captured %d bytes", len(buf))
	return buf, nil
}

// WriteSnapshot captures the dashboard and writes the PNG to path.
func (s *Snapshotter) WriteSnapshot(ctx context.Context, path string, c models.Catalog, v models.DashboardView) error {
	png, err := s.Capture(ctx, c, v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("report: write snapshot: %w", err)
	}
	s.logger.Info("[snapshot] Dashboard saved to %s", path)
	return nil
}

// FindChromeBinary locates a Chrome/Chromium binary. It returns "" when none
// is installed.
func FindChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
