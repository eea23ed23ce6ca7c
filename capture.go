package mdview

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/browser"
	"github.com/alnah/go-mdview/internal/fileutil"
)

const (
	// readySelector must exist before the page is measured.
	readySelector = "body"

	// extentScript measures the laid-out content.
	extentScript = `JSON.stringify([document.body.scrollWidth, document.body.scrollHeight])`

	defaultReadyTimeout = 5 * time.Second
)

// screenshot is the decoded PNG and the region it covers.
type screenshot struct {
	PNG    []byte
	Extent Extent
}

// capturer drives one page through the capture sequence. Every step waits
// for the previous one; only the measurement degrades instead of failing.
type capturer struct {
	readyTimeout time.Duration
	logger       *zap.Logger
}

// capture loads pagePath into page and returns a screenshot clipped to the
// rendered content.
func (c *capturer) capture(ctx context.Context, page browser.Page, pagePath string, theme Theme) (*screenshot, error) {
	if err := page.EmulateColorScheme(ctx, theme.colorScheme()); err != nil {
		return nil, c.stepError(ctx, "emulating color scheme", err)
	}

	url := fileutil.ToFileURL(pagePath)
	c.logger.Debug("navigating", zap.String("url", url))
	if err := page.Navigate(ctx, url); err != nil {
		return nil, c.stepError(ctx, "navigating", err)
	}

	if err := c.waitReady(ctx, page); err != nil {
		return nil, err
	}

	ext := c.measure(ctx, page)
	if err := ctx.Err(); err != nil {
		return nil, c.stepError(ctx, "measuring content", err)
	}

	clip := browser.Clip{
		Width:  float64(ext.Width),
		Height: float64(ext.Height),
		Scale:  1,
	}
	payload, err := page.CaptureScreenshot(ctx, clip)
	if err != nil {
		return nil, c.stepError(ctx, "capturing screenshot", err)
	}

	png, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.logger.Debug("captured",
		zap.Int("width", ext.Width),
		zap.Int("height", ext.Height),
		zap.Int("bytes", len(png)),
	)
	return &screenshot{PNG: png, Extent: ext}, nil
}

// waitReady blocks until readySelector exists, at most readyTimeout.
func (c *capturer) waitReady(ctx context.Context, page browser.Page) error {
	timeout := c.readyTimeout
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}

	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := page.WaitReady(readyCtx, readySelector); err != nil {
		if readyCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w: no <%s> after %s", ErrRenderTimeout, readySelector, timeout)
		}
		return c.stepError(ctx, "waiting for page", err)
	}
	return nil
}

// measure returns the content size, or DefaultExtent (per dimension) when
// the script fails or returns something unusable.
func (c *capturer) measure(ctx context.Context, page browser.Page) Extent {
	raw, err := page.Evaluate(ctx, extentScript)
	if err != nil {
		c.logger.Warn("content measurement failed, using default extent",
			zap.Error(err),
			zap.Int("width", DefaultExtent.Width),
			zap.Int("height", DefaultExtent.Height),
		)
		return DefaultExtent
	}

	ext, ok := parseExtent(raw)
	if !ok {
		c.logger.Warn("unusable content measurement, using defaults",
			zap.String("raw", raw),
			zap.Int("width", ext.Width),
			zap.Int("height", ext.Height),
		)
	}
	return ext
}

// stepError wraps a failed step. A done context becomes ErrRenderTimeout
// or the cancellation itself.
func (c *capturer) stepError(ctx context.Context, step string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", ErrRenderTimeout, step, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", step, ctx.Err())
	default:
		return fmt.Errorf("%w: %s: %v", ErrBrowser, step, err)
	}
}
