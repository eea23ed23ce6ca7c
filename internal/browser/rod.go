package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/process"
)

// lookPath finds an installed browser. Variable for tests.
var lookPath = launcher.LookPath

// RodLauncher launches headless Chrome with go-rod.
type RodLauncher struct {
	Bin           string // Explicit binary; empty searches the usual install locations
	NoSandbox     bool   // Required in most containers
	AllowDownload bool   // Let rod download Chromium when nothing is installed
	Logger        *zap.Logger
}

// Launch starts Chrome and opens an incognito browsing context.
func (l *RodLauncher) Launch(ctx context.Context, vp Viewport) (Session, error) {
	logger := l.logger()

	bin, err := l.resolveBin(ctx)
	if err != nil {
		return nil, err
	}

	lnch := newLauncher(ctx, bin, vp, l.NoSandbox)
	logger.Debug("launching browser",
		zap.String("bin", bin),
		zap.String("window", lnch.Get("window-size")),
		zap.Bool("noSandbox", l.NoSandbox),
	)

	u, err := lnch.Launch()
	if err != nil {
		lnch.Kill()
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	s := &rodSession{launcher: lnch, viewport: vp, logger: logger}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: connecting: %v", ErrLaunch, err)
	}
	s.browser = browser

	s.incognito, err = s.browser.Incognito()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: incognito context: %v", ErrLaunch, err)
	}

	logger.Debug("browser ready", zap.Int("pid", lnch.PID()))
	return s, nil
}

func (l *RodLauncher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// resolveBin picks the browser binary: the explicit one, then an installed
// one, then a rod-managed download when allowed.
func (l *RodLauncher) resolveBin(ctx context.Context) (string, error) {
	if l.Bin != "" {
		bin, err := exec.LookPath(l.Bin)
		if err != nil {
			return "", fmt.Errorf("%w: %w: %s", ErrLaunch, ErrBrowserNotFound, l.Bin)
		}
		return bin, nil
	}

	if bin, ok := lookPath(); ok {
		return bin, nil
	}

	if !l.AllowDownload {
		return "", fmt.Errorf("%w: %w", ErrLaunch, ErrBrowserNotFound)
	}

	l.logger().Info("downloading Chromium")
	b := launcher.NewBrowser()
	b.Context = ctx
	bin, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("%w: download: %v", ErrLaunch, err)
	}
	return bin, nil
}

// newLauncher builds the Chrome command line.
func newLauncher(ctx context.Context, bin string, vp Viewport, noSandbox bool) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(true).
		Set("window-size", strconv.Itoa(vp.Width)+","+strconv.Itoa(vp.Height)).
		Set("force-color-profile", "srgb").
		Set("hide-scrollbars")
	if noSandbox {
		l = l.NoSandbox(true)
	}
	return l
}

// rodSession implements Session.
type rodSession struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	incognito *rod.Browser
	viewport  Viewport
	logger    *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

func (s *rodSession) OpenPage(ctx context.Context) (Page, error) {
	page, err := s.incognito.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}

	err = proto.EmulationSetDeviceMetricsOverride{
		Width:             s.viewport.Width,
		Height:            s.viewport.Height,
		DeviceScaleFactor: 1,
	}.Call(page)
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: device metrics: %v", ErrSession, err)
	}

	return &rodPage{page: page}, nil
}

func (s *rodSession) Version(ctx context.Context) (string, error) {
	v, err := proto.BrowserGetVersion{}.Call(s.browser.Context(ctx))
	if err != nil {
		return "", err
	}
	return v.Product, nil
}

func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.incognito != nil {
			errs = append(errs, s.incognito.Close())
		}
		if s.browser != nil {
			errs = append(errs, s.browser.Close())
		}
		if pid := s.launcher.PID(); pid > 0 {
			errs = append(errs, process.KillTree(pid))
		}
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.closeErr = errors.Join(errs...)
		s.logger.Debug("browser closed", zap.Error(s.closeErr))
	})
	return s.closeErr
}

// rodPage implements Page.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) EmulateColorScheme(ctx context.Context, scheme ColorScheme) error {
	return proto.EmulationSetEmulatedMedia{
		Media: "screen",
		Features: []*proto.EmulationMediaFeature{
			{Name: "prefers-color-scheme", Value: string(scheme)},
		},
	}.Call(p.page.Context(ctx))
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	err := p.page.Context(ctx).Navigate(url)
	var navErr *rod.NavigationError
	if errors.As(err, &navErr) {
		return fmt.Errorf("%w: %s", ErrNavigation, navErr.Reason)
	}
	return err
}

func (p *rodPage) WaitReady(ctx context.Context, selector string) error {
	_, err := p.page.Context(ctx).Element(selector)
	return err
}

func (p *rodPage) Evaluate(ctx context.Context, js string) (string, error) {
	obj, err := p.page.Context(ctx).Evaluate(rod.Eval(js))
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

// screenshotPayload keeps the data field encoded; proto's result type would
// decode it during unmarshal.
type screenshotPayload struct {
	Data string `json:"data"`
}

func (p *rodPage) CaptureScreenshot(ctx context.Context, clip Clip) (string, error) {
	req := proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      clip.X,
			Y:      clip.Y,
			Width:  clip.Width,
			Height: clip.Height,
			Scale:  clip.Scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	}

	raw, err := p.page.Call(ctx, string(p.page.SessionID), req.ProtoReq(), req)
	if err != nil {
		return "", err
	}

	var payload screenshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("screenshot response: %w", err)
	}
	return payload.Data, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

var (
	_ Launcher = (*RodLauncher)(nil)
	_ Session  = (*rodSession)(nil)
	_ Page     = (*rodPage)(nil)
)
