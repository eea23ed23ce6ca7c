package mdview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/browser"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/pipeline"
)

// Renderer turns Markdown into a screenshot of the rendered page.
// Create with NewRenderer and call Render once per document. Each Render
// launches its own browser and tears it down before returning.
type Renderer struct {
	cfg           rendererConfig
	logger        *zap.Logger
	assetLoader   assets.AssetLoader
	htmlConverter pipeline.HTMLConverter
	launcher      browser.Launcher
	template      string

	mu sync.Mutex // one browser session at a time
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithTheme, WithStyle, WithTimeout).
// Returns error if an option is invalid or asset loading fails.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout:      defaultTimeout,
			readyTimeout: defaultReadyTimeout,
			theme:        ThemeLight,
		},
		logger:        zap.NewNop(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(r)
	}

	theme, err := ParseTheme(string(r.cfg.theme))
	if err != nil {
		return nil, err
	}
	r.cfg.theme = theme

	if err := validateViewportWidth(r.cfg.viewportWidth); err != nil {
		return nil, err
	}

	if r.cfg.scratchPath == "" {
		r.cfg.scratchPath = config.DefaultScratchPath()
	}
	// The browser loads the scratch page by file:// URL.
	scratch, err := filepath.Abs(r.cfg.scratchPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFile, r.cfg.scratchPath, err)
	}
	r.cfg.scratchPath = scratch

	resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	r.assetLoader = resolver

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	r.template, err = r.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}

	if r.launcher == nil {
		r.launcher = &browser.RodLauncher{
			Bin:           r.cfg.browserBin,
			NoSandbox:     r.cfg.noSandbox,
			AllowDownload: r.cfg.download,
			Logger:        r.logger.Named("browser"),
		}
	}

	return r, nil
}

// Viewport returns the browser window size used by Render.
func (r *Renderer) Viewport() Viewport {
	return NewViewport(r.cfg.viewportWidth, r.cfg.columns)
}

// ScratchPath returns where Render writes the page for the browser.
func (r *Renderer) ScratchPath() string {
	return r.cfg.scratchPath
}

// Render converts input.Markdown, writes the page to the scratch path and
// captures it with headless Chrome. With input.HTMLOnly the browser is
// skipped and only Result.HTML is set.
// Calls are serialized. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	page, err := r.BuildPage(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := fileutil.WriteFileAtomic(r.cfg.scratchPath, []byte(page.HTML)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFile, r.cfg.scratchPath, err)
	}
	r.logger.Debug("page written",
		zap.String("path", r.cfg.scratchPath),
		zap.String("baseDir", page.BaseDir),
	)

	res := &Result{
		HTML:        []byte(page.HTML),
		ScratchPath: r.cfg.scratchPath,
	}
	if input.HTMLOnly {
		return res, nil
	}

	shot, err := r.captureScratch(ctx)
	if err != nil {
		return nil, err
	}

	res.PNG = shot.PNG
	res.Extent = shot.Extent
	return res, nil
}

// BuildPage converts input.Markdown and fills the page template. It does
// not touch the filesystem beyond resolving input.SourcePath.
func (r *Renderer) BuildPage(ctx context.Context, input Input) (RenderedPage, error) {
	if err := r.validateInput(input); err != nil {
		return RenderedPage{}, err
	}

	body, err := r.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("converting to HTML: %w", err)
	}

	return BuildPage(r.template, r.cfg.resolvedStyle, body, input.SourcePath), nil
}

// captureScratch runs one browser session against the scratch page. The
// session is closed on every path.
func (r *Renderer) captureScratch(ctx context.Context) (*screenshot, error) {
	vp := r.Viewport()
	r.logger.Debug("launching browser",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.String("theme", string(r.cfg.theme)),
	)

	session, err := r.launcher.Launch(ctx, browser.Viewport(vp))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: launching browser: %v", ErrRenderTimeout, err)
		}
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Debug("closing browser", zap.Error(cerr))
		}
	}()

	page, err := session.OpenPage(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: opening page: %v", ErrRenderTimeout, err)
		}
		return nil, err
	}
	defer func() { _ = page.Close() }()

	c := &capturer{readyTimeout: r.cfg.readyTimeout, logger: r.logger}
	return c.capture(ctx, page, r.cfg.scratchPath, r.cfg.theme)
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content and appends the code highlighting rules.
func (r *Renderer) resolveStyle() error {
	css, err := r.loadStyle(r.cfg.styleInput)
	if err != nil {
		return err
	}

	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return err
	}

	r.cfg.resolvedStyle = css + "\n" + highlight
	return nil
}

func (r *Renderer) loadStyle(input string) (string, error) {
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		return string(content), nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		return input, nil
	}

	// Style name -> use asset loader
	css, err := r.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// validateInput checks that required fields are present.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their config validated earlier by
// config.Validate(); both paths converge here.
func (r *Renderer) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return nil
}
