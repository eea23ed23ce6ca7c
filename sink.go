package mdview

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/opener"
	"github.com/alnah/go-mdview/internal/termimg"
)

// MaxDisplayColumns caps the terminal image width regardless of the
// terminal size.
const MaxDisplayColumns = 150

// Sink delivers a render result to its destination.
type Sink interface {
	Deliver(ctx context.Context, res *Result) error
}

// FileSink writes the screenshot (or the page, with HTML) to Path. The
// write is atomic: a failed write leaves no partial file.
type FileSink struct {
	Path   string
	HTML   bool      // Write Result.HTML instead of Result.PNG
	Stdout io.Writer // Receives "Saved to <path>"; nil is silent
}

// Deliver writes the bytes verbatim.
func (s *FileSink) Deliver(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := res.PNG
	if s.HTML {
		data = res.HTML
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s: nothing to write", ErrWriteFile, s.Path)
	}

	if err := fileutil.WriteFileAtomic(s.Path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFile, s.Path, err)
	}

	if s.Stdout != nil {
		_, _ = fmt.Fprintf(s.Stdout, "Saved to %s\n", s.Path)
	}
	return nil
}

// TerminalSink draws the screenshot inline in the terminal.
type TerminalSink struct {
	Out        io.Writer
	Columns    int    // Terminal width; non-positive means DefaultColumns
	MaxColumns int    // Display cap; non-positive or larger than MaxDisplayColumns uses MaxDisplayColumns
	Protocol   string // "auto", "kitty", "iterm", "blocks"; empty means auto
	Getenv     func(string) string
	Logger     *zap.Logger
}

// DisplayColumns returns min(columns, limit, MaxDisplayColumns).
// Non-positive columns count as DefaultColumns; a non-positive limit
// means MaxDisplayColumns.
func DisplayColumns(columns, limit int) int {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if limit <= 0 || limit > MaxDisplayColumns {
		limit = MaxDisplayColumns
	}
	return min(columns, limit)
}

// Deliver decodes the PNG and renders it through the terminal graphics
// protocol. Errors wrap ErrDisplay.
func (s *TerminalSink) Deliver(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	protocol, err := termimg.ParseProtocol(s.Protocol)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDisplay, err)
	}

	size, err := termimg.Size(res.PNG)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDisplay, err)
	}

	opts := termimg.Options{
		Columns:  DisplayColumns(s.Columns, s.MaxColumns),
		Protocol: protocol,
		Getenv:   s.Getenv,
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("displaying image",
		zap.Int("width", size.X),
		zap.Int("height", size.Y),
		zap.Int("columns", opts.Columns),
		zap.String("protocol", string(protocol)),
	)

	if err := termimg.Render(s.Out, res.PNG, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrDisplay, err)
	}
	return nil
}

// BrowserSink writes the page to PreviewPath and opens it with the
// system's default handler. The screenshot is not used.
type BrowserSink struct {
	PreviewPath string
	Opener      opener.Opener
	Stdout      io.Writer // Receives "Opened <path>"; nil is silent
	Logger      *zap.Logger
}

// Deliver writes the preview page, then starts the opener. An opener
// failure is logged and not returned: the page is still at PreviewPath.
func (s *BrowserSink) Deliver(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(s.PreviewPath, res.HTML); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFile, s.PreviewPath, err)
	}

	if s.Opener != nil {
		if err := s.Opener.Open(ctx, s.PreviewPath); err != nil {
			s.logger().Info("could not start browser", zap.String("path", s.PreviewPath), zap.Error(err))
		}
	}

	if s.Stdout != nil {
		_, _ = fmt.Fprintf(s.Stdout, "Opened %s\n", s.PreviewPath)
	}
	return nil
}

func (s *BrowserSink) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*TerminalSink)(nil)
	_ Sink = (*BrowserSink)(nil)
)
