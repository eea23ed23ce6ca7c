package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	mdview "github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches commands and returns the process exit code.
// Anything that is not a command is treated as a markdown file to render.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd := args[1]; {
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "mdview %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "--help" || cmd == "-h":
		return runHelp(args[2:], env)
	case cmd == "doctor":
		return runDoctorCmd(args[2:], env)
	case cmd == "config":
		return runConfigCmd(args[2:], env)
	}

	flags, positional, err := parseRenderFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common)
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger builds the stderr diagnostic logger. Warnings are shown by
// default, --verbose adds pipeline details, --quiet keeps only errors.
func newLogger(w io.Writer, f commonFlags) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case f.verbose:
		level = zapcore.DebugLevel
	case f.quiet:
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// hintFor returns actionable hints for the error, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdview.ErrBrowserLaunch):
		return hints.ForBrowserLaunch()
	case errors.Is(err, mdview.ErrRenderTimeout):
		return hints.ForTimeout()
	case errors.Is(err, mdview.ErrSession), errors.Is(err, mdview.ErrBrowser):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdview.ErrDisplay):
		return hints.ForDisplay()
	case errors.Is(err, mdview.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(filepath.Join(xdg.ConfigHome, config.AppName, config.DefaultConfigName+".yaml"))
	case errors.Is(err, mdview.ErrWriteFile):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
