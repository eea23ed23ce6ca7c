package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags select the sink.
type outputFlags struct {
	output   string // File sink path
	browser  bool   // Browser-open sink
	html     bool   // Write the page instead of the PNG
	protocol string // Terminal sink protocol
}

// browserFlags hold headless Chrome options.
type browserFlags struct {
	chrome  string
	timeout string
}

// renderFlags holds all flags for rendering a document.
type renderFlags struct {
	common    commonFlags
	out       outputFlags
	browser   browserFlags
	width     int
	theme     string
	style     string
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline details")
}

// addOutputFlags adds sink selection flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "save PNG to file instead of displaying")
	fs.BoolVarP(&f.browser, "browser", "b", false, "open in the system browser")
	fs.BoolVar(&f.html, "html", false, "write the rendered HTML page instead of a PNG")
	fs.StringVar(&f.protocol, "protocol", "", "terminal graphics: auto, kitty, iterm, blocks")
}

// addBrowserFlags adds headless Chrome flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.chrome, "chrome", "", "Chrome/Chromium binary")
	fs.StringVar(&f.timeout, "timeout", "", "render timeout (e.g., 30s, 1m)")
}

// parseRenderFlags parses render flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("mdview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	fs.IntVarP(&f.width, "width", "w", 0, "viewport width in pixels (0 = from terminal)")
	fs.StringVarP(&f.theme, "theme", "t", "", "color theme: light, dark")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.out)
	addBrowserFlags(fs, &f.browser)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
