package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdview <file.md> [flags]")
	fmt.Fprintln(w, "       mdview <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file in headless Chrome and show it as an image.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check Chrome, terminal, and paths")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdview help render' for rendering flags.")
}

// printRenderUsage prints usage for rendering a file.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdview <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown to an image. With no output flag the image is drawn")
	fmt.Fprintln(w, "in the terminal.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Save PNG to file instead of displaying")
	fmt.Fprintln(w, "  -b, --browser             Open the rendered page in the system browser")
	fmt.Fprintln(w, "      --html                Write the rendered HTML page (to -o or <file>.html)")
	fmt.Fprintln(w, "      --protocol <s>        Terminal graphics: auto, kitty, iterm, blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -w, --width <px>          Viewport width (0 = from terminal, max 8192)")
	fmt.Fprintln(w, "  -t, --theme <s>           Color theme: light, dark")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/templates directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --chrome <path>       Chrome/Chromium binary")
	fmt.Fprintln(w, "      --timeout <d>         Render timeout (e.g., 30s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pipeline details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDVIEW_THEME, MDVIEW_WIDTH, MDVIEW_STYLE, MDVIEW_TIMEOUT,")
	fmt.Fprintln(w, "  MDVIEW_PROTOCOL, MDVIEW_CONFIG, MDVIEW_PREVIEW_PATH, MDVIEW_SCRATCH_PATH")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX=1")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mdview doctor [--json] [--launch]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, terminal graphics support, and writable paths.")
		fmt.Fprintln(env.Stdout, "--launch starts the browser once to confirm it runs.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: mdview config [-c name]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration after applying environment variables.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
