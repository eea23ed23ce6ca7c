// Package mdview renders Markdown documents to PNG using headless Chrome.
//
// # Quick Start
//
// Create a renderer, render markdown, and deliver the result:
//
//	r, err := mdview.NewRenderer(mdview.WithTheme(mdview.ThemeDark))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, mdview.Input{
//	    Markdown:   "# Hello\n\nWorld",
//	    SourcePath: "README.md", // for relative links and images
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sink := &mdview.FileSink{Path: "out.png"}
//	err = sink.Deliver(ctx, result)
//
// The result holds the screenshot (result.PNG), the page it was taken from
// (result.HTML) and the measured content size (result.Extent). Use
// Input.HTMLOnly to skip the browser.
//
// # Render Pipeline
//
//  1. Markdown to HTML via Goldmark (GFM, footnotes, chroma highlighting)
//  2. Page assembly: template, stylesheet, <base> for the source directory
//  3. Page written to the scratch path
//  4. Chrome launched with the viewport width and a fixed 800px height
//  5. Color scheme emulated, page loaded, <body> awaited
//  6. Content measured; 800x600 is used if measurement fails
//  7. Screenshot clipped to the content at scale 1
//
// The browser is closed, and its process tree killed, before Render
// returns on every path.
//
// # Sinks
//
// FileSink writes the PNG, TerminalSink draws it inline (kitty, iTerm2, or
// truecolor half blocks) at most MaxDisplayColumns wide, and BrowserSink
// writes the page to a preview location and opens it in the default
// browser.
//
// # Configuration
//
//	r, err := mdview.NewRenderer(
//	    mdview.WithTimeout(time.Minute),
//	    mdview.WithViewportWidth(1024),
//	    mdview.WithStyle("plain"),
//	    mdview.WithAssetPath("/path/to/custom/assets"),
//	    mdview.WithLogger(logger),
//	)
//
// With no explicit width, the viewport is min(columns*8, 1200) pixels
// where columns comes from WithTerminalColumns (default 80).
package mdview
