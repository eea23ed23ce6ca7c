// Package pipeline converts Markdown into the HTML fragment placed inside
// the rendered page.
//
// Stages:
//   - line ending normalization
//   - Markdown to HTML via goldmark (GFM tables, strikethrough, task lists,
//     autolinks, footnotes)
//   - fenced code highlighting via chroma, emitted as CSS classes
//
// HighlightCSS returns the matching chroma stylesheet for both color
// schemes. Page assembly and rendering live in the root mdview package.
package pipeline
