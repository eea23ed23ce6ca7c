// Package assets provides the page template and stylesheets for rendered
// Markdown pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed styles and templates (built-in)
//	    ├── FilesystemLoader  - user directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// The renderer always goes through AssetResolver, so a user directory may
// override a single stylesheet or the page template and inherit the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # e.g. github.css, plain.css
//	└── templates/
//	    └── {name}.html    # e.g. page.html
//
// The page template carries three placeholders: {{BASE_TAG}}, {{CSS}} and
// {{CONTENT}}.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
