// Package assets provides CSS print styles for notebook PDF generation.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in print styles embedded at compile time.
//
// FilesystemLoader allows users to provide custom styles from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the converter. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the style
// is not found. This enables overriding specific styles while keeping defaults.
//
// # Directory Structure
//
// Styles live in a styles/ subdirectory of the base path:
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css           # CSS print styles (e.g., notebook.css)
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
