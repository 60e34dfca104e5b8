// Package assets provides the booklet stylesheet, HTML templates, color
// themes and label translations.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. A custom directory may
// override a single asset (for example a theme) while the rest still comes
// from the embedded defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/{name}.css        # booklet stylesheet
//	├── templates/{name}.html    # html/template definitions
//	├── themes/{name}.yaml       # color groups, rendered as CSS custom properties
//	└── languages/{code}.yaml    # label translations
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
