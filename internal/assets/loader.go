package assets

// Built-in asset names.
const (
	DefaultStyleName    = "booklet"
	DefaultTemplateName = "booklet"
	DefaultThemeName    = "burgundy"
	DefaultLanguage     = "en"
)

// AssetLoader defines the contract for loading booklet assets by name.
// Names never include the directory or extension.
type AssetLoader interface {
	// LoadStyle loads a CSS style. Returns ErrStyleNotFound if missing.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template. Returns ErrTemplateNotFound if missing.
	LoadTemplate(name string) (string, error)

	// LoadTheme loads raw theme YAML. Returns ErrThemeNotFound if missing.
	LoadTheme(name string) (string, error)

	// LoadLanguage loads raw translation YAML. Returns ErrLanguageNotFound if missing.
	LoadLanguage(code string) (string, error)
}

// assetKind locates one family of assets under a base directory.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	themeKind    = assetKind{dir: "themes", ext: ".yaml", notFound: ErrThemeNotFound}
	languageKind = assetKind{dir: "languages", ext: ".yaml", notFound: ErrLanguageNotFound}
)
