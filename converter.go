package lessonbook

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-lessonbook/internal/assets"
	"github.com/alnah/go-lessonbook/internal/fileutil"
	"github.com/alnah/go-lessonbook/internal/lesson"
	"github.com/alnah/go-lessonbook/internal/logger"
	"github.com/alnah/go-lessonbook/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LessonPreprocessor)(nil)
	_ pipeline.FragmentConverter    = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// DefaultTitle is printed on the cover when Input.Title is empty.
const DefaultTitle = "Sabbath School Lessons"

// Converter orchestrates the lesson-to-booklet pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
type Converter struct {
	cfg          converterConfig
	log          *logger.Logger
	assetLoader  assets.AssetLoader
	style        string
	preprocessor pipeline.MarkdownPreprocessor
	fragments    pipeline.FragmentConverter
	renderer     *pipeline.BookletRenderer
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		log:          logger.Nop(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.LessonPreprocessor{},
		fragments:    pipeline.NewGoldmarkConverter(),
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	style, err := c.assetLoader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading booklet style: %w", err)
	}
	c.style = style

	tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading booklet template: %w", err)
	}
	if c.renderer, err = pipeline.NewBookletRenderer(tmpl, c.fragments); err != nil {
		return nil, fmt.Errorf("initializing booklet renderer: %w", err)
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// Parse preprocesses and parses lesson markdown without rendering it.
func (c *Converter) Parse(ctx context.Context, markdown string, r *Reproduction) (*lesson.Document, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	content := c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := lesson.Parse(content, c.parseOptions(r)...)
	for _, w := range doc.Warnings {
		c.log.Warn(w)
	}
	return doc, nil
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	quarter := strings.ToLower(input.Quarter)

	doc, err := c.Parse(ctx, input.Markdown, input.Reproduce)
	if err != nil {
		return nil, err
	}
	if len(doc.Lessons) == 0 {
		return nil, ErrNoLessons
	}
	c.log.Info("parsed lessons", "count", len(doc.Lessons), "warnings", len(doc.Warnings))
	fillMetadata(doc, input)

	tr, err := assets.Translations(c.assetLoader, input.Language)
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	labels := pipeline.Labels(tr)

	themeCSS, err := c.themeCSS(input.Theme)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.renderer.Render(ctx, &pipeline.BookletData{
		Title:        documentTitle(input, labels),
		Language:     languageOrDefault(input.Language),
		Labels:       labels,
		Cover:        coverData(input, labels, quarter),
		BackCoverSVG: input.BackCoverSVG,
		Document:     doc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	// Theme variables first so the stylesheet can use them, page rule last
	// so it overrides the stylesheet default.
	css := themeCSS + "\n" + c.style + buildPageCSS(input.Page)
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteImagePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting image paths: %w", err)
		}
	}

	res := &Result{
		HTML:     []byte(htmlContent),
		Lessons:  len(doc.Lessons),
		Warnings: doc.Warnings,
	}
	if input.HTMLOnly {
		return res, nil
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	c.log.Debug("rendering PDF", "size", page.Size, "margin", page.Margin)
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

func (c *Converter) parseOptions(r *Reproduction) []lesson.Option {
	opts := []lesson.Option{lesson.WithWindows(c.cfg.windows)}
	if c.cfg.parallel > 1 {
		opts = append(opts, lesson.WithParallel(c.cfg.parallel))
	}
	if r != nil && r.QuarterStartDate != "" {
		opts = append(opts, lesson.WithReproduction(&lesson.Reproduction{
			QuarterStartDate: r.QuarterStartDate,
			DateFormat:       r.DateFormat,
		}))
	}
	return opts
}

// themeCSS resolves a theme name or YAML path to CSS custom properties.
func (c *Converter) themeCSS(nameOrPath string) (string, error) {
	var (
		theme assets.Theme
		err   error
	)
	switch {
	case nameOrPath == "":
		theme, err = assets.LoadTheme(c.assetLoader, assets.DefaultThemeName)
	case fileutil.IsFilePath(nameOrPath) || filepath.Ext(nameOrPath) != "":
		theme, err = assets.LoadThemeFile(nameOrPath)
	default:
		theme, err = assets.LoadTheme(c.assetLoader, nameOrPath)
	}
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrThemeLoad, nameOrPath, err)
	}
	return theme.CSS(), nil
}

// fillMetadata records the booklet identity on the document.
func fillMetadata(doc *lesson.Document, in Input) {
	doc.Metadata["year"] = fmt.Sprint(in.Year)
	doc.Metadata["quarter"] = strings.ToLower(in.Quarter)
	doc.Metadata["language"] = languageOrDefault(in.Language)
	doc.Metadata["title"] = titleOrDefault(in.Title)
	if r := in.Reproduce; r != nil && r.SourceYear > 0 {
		doc.Metadata["source_year"] = fmt.Sprint(r.SourceYear)
		doc.Metadata["source_quarter"] = strings.ToLower(r.SourceQuarter)
	}
}

// coverData builds the front cover. A reproduced booklet names the
// quarterly it was adapted from.
func coverData(in Input, labels pipeline.Labels, quarter string) pipeline.CoverData {
	cover := pipeline.CoverData{
		SVG:           in.FrontCoverSVG,
		Title:         titleOrDefault(in.Title),
		QuarterName:   labels.QuarterLabel(quarter),
		QuarterMonths: labels.QuarterMonths[quarter],
		Year:          in.Year,
	}
	if r := in.Reproduce; r != nil && r.SourceYear > 0 {
		cover.Attribution = fmt.Sprintf("%s %s, %d", labels.AdaptedFrom, labels.QuarterLabel(r.SourceQuarter), r.SourceYear)
	}
	return cover
}

// documentTitle is the HTML title, e.g. "Sabbath School Lessons (from 1905 Q2)".
func documentTitle(in Input, labels pipeline.Labels) string {
	title := titleOrDefault(in.Title)
	if r := in.Reproduce; r != nil && r.SourceYear > 0 {
		title = fmt.Sprintf("%s (%s %d %s)", title, labels.From, r.SourceYear, strings.ToUpper(r.SourceQuarter))
	}
	return title
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultTitle
	}
	return title
}

func languageOrDefault(lang string) string {
	if lang == "" {
		return assets.DefaultLanguage
	}
	return lang
}
