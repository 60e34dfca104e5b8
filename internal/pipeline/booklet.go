package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-lessonbook/internal/lesson"
)

// Sentinel errors for booklet rendering.
var (
	ErrNoDocument      = errors.New("no lesson document to render")
	ErrTemplateMissing = errors.New("booklet template missing")
	ErrBookletRender   = errors.New("booklet template rendering failed")
)

// Template names a booklet template set must define.
const (
	TemplateDocument    = "document"
	TemplateCover       = "cover"
	TemplateFrontMatter = "front-matter"
	TemplateTOC         = "toc"
	TemplateLesson      = "lesson"
	TemplateBackMatter  = "back-matter"
	TemplateBackCover   = "back-cover"
	TemplateBlankPage   = "blank-page"
)

var requiredTemplates = []string{
	TemplateDocument, TemplateCover, TemplateFrontMatter, TemplateTOC,
	TemplateLesson, TemplateBackMatter, TemplateBackCover, TemplateBlankPage,
}

// Title length thresholds (in characters) for the lesson header layout.
const (
	shortTitleMax = 31
	longTitleMin  = 58
)

// tocRowsPerPage is how many lessons fit on one table of contents page.
const tocRowsPerPage = 18

// Labels are the translated strings printed in the booklet.
type Labels struct {
	SabbathSchool   string
	Lessons         string
	Questions       string
	Notes           string
	Note            string
	AnswerPrefix    string
	TableOfContents string
	LessonColumn    string
	TitleColumn     string
	DateColumn      string
	PageColumn      string
	AdaptedFrom     string
	From            string
	QuarterNames    map[string]string
	QuarterMonths   map[string]string
}

// CoverData describes the front cover.
type CoverData struct {
	SVG           string // custom cover markup; empty uses the built-in cover
	Title         string
	QuarterName   string
	QuarterMonths string
	Year          int
	Attribution   string // e.g. "Adapted from Second Quarter, 1905"
}

// BookletData is the input of BookletRenderer.Render.
type BookletData struct {
	Title        string
	Language     string
	Labels       Labels
	Cover        CoverData
	BackCoverSVG string
	Document     *lesson.Document
}

// BookletRenderer turns a lesson document into a complete HTML booklet.
type BookletRenderer struct {
	tmpl *template.Template
	md   FragmentConverter
}

// NewBookletRenderer parses tmplContent, which must define every booklet
// template, and renders prose with md.
func NewBookletRenderer(tmplContent string, md FragmentConverter) (*BookletRenderer, error) {
	tmpl, err := template.New("booklet").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing booklet template: %w", err)
	}
	for _, name := range requiredTemplates {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %q", ErrTemplateMissing, name)
		}
	}
	return &BookletRenderer{tmpl: tmpl, md: md}, nil
}

// Render lays out cover, front matter, table of contents, lessons, back
// matter, padding and back cover, and returns the HTML document.
func (r *BookletRenderer) Render(ctx context.Context, data *BookletData) (string, error) {
	if data == nil || data.Document == nil {
		return "", ErrNoDocument
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	blank, err := r.exec(TemplateBlankPage, nil)
	if err != nil {
		return "", err
	}
	plan := newPagePlan(blank)

	cover, err := r.exec(TemplateCover, coverView{CoverData: data.Cover, Labels: data.Labels, SVG: trusted(data.Cover.SVG)})
	if err != nil {
		return "", err
	}
	plan.add(cover, true, countPages(cover))

	if data.Document.FrontMatter != "" {
		front, err := r.proseSection(ctx, TemplateFrontMatter, data.Document.FrontMatter)
		if err != nil {
			return "", err
		}
		plan.add(front, true, countPages(front))
	}

	lessons, rendered, err := r.renderLessons(ctx, data)
	if err != nil {
		return "", err
	}

	// Lesson pages are known before the contents page is rendered.
	tocPages := max(1, (len(lessons)+tocRowsPerPage-1)/tocRowsPerPage)
	tocStart := plan.startPage(true)
	page := tocStart + tocPages
	if page%2 == 0 {
		page++
	}
	rows := make([]tocRow, len(lessons))
	for i, l := range lessons {
		rows[i] = tocRow{ID: l.ID, Number: l.Number, Title: l.Title, Date: l.Date, Page: page}
		page += countPages(rendered[i])
	}

	toc, err := r.exec(TemplateTOC, tocView{Labels: data.Labels, Rows: rows})
	if err != nil {
		return "", err
	}
	plan.add(toc, true, tocPages)

	var main strings.Builder
	main.WriteString(strings.Join(rendered, "\n"))
	if data.Document.BackMatter != "" {
		back, err := r.proseSection(ctx, TemplateBackMatter, data.Document.BackMatter)
		if err != nil {
			return "", err
		}
		main.WriteString("\n")
		main.WriteString(back)
	}
	mainHTML := main.String()
	plan.add(mainHTML, true, countPages(mainHTML))

	reserve := 0
	if data.BackCoverSVG != "" {
		reserve = 1
	}
	plan.padTo(BookletMultiple, reserve)

	if data.BackCoverSVG != "" {
		backCover, err := r.exec(TemplateBackCover, struct{ SVG template.HTML }{trusted(data.BackCoverSVG)})
		if err != nil {
			return "", err
		}
		plan.add(backCover, false, 1)
	}

	return r.exec(TemplateDocument, documentView{
		Title:    data.Title,
		Language: data.Language,
		Pages:    plan.used(),
		Body:     trusted(plan.String()),
	})
}

// renderLessons renders every lesson section and returns the views used.
func (r *BookletRenderer) renderLessons(ctx context.Context, data *BookletData) ([]lessonView, []string, error) {
	lessons := data.Document.Lessons
	views := make([]lessonView, len(lessons))
	rendered := make([]string, len(lessons))

	for i := range lessons {
		v, err := r.lessonView(ctx, &lessons[i], data.Labels)
		if err != nil {
			return nil, nil, err
		}
		out, err := r.exec(TemplateLesson, lessonPage{Labels: data.Labels, Lesson: v})
		if err != nil {
			return nil, nil, err
		}
		views[i] = v
		rendered[i] = out
	}
	return views, rendered, nil
}

// lessonView prepares one lesson for the lesson template.
func (r *BookletRenderer) lessonView(ctx context.Context, l *lesson.Lesson, labels Labels) (lessonView, error) {
	v := lessonView{
		ID:         "lesson-" + l.Number,
		Number:     l.Number,
		Title:      l.Title,
		TitleClass: titleClass(l.Title),
		Date:       l.Date,
		Location:   l.Location,
		References: l.References,
	}

	var err error
	if v.Preliminary, err = r.md.ToFragment(ctx, l.PreliminaryNote); err != nil {
		return v, err
	}

	for _, g := range l.QuestionsBySection() {
		name := g.Name
		if name == lesson.DefaultQuestionSection && labels.Questions != "" {
			name = labels.Questions
		}
		group := questionGroupView{Name: name}
		for i, q := range g.Questions {
			group.Questions = append(group.Questions, questionView{
				Number:    i + 1,
				TwoDigit:  i+1 >= 10,
				Text:      lesson.NormalizePunctuation(q.Text),
				Scripture: withPeriod(q.Scripture),
				Answer:    q.Answer,
			})
		}
		v.Groups = append(v.Groups, group)
	}

	for _, s := range l.AdditionalSections {
		content, err := r.md.ToFragment(ctx, s.Content)
		if err != nil {
			return v, err
		}
		v.Additional = append(v.Additional, sectionView{Title: s.Title, Content: content})
	}

	if l.Notes != "" {
		if v.Notes, err = r.md.ToFragment(ctx, IndentNoteContinuations(l.Notes)); err != nil {
			return v, err
		}
		v.NotesHeader = labels.Notes
		if isSingleParagraph(string(v.Notes)) && labels.Note != "" {
			v.NotesHeader = labels.Note
		}
	}
	return v, nil
}

// proseSection converts markdown and renders it with the named template.
func (r *BookletRenderer) proseSection(ctx context.Context, name, content string) (string, error) {
	frag, err := r.md.ToFragment(ctx, content)
	if err != nil {
		return "", err
	}
	return r.exec(name, struct{ Content template.HTML }{frag})
}

func (r *BookletRenderer) exec(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrBookletRender, name, err)
	}
	return buf.String(), nil
}

// titleClass picks the header layout for a lesson title by length.
func titleClass(title string) string {
	switch n := utf8.RuneCountInString(title); {
	case n >= longTitleMin:
		return "long"
	case n <= shortTitleMax:
		return "short"
	default:
		return ""
	}
}

// withPeriod ends a scripture reference with a period.
func withPeriod(s string) string {
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// isSingleParagraph reports whether rendered notes are one plain paragraph.
func isSingleParagraph(fragment string) bool {
	return strings.Count(fragment, "</p>") == 1 && !strings.Contains(fragment, "<li")
}

// trusted marks markup produced by this package or read from local
// configuration files as safe for the templates.
func trusted(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- local, operator-supplied markup
}

type documentView struct {
	Title    string
	Language string
	Pages    int
	Body     template.HTML
}

type coverView struct {
	CoverData
	Labels Labels
	SVG    template.HTML
}

type tocView struct {
	Labels Labels
	Rows   []tocRow
}

type tocRow struct {
	ID     string
	Number string
	Title  string
	Date   string
	Page   int
}

type lessonPage struct {
	Labels Labels
	Lesson lessonView
}

type lessonView struct {
	ID          string
	Number      string
	Title       string
	TitleClass  string
	Date        string
	Location    string
	References  string
	Preliminary template.HTML
	Groups      []questionGroupView
	Additional  []sectionView
	NotesHeader string
	Notes       template.HTML
}

type questionGroupView struct {
	Name      string
	Questions []questionView
}

type questionView struct {
	Number    int
	TwoDigit  bool
	Text      string
	Scripture string
	Answer    string
}

type sectionView struct {
	Title   string
	Content template.HTML
}

// QuarterLabel returns the translated name for a quarter code, or a generic
// "Quarter N" when the translation is missing.
func (l Labels) QuarterLabel(quarter string) string {
	q := strings.ToLower(quarter)
	if name, ok := l.QuarterNames[q]; ok && name != "" {
		return name
	}
	if len(q) == 2 {
		if n, err := strconv.Atoi(q[1:]); err == nil {
			return "Quarter " + strconv.Itoa(n)
		}
	}
	return quarter
}
