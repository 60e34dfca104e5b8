package lesson

import (
	"regexp"
	"strings"
)

// Default lookahead windows, in lines. Lesson layouts vary enough between
// decades that these are tunable through Windows rather than fixed.
const (
	// DefaultTitleWindow bounds the search for a "## Title" line after the header.
	DefaultTitleWindow = 10
	// DefaultDateWindow bounds the search for a standalone date line.
	DefaultDateWindow = 5
	// DefaultLocationWindow bounds the search for location/reference lines.
	DefaultLocationWindow = 4
	// DefaultListWindow bounds how far past a heading a numbered list may start
	// for the heading to count as a question section.
	DefaultListWindow = 4
)

// Windows holds the lookahead distances used by the classifier.
// Zero fields fall back to the defaults.
type Windows struct {
	Title    int `yaml:"title_window"`
	Date     int `yaml:"date_window"`
	Location int `yaml:"location_window"`
	List     int `yaml:"list_window"`
}

// DefaultWindows returns the default lookahead windows.
func DefaultWindows() Windows {
	return Windows{
		Title:    DefaultTitleWindow,
		Date:     DefaultDateWindow,
		Location: DefaultLocationWindow,
		List:     DefaultListWindow,
	}
}

func (w Windows) withDefaults() Windows {
	d := DefaultWindows()
	if w.Title <= 0 {
		w.Title = d.Title
	}
	if w.Date <= 0 {
		w.Date = d.Date
	}
	if w.Location <= 0 {
		w.Location = d.Location
	}
	if w.List <= 0 {
		w.List = d.List
	}
	return w
}

var (
	lessonHeader   = regexp.MustCompile(`(?i)^#\s*lesson\s+(\d+)(.*)$`)
	headerSep      = regexp.MustCompile(`^\s*[—–:.-]+\s*`)
	sectionHeading = regexp.MustCompile(`^#{2,3}\s+(.*?)\s*#*\s*$`)
	titleHeading   = regexp.MustCompile(`^##\s+(.*?)\s*$`)
	notesName      = regexp.MustCompile(`(?i)^notes?\.?$`)
	questionsName  = regexp.MustCompile(`(?i)^questions?\.?$`)
	locationLine   = regexp.MustCompile(`^\*\*([^*].*?)\*\*$`)
	referencesLine = regexp.MustCompile(`^[*_]\((.+)\)[*_]$`)
)

// state is a classifier stage. Stages run in declaration order.
type state int

const (
	stateHeader state = iota
	stateTitleSearch
	stateDateSearch
	stateLocationSearch
	statePreliminary
	stateSectionScan
	stateDone
)

var stateNames = [...]string{
	stateHeader:         "header",
	stateTitleSearch:    "title-search",
	stateDateSearch:     "date-search",
	stateLocationSearch: "location-search",
	statePreliminary:    "preliminary",
	stateSectionScan:    "section-scan",
	stateDone:           "done",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// sectionKind classifies the section opened by the most recent heading.
type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionQuestions
	sectionNotes
	sectionAdditional
)

// classifier holds the per-block parse state. One classifier serves exactly
// one lesson block; nothing is shared between blocks.
type classifier struct {
	lines  []string
	pos    int
	win    Windows
	state  state
	lesson *Lesson

	// seenNonQuestion latches once a notes or additional section opens.
	// After that, numbered lines are section content, never questions.
	seenNonQuestion bool

	kind            sectionKind
	heading         string
	questionSection string
	buf             []string
	pending         []string
}

func newClassifier(block string, w Windows) *classifier {
	block = strings.TrimSpace(strings.ReplaceAll(block, "\r\n", "\n"))
	return &classifier{
		lines:  strings.Split(block, "\n"),
		win:    w.withDefaults(),
		state:  stateHeader,
		lesson: newLesson(),
	}
}

// ClassifyBlock parses one lesson block. It reports false when the first
// line is not a lesson header with a number; such blocks carry no lesson.
func ClassifyBlock(block string, w Windows) (Lesson, bool) {
	c := newClassifier(block, w)
	if !c.run() {
		return Lesson{}, false
	}
	return *c.lesson, true
}

// run drives the state machine to completion.
func (c *classifier) run() bool {
	for c.state != stateDone {
		switch c.state {
		case stateHeader:
			if !c.parseHeader() {
				return false
			}
			c.pos = 1
			c.state = stateTitleSearch
		case stateTitleSearch:
			c.searchTitle()
			c.state = stateDateSearch
		case stateDateSearch:
			c.searchDate()
			c.state = stateLocationSearch
		case stateLocationSearch:
			c.searchLocation()
			c.state = statePreliminary
		case statePreliminary:
			c.collectPreliminary()
			c.state = stateSectionScan
		case stateSectionScan:
			if c.pos >= len(c.lines) {
				c.finish()
				c.state = stateDone
				continue
			}
			c.scanLine(c.lines[c.pos])
			c.pos++
		}
	}
	return true
}

// parseHeader reads the lesson number and any date or title after a dash.
func (c *classifier) parseHeader() bool {
	m := lessonHeader.FindStringSubmatch(strings.TrimSpace(c.lines[0]))
	if m == nil {
		return false
	}
	c.lesson.Number = m[1]

	loc := headerSep.FindStringIndex(m[2])
	if loc == nil {
		return true
	}
	rest := strings.TrimSpace(m[2][loc[1]:])

	if date, start, end, ok := FindDate(rest); ok {
		c.lesson.Date = date
		leftover := strings.Trim(rest[:start]+rest[end:], " \t,;:*_—–-")
		c.lesson.Title = leftover
		return true
	}
	c.lesson.Title = stripEmphasis(rest)
	return true
}

// searchTitle looks for a second-level heading when the header had no title.
func (c *classifier) searchTitle() {
	if c.lesson.Title != "" {
		return
	}
	end := min(c.pos+c.win.Title, len(c.lines))
	for i := c.pos; i < end; i++ {
		if m := titleHeading.FindStringSubmatch(c.lines[i]); m != nil {
			c.lesson.Title = stripEmphasis(m[1])
			c.pos = i + 1
			return
		}
	}
}

// searchDate looks for a standalone, possibly emphasized, date line. The
// search starts right after the header so a date placed above the title
// heading is still found. The cursor only moves past the date when nothing
// but blank lines precede it; otherwise the line is left for
// collectPreliminary to strip so the prose before it is kept.
func (c *classifier) searchDate() {
	if c.lesson.Date != "" {
		return
	}
	end := min(c.pos+c.win.Date, len(c.lines))
	for i := 1; i < end; i++ {
		date, ok := MatchDateLine(c.lines[i])
		if !ok {
			continue
		}
		c.lesson.Date = date
		if i >= c.pos && c.blankBetween(c.pos, i) {
			c.pos = i + 1
		}
		return
	}
}

// blankBetween reports whether lines [from, to) are all blank.
func (c *classifier) blankBetween(from, to int) bool {
	for _, line := range c.lines[from:to] {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// searchLocation picks up the bold location line and the emphasized,
// parenthesized reference line some layouts place under the date.
func (c *classifier) searchLocation() {
	end := min(c.pos+c.win.Location, len(c.lines))
	var location string
	last := -1
	for i := c.pos; i < end; i++ {
		line := strings.TrimSpace(c.lines[i])
		if line == "" {
			continue
		}
		if m := referencesLine.FindStringSubmatch(line); m != nil && c.lesson.References == "" {
			c.lesson.References = strings.TrimSpace(m[1])
			last = i
			continue
		}
		if m := locationLine.FindStringSubmatch(line); m != nil && location == "" && c.lesson.References == "" {
			location = strings.TrimSpace(m[1])
			continue
		}
		break
	}

	// A bold line only counts as a location when a reference line follows it.
	if c.lesson.References != "" {
		c.lesson.Location = location
	}
	if last >= 0 {
		c.pos = last + 1
	}
}

// collectPreliminary stores the lines before the first question section or
// numbered item as the preliminary note.
func (c *classifier) collectPreliminary() {
	for c.pos < len(c.lines) && strings.TrimSpace(c.lines[c.pos]) == "" {
		c.pos++
	}

	end, ok := c.preliminaryEnd()
	if !ok {
		return
	}

	note := strings.TrimSpace(strings.Join(c.lines[c.pos:end], "\n"))
	if c.lesson.Date == "" {
		if date, cleaned := ExtractDate(note); date != "" && cleaned != note {
			c.lesson.Date = date
			note = cleaned
		}
	} else {
		note = StripDateLines(note, c.lesson.Date)
	}

	c.lesson.PreliminaryNote = note
	c.pos = end
}

// preliminaryEnd finds where the preliminary span stops: at a numbered item
// with no heading directly above it, or at a heading whose section opens
// with a numbered list or is named QUESTIONS. A NOTES heading is not a
// boundary.
func (c *classifier) preliminaryEnd() (int, bool) {
	for i := c.pos; i < len(c.lines); i++ {
		line := c.lines[i]
		if isNumberedLine(line) {
			if h := c.prevNonBlank(i); h >= c.pos && isHeading(c.lines[h]) {
				return h, true
			}
			return i, true
		}
		if title, ok := headingText(line); ok {
			if c.listFollows(i) || questionsName.MatchString(title) {
				return i, true
			}
		}
	}
	return 0, false
}

// scanLine handles one line of the section scan.
func (c *classifier) scanLine(line string) {
	if title, ok := headingText(line); ok {
		c.flushQuestion()
		c.flushSection()
		c.openSection(title)
		return
	}

	if isNumberedLine(line) {
		if c.seenNonQuestion {
			c.buf = append(c.buf, line)
			return
		}
		c.flushQuestion()
		if c.kind != sectionQuestions {
			c.kind = sectionQuestions
			c.questionSection = DefaultQuestionSection
			c.lesson.addQuestionHeader(DefaultQuestionSection)
		}
		c.pending = []string{line}
		return
	}

	switch {
	case c.pending != nil:
		c.pending = append(c.pending, line)
	case c.kind != sectionNone:
		c.buf = append(c.buf, line)
	}
}

// openSection classifies the section introduced by a heading.
func (c *classifier) openSection(title string) {
	c.heading = title
	switch {
	case notesName.MatchString(title):
		c.kind = sectionNotes
		c.seenNonQuestion = true
	case !c.seenNonQuestion && (questionsName.MatchString(title) || c.listFollows(c.pos)):
		c.kind = sectionQuestions
		c.questionSection = title
		c.lesson.addQuestionHeader(title)
	default:
		c.kind = sectionAdditional
		c.seenNonQuestion = true
	}
}

// flushQuestion turns the in-progress numbered item into a Question.
func (c *classifier) flushQuestion() {
	if c.pending == nil {
		return
	}
	q := ParseQuestion(strings.Join(c.pending, "\n"), c.questionSection)
	c.lesson.Questions = append(c.lesson.Questions, q)
	c.pending = nil
}

// flushSection stores buffered content under the open section.
func (c *classifier) flushSection() {
	content := strings.TrimSpace(strings.Join(c.buf, "\n"))
	c.buf = nil

	switch c.kind {
	case sectionNotes:
		switch {
		case content == "":
		case c.lesson.Notes == "":
			c.lesson.Notes = content
		default:
			c.lesson.Notes += "\n\n" + content
		}
	case sectionAdditional:
		c.lesson.AdditionalSections = append(c.lesson.AdditionalSections, Section{
			Title:   c.heading,
			Content: content,
		})
	}
}

func (c *classifier) finish() {
	c.flushQuestion()
	c.flushSection()
	c.kind = sectionNone
}

// listFollows reports whether the first non-blank line after line i, within
// the list window, is a numbered item.
func (c *classifier) listFollows(i int) bool {
	end := min(i+1+c.win.List, len(c.lines))
	for j := i + 1; j < end; j++ {
		line := c.lines[j]
		if strings.TrimSpace(line) == "" {
			continue
		}
		return isNumberedLine(line)
	}
	return false
}

// prevNonBlank returns the index of the last non-blank line before i, or -1.
func (c *classifier) prevNonBlank(i int) int {
	for j := i - 1; j >= 0; j-- {
		if strings.TrimSpace(c.lines[j]) != "" {
			return j
		}
	}
	return -1
}

// headingText returns the text of a level 2 or 3 heading line.
func headingText(line string) (string, bool) {
	m := sectionHeading.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return stripEmphasis(m[1]), true
}

func isHeading(line string) bool {
	return sectionHeading.MatchString(line)
}
