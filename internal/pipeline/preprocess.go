package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	numberedItem       = regexp.MustCompile(`^\s*\d+\.\s+`)
)

// byteOrderMark is stripped from the start of downloaded files.
const byteOrderMark = "\uFEFF"

// hardBreak is the markdown line break: two spaces before a newline.
const hardBreak = "  "

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LessonPreprocessor cleans raw lesson sources before parsing.
type LessonPreprocessor struct{}

// PreprocessMarkdown normalizes line endings and Unicode composition, drops
// trailing whitespace (keeping hard line breaks) and collapses runs of
// blank lines.
func (p *LessonPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = norm.NFC.String(content)
	content = trimTrailingSpace(content)
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}

// trimTrailingSpace drops spaces and tabs at line ends. A text line ending in
// two or more spaces keeps exactly two when another line follows, so goldmark
// still renders a hard break in front matter, back matter and notes.
func trimTrailingSpace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != "" && i < len(lines)-1 && strings.HasSuffix(line, hardBreak) {
			trimmed += hardBreak
		}
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}

// IndentNoteContinuations indents every line after the first numbered item
// that does not itself start an item, so that paragraphs between "1." and
// "2." stay inside one ordered list. Text ahead of the first item and content
// without numbered items are left alone.
func IndentNoteContinuations(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 1 {
		return content
	}

	inList := false
	for i, line := range lines {
		switch {
		case numberedItem.MatchString(line):
			inList = true
		case inList && strings.TrimSpace(line) != "":
			lines[i] = "\t" + line
		}
	}
	return strings.Join(lines, "\n")
}
