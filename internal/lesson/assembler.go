package lesson

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// fileMarker matches "# File: name" followed by a "#----" separator line.
	fileMarker = regexp.MustCompile(`(?m)^# File:[ \t]*(.+?)[ \t]*\r?\n#-+[ \t]*(?:\r?\n|$)`)

	// lessonMarker matches the start of a lesson block.
	lessonMarker = regexp.MustCompile(`(?im)^#[ \t]*lesson[ \t]+\d+`)
)

// FileSections is a combined source split by file markers.
type FileSections struct {
	Lessons     string   // concatenated lesson bodies
	FrontMatter string   // body of the front-matter file
	BackMatter  string   // body of the back-matter file
	Files       []string // file names in source order
}

// SplitFileSections splits content tagged with "# File: <name>" markers.
// Bodies of files whose name contains "week-" or "lesson-" are concatenated,
// separated by blank lines. Content without any marker is treated as a single
// lesson body.
func SplitFileSections(content string) FileSections {
	var fs FileSections

	locs := fileMarker.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		fs.Lessons = content
		return fs
	}

	var lessons strings.Builder
	for i, loc := range locs {
		name := content[loc[2]:loc[3]]
		bodyEnd := len(content)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := content[loc[1]:bodyEnd]
		fs.Files = append(fs.Files, name)

		lower := strings.ToLower(strings.TrimSpace(name))
		switch {
		case strings.Contains(lower, "front-matter"):
			fs.FrontMatter = strings.TrimSpace(body)
		case strings.Contains(lower, "back-matter"):
			fs.BackMatter = strings.TrimSpace(body)
		case strings.Contains(lower, "week-"), strings.Contains(lower, "lesson-"):
			lessons.WriteString(body)
			lessons.WriteString("\n\n")
		}
	}
	fs.Lessons = lessons.String()
	return fs
}

// SplitLessonBlocks cuts body before every "# LESSON n" line (any case).
// Text ahead of the first marker is returned as the first block; it carries
// no lesson header and ClassifyBlock rejects it. Empty blocks are dropped.
func SplitLessonBlocks(body string) []string {
	starts := lessonMarker.FindAllStringIndex(body, -1)
	bounds := make([]int, 0, len(starts)+2)
	bounds = append(bounds, 0)
	for _, s := range starts {
		if s[0] != 0 {
			bounds = append(bounds, s[0])
		}
	}
	bounds = append(bounds, len(body))

	blocks := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		if block := strings.TrimSpace(body[bounds[i]:bounds[i+1]]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// ParseLessons classifies every lesson block in body, in source order.
// Blocks without a recognizable header are skipped.
func ParseLessons(body string, opts ...Option) []Lesson {
	cfg := newParseConfig(opts)
	return parseBlocks(SplitLessonBlocks(body), cfg)
}

// Parse turns a combined source document into a Document. It never fails:
// unparseable blocks are skipped and reproduction problems become warnings.
func Parse(content string, opts ...Option) *Document {
	cfg := newParseConfig(opts)

	sections := SplitFileSections(content)
	doc := &Document{
		Lessons:     parseBlocks(SplitLessonBlocks(sections.Lessons), cfg),
		FrontMatter: sections.FrontMatter,
		BackMatter:  sections.BackMatter,
		Metadata:    map[string]string{},
	}

	if cfg.reproduction != nil {
		if err := Reproduce(doc.Lessons, *cfg.reproduction); err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("lesson dates not adjusted: %v", err))
		}
	}

	return doc
}

// parseBlocks classifies blocks sequentially or, when configured, in
// parallel. Results are slotted by block index, so both paths produce the
// same order.
func parseBlocks(blocks []string, cfg *parseConfig) []Lesson {
	results := make([]Lesson, len(blocks))
	ok := make([]bool, len(blocks))

	if cfg.parallel > 1 && len(blocks) > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.parallel)
		for i, block := range blocks {
			g.Go(func() error {
				results[i], ok[i] = ClassifyBlock(block, cfg.windows)
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
	} else {
		for i, block := range blocks {
			results[i], ok[i] = ClassifyBlock(block, cfg.windows)
		}
	}

	lessons := make([]Lesson, 0, len(blocks))
	for i := range results {
		if ok[i] {
			lessons = append(lessons, results[i])
		}
	}
	return lessons
}
