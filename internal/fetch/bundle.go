package fetch

import "strings"

// fileSeparator follows each "# File:" header line.
const fileSeparator = "#" + "----------------------------------------"

// Week is one downloaded lesson file.
type Week struct {
	ID      string
	Title   string
	Date    string
	Content string
}

// Bundle is a downloaded quarter.
type Bundle struct {
	FrontMatter string
	BackMatter  string
	Weeks       []Week
	Warnings    []string
}

// Combined joins the bundle into one source tagged with "# File:" headers,
// front matter first and back matter last.
func (b *Bundle) Combined() string {
	var sb strings.Builder
	writeFile := func(name, content string) {
		sb.WriteString("# File: ")
		sb.WriteString(name)
		sb.WriteString("\n")
		sb.WriteString(fileSeparator)
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(content, "\n"))
		sb.WriteString("\n\n")
	}

	if b.FrontMatter != "" {
		writeFile("front-matter.md", b.FrontMatter)
	}
	for _, w := range b.Weeks {
		writeFile(weekFileName(w.ID), w.Content)
	}
	if b.BackMatter != "" {
		writeFile("back-matter.md", b.BackMatter)
	}
	return sb.String()
}

// weekFileName names a week so the parser recognizes it as a lesson file.
func weekFileName(id string) string {
	lower := strings.ToLower(id)
	if !strings.Contains(lower, "week-") && !strings.Contains(lower, "lesson-") {
		id = "week-" + id
	}
	return id + ".md"
}
