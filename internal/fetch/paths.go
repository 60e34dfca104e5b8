package fetch

import (
	"fmt"
	"strings"
)

// DefaultBaseURL serves raw files from the lessons repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/SabbathSchool/lessons/refs/heads/master"

// Paths holds the URLs of one quarter's files.
type Paths struct {
	Base        string
	Contents    string
	FrontMatter string
	BackMatter  string
}

// NewPaths builds the URLs for year/quarter/lang. An empty baseURL uses
// DefaultBaseURL.
func NewPaths(baseURL string, year int, quarter, lang string) Paths {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	decade := year / 10 * 10
	base := fmt.Sprintf("%s/%ds/%d/%s/%s",
		strings.TrimRight(baseURL, "/"), decade, year, strings.ToLower(quarter), lang)

	return Paths{
		Base:        base,
		Contents:    base + "/contents.json",
		FrontMatter: base + "/front-matter.md",
		BackMatter:  base + "/back-matter.md",
	}
}

// Week returns the URL of a week file.
func (p Paths) Week(id string) string {
	return p.Base + "/" + id + ".md"
}
