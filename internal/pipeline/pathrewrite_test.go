package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteImagePaths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	abs, err := filepath.Abs(base)
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	prefix := pathToFileURL(abs)

	tests := []struct {
		name    string
		input   string
		want    string
		notWant string
	}{
		{
			name:  "front matter image",
			input: `<p><img src="images/pioneers.png" alt="Pioneers"/></p>`,
			want:  `src="` + prefix + `/images/pioneers.png"`,
		},
		{
			name:  "svg image href",
			input: `<svg><image href="art/sunrise.jpg"></image></svg>`,
			want:  `href="` + prefix + `/art/sunrise.jpg"`,
		},
		{
			name:  "svg image xlink href",
			input: `<svg xmlns:xlink="http://www.w3.org/1999/xlink"><image xlink:href="art/lake.jpg"></image></svg>`,
			want:  prefix + `/art/lake.jpg`,
		},
		{
			name:    "remote url untouched",
			input:   `<img src="https://example.com/a.png"/>`,
			want:    `src="https://example.com/a.png"`,
			notWant: "file://",
		},
		{
			name:    "data uri untouched",
			input:   `<img src="data:image/png;base64,AAAA"/>`,
			notWant: "file://",
		},
		{
			name:    "traversal left alone",
			input:   `<img src="../../etc/passwd"/>`,
			want:    `src="../../etc/passwd"`,
			notWant: "file://",
		},
		{
			name:    "links are not rewritten",
			input:   `<a href="notes.md">notes</a>`,
			want:    `href="notes.md"`,
			notWant: "file://",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteImagePaths(tt.input, base)
			if err != nil {
				t.Fatalf("RewriteImagePaths() error = %v", err)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want it to contain %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("got %q, should not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestRewriteImagePaths_EmptyBaseDir(t *testing.T) {
	t.Parallel()

	input := `<img src="cover.png">`
	got, err := RewriteImagePaths(input, "")
	if err != nil {
		t.Fatalf("RewriteImagePaths() error = %v", err)
	}
	if got != input {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestRewriteImagePaths_FullDocument(t *testing.T) {
	t.Parallel()

	input := "<!DOCTYPE html><html><head><title>Q2 1888</title></head><body><img src=\"a.png\"></body></html>"
	got, err := RewriteImagePaths(input, t.TempDir())
	if err != nil {
		t.Fatalf("RewriteImagePaths() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost: %q", got)
	}
	if !strings.Contains(got, "<title>Q2 1888</title>") || !strings.Contains(got, "file://") {
		t.Errorf("unexpected document: %q", got)
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"":                      false,
		"#lesson-1":             false,
		"//cdn.example.com/x":   false,
		"http://example.com":    false,
		"https://example.com":   false,
		"file:///tmp/a.png":     false,
		"data:image/png;base64": false,
		"/abs/a.png":            false,
		"images/a.png":          true,
		"./a.png":               true,
	}
	for in, want := range tests {
		if got := isRelativePath(in); got != want {
			t.Errorf("isRelativePath(%q) = %v, want %v", in, got, want)
		}
	}
}
