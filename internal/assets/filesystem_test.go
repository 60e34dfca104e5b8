package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates base/dir/file with content.
func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()
		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()
		if _, err := NewFilesystemLoader("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeAsset(t, dir, ".", "theme.yaml", "text: {}")
		if _, err := NewFilesystemLoader(filepath.Join(dir, "theme.yaml")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "plain.css", "body { color: black; }")
	writeAsset(t, dir, "templates", "plain.html", `{{define "document"}}{{end}}`)
	writeAsset(t, dir, "themes", "slate.yaml", "text:\n  primary: '#222'\n")
	writeAsset(t, dir, "languages", "de.yaml", "notes: NOTIZEN\n")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{name: "style", load: loader.LoadStyle, asset: "plain", want: "body { color: black; }"},
		{name: "template", load: loader.LoadTemplate, asset: "plain", want: `{{define "document"}}{{end}}`},
		{name: "theme", load: loader.LoadTheme, asset: "slate", want: "text:\n  primary: '#222'\n"},
		{name: "language", load: loader.LoadLanguage, asset: "de", want: "notes: NOTIZEN\n"},
		{name: "missing style", load: loader.LoadStyle, asset: "other", wantErr: ErrStyleNotFound},
		{name: "missing theme", load: loader.LoadTheme, asset: "other", wantErr: ErrThemeNotFound},
		{name: "missing language", load: loader.LoadLanguage, asset: "pt", wantErr: ErrLanguageNotFound},
		{name: "invalid name", load: loader.LoadTheme, asset: "../slate", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, ".", "secret.yaml", "text:\n  primary: '#000'\n")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "themes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(base, "themes", "escape.yaml")
	if err := os.Symlink(filepath.Join(outside, "secret.yaml"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadTheme("escape"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTheme() error = %v, want ErrPathTraversal", err)
	}
}
