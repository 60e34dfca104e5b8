package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

type quarterConfig struct {
	Year    int    `yaml:"year"`
	Quarter string `yaml:"quarter"`
	Title   string `yaml:"title"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "valid document", data: []byte("year: 1888\nquarter: q2\ntitle: The Sanctuary"), dest: &quarterConfig{}},
		{name: "nil data", data: nil, dest: &quarterConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &quarterConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("year: 1888"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			cfg := tt.dest.(*quarterConfig)
			if cfg.Year != 1888 || cfg.Quarter != "q2" || cfg.Title != "The Sanctuary" {
				t.Errorf("Unmarshal() = %+v", cfg)
			}
		})
	}
}

func TestUnmarshal_SyntaxErrorIsWrapped(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("year: [unclosed"), &quarterConfig{})
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error %q should carry package prefix", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		t.Parallel()
		var cfg quarterConfig
		if err := yamlutil.UnmarshalStrict([]byte("year: 1900\nquarter: q1"), &cfg); err != nil {
			t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		var cfg quarterConfig
		if err := yamlutil.UnmarshalStrict([]byte("year: 1900\nsemester: 2"), &cfg); err == nil {
			t.Error("UnmarshalStrict() should reject unknown field")
		}
	})
}

func TestUnmarshalOrdered(t *testing.T) {
	t.Parallel()

	data := []byte(`{"1888": {"Q2": ["a.md"]}, "1860": {"Q1": []}, "1875": {}}`)
	entries, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		t.Fatalf("UnmarshalOrdered() unexpected error: %v", err)
	}

	want := []string{"1888", "1860", "1875"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, key := range want {
		if entries[i].Key != key {
			t.Errorf("entries[%d].Key = %q, want %q", i, entries[i].Key, key)
		}
	}
}

func TestUnmarshalOrdered_Empty(t *testing.T) {
	t.Parallel()

	if _, err := yamlutil.UnmarshalOrdered(nil); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("UnmarshalOrdered(nil) error = %v, want ErrNilData", err)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	original := quarterConfig{Year: 1912, Quarter: "q3", Title: "Acts"}
	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var decoded quarterConfig
	if err := yamlutil.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.MarshalJSON(quarterConfig{Year: 1912, Quarter: "q3"})
	if err != nil {
		t.Fatalf("MarshalJSON() unexpected error: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("MarshalJSON() = %q, want JSON object", out)
	}
	if !strings.Contains(out, `"quarter": "q3"`) && !strings.Contains(out, `"quarter":"q3"`) {
		t.Errorf("MarshalJSON() = %q, missing quarter field", out)
	}
}

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 16
	err := yamlutil.Unmarshal([]byte("title: "+strings.Repeat("x", 32)), &quarterConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}
