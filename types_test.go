package lessonbook

import (
	"errors"
	"testing"
	"time"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ps      *PageSettings
		wantErr error
	}{
		{name: "nil is valid (use defaults)", ps: nil},
		{name: "defaults", ps: DefaultPageSettings()},
		{name: "case insensitive size", ps: &PageSettings{Size: "Booklet", Margin: 0.5}},
		{name: "margin at minimum", ps: &PageSettings{Size: PageSizeA4, Margin: MinMargin}},
		{name: "margin at maximum", ps: &PageSettings{Size: PageSizeLegal, Margin: MaxMargin}},
		{name: "unknown size", ps: &PageSettings{Size: "tabloid", Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "empty size", ps: &PageSettings{Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "margin too small", ps: &PageSettings{Size: PageSizeLetter, Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", ps: &PageSettings{Size: PageSizeLetter, Margin: 3.5}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ps.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	var nilPage *PageSettings
	if w, h := nilPage.dimensions(); w != 8.5 || h != 11 {
		t.Errorf("nil dimensions = %vx%v, want letter", w, h)
	}
	if w, h := (&PageSettings{Size: "A4"}).dimensions(); w != 8.27 || h != 11.69 {
		t.Errorf("a4 dimensions = %vx%v", w, h)
	}
}

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	valid := Input{Markdown: "# LESSON 1", Year: 1905, Quarter: "q2"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	upper := valid
	upper.Quarter = "Q4"
	if err := upper.Validate(); err != nil {
		t.Errorf("quarter should be case-insensitive: %v", err)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c := &Converter{}
	WithTimeout(time.Minute)(c)
	WithAssetPath("/srv/assets")(c)
	WithWindows(12, 6, 0, 3)(c)
	WithParallelParsing(4)(c)
	WithLogger(nil)(c)

	if c.cfg.timeout != time.Minute {
		t.Errorf("timeout = %v", c.cfg.timeout)
	}
	if c.cfg.assetPath != "/srv/assets" {
		t.Errorf("assetPath = %q", c.cfg.assetPath)
	}
	if c.cfg.windows.Title != 12 || c.cfg.windows.Date != 6 || c.cfg.windows.Location != 0 || c.cfg.windows.List != 3 {
		t.Errorf("windows = %+v", c.cfg.windows)
	}
	if c.cfg.parallel != 4 {
		t.Errorf("parallel = %d", c.cfg.parallel)
	}
	if c.log != nil {
		t.Error("nil logger should be ignored")
	}
}
