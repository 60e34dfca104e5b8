package lesson

import "testing"

func TestFindDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "month day year", text: "Sabbath, January 12, 1895.", want: "January 12, 1895", wantOK: true},
		{name: "single digit day", text: "March 4, 1905", want: "March 4, 1905", wantOK: true},
		{name: "day month year", text: "held 20 May, 1905", want: "20 May, 1905", wantOK: true},
		{name: "numeric", text: "dated 5/20/1905", want: "5/20/1905", wantOK: true},
		{name: "first pattern wins over earlier text", text: "12/1/1905 or December 1, 1905", want: "December 1, 1905", wantOK: true},
		{name: "lowercase month is not a date", text: "january 5, 1905", wantOK: false},
		{name: "no date", text: "THE WORLDLY SANCTUARY", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, start, end, ok := FindDate(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("FindDate(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("FindDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if ok && tt.text[start:end] != got {
				t.Errorf("FindDate(%q) offsets [%d:%d] = %q, want %q", tt.text, start, end, tt.text[start:end], got)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		wantDate    string
		wantCleaned string
	}{
		{
			name:        "date on its own line is removed",
			text:        "Intro paragraph.\n\nMay 20, 1905\n\nMore text.",
			wantDate:    "May 20, 1905",
			wantCleaned: "Intro paragraph.\n\nMore text.",
		},
		{
			name:        "indented date line is removed",
			text:        "  May 20, 1905  \nBody",
			wantDate:    "May 20, 1905",
			wantCleaned: "Body",
		},
		{
			name:        "inline date is left in place",
			text:        "Studied on May 20, 1905 at home.",
			wantDate:    "May 20, 1905",
			wantCleaned: "Studied on May 20, 1905 at home.",
		},
		{
			name:        "no date returns input unchanged",
			text:        "  no dates here  ",
			wantDate:    "",
			wantCleaned: "  no dates here  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			date, cleaned := ExtractDate(tt.text)
			if date != tt.wantDate {
				t.Errorf("ExtractDate() date = %q, want %q", date, tt.wantDate)
			}
			if cleaned != tt.wantCleaned {
				t.Errorf("ExtractDate() cleaned = %q, want %q", cleaned, tt.wantCleaned)
			}
		})
	}
}

func TestMatchDateLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{line: "January 7, 1899", want: "January 7, 1899", wantOK: true},
		{line: "*January 7, 1899*", want: "January 7, 1899", wantOK: true},
		{line: "**January 7, 1899**", want: "January 7, 1899", wantOK: true},
		{line: "_7 January, 1899_", want: "7 January, 1899", wantOK: true},
		{line: "   1/7/1899 ", want: "1/7/1899", wantOK: true},
		{line: "January 7, 1899.", wantOK: false},
		{line: "Sabbath, January 7, 1899", wantOK: false},
		{line: "", wantOK: false},
		{line: "**", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, ok := MatchDateLine(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MatchDateLine(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStripDateLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		date string
		want string
	}{
		{
			name: "plain and emphasized lines removed",
			text: "First.\n\nMarch 4, 1905\n\nSecond.\n\n*March 4, 1905*",
			date: "March 4, 1905",
			want: "First.\n\nSecond.",
		},
		{
			name: "inline mention kept",
			text: "Written March 4, 1905 in Battle Creek.",
			date: "March 4, 1905",
			want: "Written March 4, 1905 in Battle Creek.",
		},
		{
			name: "other dates kept",
			text: "March 11, 1905",
			date: "March 4, 1905",
			want: "March 11, 1905",
		},
		{
			name: "empty date is a no-op",
			text: "March 4, 1905",
			date: "",
			want: "March 4, 1905",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripDateLines(tt.text, tt.date); got != tt.want {
				t.Errorf("StripDateLines() = %q, want %q", got, tt.want)
			}
		})
	}
}
