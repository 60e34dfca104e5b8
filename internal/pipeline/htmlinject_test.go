package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	const css = ":root { --text-primary: #3c1815; }"
	style := "<style>" + css + "</style>"

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: "<html><head><title>Q2</title></head><body></body></html>",
			css:  css,
			want: "<html><head><title>Q2</title>" + style + "</head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  css,
			want: "<HTML><HEAD>" + style + "</HEAD></HTML>",
		},
		{
			name: "after body without head",
			html: `<body class="booklet"><p>x</p></body>`,
			css:  css,
			want: `<body class="booklet">` + style + `<p>x</p></body>`,
		},
		{
			name: "fragment gets prefix",
			html: "<p>x</p>",
			css:  css,
			want: style + "<p>x</p>",
		},
		{
			name: "empty css",
			html: "<p>x</p>",
			css:  "",
			want: "<p>x</p>",
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSSInjection_CannotCloseStyle(t *testing.T) {
	t.Parallel()

	got := (&CSSInjection{}).InjectCSS(context.Background(), "<head></head>", "a{}</style><script>x</script>")
	if strings.Count(got, "</style>") != 1 {
		t.Errorf("InjectCSS() = %q, injected CSS closed the style block", got)
	}
}

func TestCSSInjection_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "<head></head>"
	if got := (&CSSInjection{}).InjectCSS(ctx, input, "a{}"); got != input {
		t.Errorf("InjectCSS() = %q, want input unchanged", got)
	}
}
