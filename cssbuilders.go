package lessonbook

import (
	"fmt"
	"strings"
)

// defaultFontFamily is the font stack for the PDF footer.
const defaultFontFamily = "Georgia, serif"

// buildPageCSS overrides the stylesheet's @page rule with the configured
// paper size and margin. Chrome honors it through PreferCSSPageSize.
func buildPageCSS(p *PageSettings) string {
	if p == nil {
		p = DefaultPageSettings()
	}
	width, height := p.dimensions()
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n@page {\n  size: %sin %sin;\n  margin: %sin;\n}\n",
		formatInches(width), formatInches(height), formatInches(p.Margin))
	if p.PageNumbers {
		// Chrome prints the footer inside the bottom margin.
		fmt.Fprintf(&sb, "@page {\n  margin-bottom: %sin;\n}\n", formatInches(p.Margin+footerExtraMargin))
	}
	return sb.String()
}

// formatInches prints a dimension without trailing zeros.
func formatInches(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
