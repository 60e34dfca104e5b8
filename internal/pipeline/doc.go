// Package pipeline renders a parsed lesson document to a print-ready HTML
// booklet.
//
// The stages are:
//   - Markdown preprocessing (line endings, Unicode normalization, blank lines)
//   - Prose fragments (front matter, notes, extra sections) via Goldmark
//   - Booklet assembly from html/template sections with page planning
//   - CSS injection and relative path rewriting
//
// Page planning is an estimate made from explicit page-break markers: each
// major section starts on an odd page and the booklet is padded with blank
// pages so that, back cover included, its page count is a multiple of four.
//
// PDF generation is handled by the root lessonbook package using headless
// Chrome (go-rod).
package pipeline
