// Package lessonbook turns historical Sabbath School lesson markdown into
// print-ready booklets using headless Chrome.
//
// # Quick Start
//
//	conv, err := lessonbook.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, lessonbook.Input{
//	    Markdown: source,
//	    Year:     2025,
//	    Quarter:  "q2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("lessons.pdf", result.PDF, 0644)
//
// The result holds the PDF and the intermediate HTML. Set Input.HTMLOnly
// to skip PDF generation.
//
// # Conversion Pipeline
//
//  1. Source cleanup (line endings, Unicode NFC, blank lines)
//  2. Lesson parsing: file sections, lesson blocks, questions, notes
//  3. Optional reproduction: renumbering and weekly dates for a new quarter
//  4. Booklet rendering: cover, table of contents, lessons, blank-page
//     padding, back cover
//  5. Theme CSS injection and PDF rendering via go-rod
//
// # Reproduction
//
// A lesson set from an old quarterly can be reissued for a new quarter:
//
//	conv.Convert(ctx, lessonbook.Input{
//	    Markdown:  source,
//	    Year:      2025,
//	    Quarter:   "q2",
//	    Reproduce: &lessonbook.Reproduction{
//	        SourceYear:       1905,
//	        SourceQuarter:    "q2",
//	        QuarterStartDate: "2025-04-05",
//	    },
//	})
//
// # Parallel Processing
//
// ConverterPool manages several converters, one browser each:
//
//	pool := lessonbook.NewConverterPool(lessonbook.ResolvePoolSize(0))
//	defer pool.Close()
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run. In containers set ROD_NO_SANDBOX=1, and
// ROD_BROWSER_BIN to use an installed binary.
package lessonbook
