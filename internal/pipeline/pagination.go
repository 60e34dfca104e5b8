package pipeline

import "strings"

// PageBreakMarker is the attribute templates put on the element that ends a
// printed page. Page estimates count its occurrences.
const PageBreakMarker = "data-page-break"

// BookletMultiple is the page count a folded booklet must be divisible by.
const BookletMultiple = 4

// countPages estimates the printed pages of a section: one per page-break
// marker, and at least one.
func countPages(section string) int {
	return max(1, strings.Count(section, PageBreakMarker))
}

// pagePlan lays sections out on estimated pages, inserting blank pages so
// sections begin on the requested side.
type pagePlan struct {
	parts  []string
	next   int // next free page, 1-based
	blank  string
	blanks int
}

func newPagePlan(blank string) *pagePlan {
	return &pagePlan{next: 1, blank: blank}
}

// startPage reports where a section would begin without adding it.
func (p *pagePlan) startPage(startOdd bool) int {
	if (p.next%2 == 1) != startOdd {
		return p.next + 1
	}
	return p.next
}

// add places a section spanning pages pages, first padding so it starts on
// an odd page (startOdd) or an even one. It returns the first page used.
func (p *pagePlan) add(section string, startOdd bool, pages int) int {
	if p.startPage(startOdd) != p.next {
		p.addBlank()
	}
	start := p.next
	p.parts = append(p.parts, section)
	p.next += max(1, pages)
	return start
}

// padTo adds blank pages until the pages used so far plus reserve, the
// pages still to come, is a multiple of n.
func (p *pagePlan) padTo(n, reserve int) {
	for (p.used()+reserve)%n != 0 {
		p.addBlank()
	}
}

func (p *pagePlan) addBlank() {
	p.parts = append(p.parts, p.blank)
	p.next++
	p.blanks++
}

// used returns the number of pages laid out so far.
func (p *pagePlan) used() int {
	return p.next - 1
}

func (p *pagePlan) String() string {
	return strings.Join(p.parts, "\n")
}
