package lesson

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"
)

const combinedQuarter = `# File: front-matter.md
#------------------------------
# The Sanctuary

A study for the first quarter.

# File: week-01.md
#------------------------------
# LESSON 1 — January 5, 1895

## THE SANCTUARY

1. What did God command? Ex. 25:8.

# File: week-02.md
#------------------------------
` + worldlySanctuary + `
# File: back-matter.md
#------------------------------
Printed by the Review and Herald.
`

func TestSplitFileSections(t *testing.T) {
	t.Parallel()

	got := SplitFileSections(combinedQuarter)

	wantFiles := []string{"front-matter.md", "week-01.md", "week-02.md", "back-matter.md"}
	if !slices.Equal(got.Files, wantFiles) {
		t.Errorf("Files = %q, want %q", got.Files, wantFiles)
	}
	if got.FrontMatter != "# The Sanctuary\n\nA study for the first quarter." {
		t.Errorf("FrontMatter = %q", got.FrontMatter)
	}
	if got.BackMatter != "Printed by the Review and Herald." {
		t.Errorf("BackMatter = %q", got.BackMatter)
	}
	if strings.Count(got.Lessons, "# LESSON") != 2 {
		t.Errorf("Lessons should hold both lesson bodies, got %q", got.Lessons)
	}
	if strings.Contains(got.Lessons, "Review and Herald") {
		t.Error("Lessons must not include back matter")
	}
}

func TestSplitFileSections_NoMarkers(t *testing.T) {
	t.Parallel()

	content := "# LESSON 1\n\n1. Q?"
	got := SplitFileSections(content)
	if got.Lessons != content {
		t.Errorf("Lessons = %q, want whole input", got.Lessons)
	}
	if got.FrontMatter != "" || got.BackMatter != "" || len(got.Files) != 0 {
		t.Errorf("unexpected sections: %+v", got)
	}
}

func TestSplitFileSections_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	content := "# File: contents.json\n#---\n{}\n# File: lesson-03.md\n#---\n# Lesson 3\n"
	got := SplitFileSections(content)
	if strings.Contains(got.Lessons, "{}") {
		t.Errorf("Lessons = %q, want contents.json skipped", got.Lessons)
	}
	if !strings.Contains(got.Lessons, "# Lesson 3") {
		t.Errorf("Lessons = %q, want lesson-03 body", got.Lessons)
	}
}

func TestSplitLessonBlocks(t *testing.T) {
	t.Parallel()

	body := "Quarter preface.\n\n# LESSON 1\nOne.\n# lesson 2 — Title\nTwo.\n#Lesson 3\nThree."
	got := SplitLessonBlocks(body)
	want := []string{
		"Quarter preface.",
		"# LESSON 1\nOne.",
		"# lesson 2 — Title\nTwo.",
		"#Lesson 3\nThree.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLessonBlocks() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	doc := Parse(combinedQuarter)

	if len(doc.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d, want 2", len(doc.Lessons))
	}
	if doc.Lessons[0].Number != "1" || doc.Lessons[1].Number != "2" {
		t.Errorf("numbers = %q, %q, want 1, 2", doc.Lessons[0].Number, doc.Lessons[1].Number)
	}
	if doc.Lessons[1].Title != "THE WORLDLY SANCTUARY" {
		t.Errorf("Lessons[1].Title = %q", doc.Lessons[1].Title)
	}
	if doc.FrontMatter == "" || doc.BackMatter == "" {
		t.Error("front and back matter should be populated")
	}
	if doc.Metadata == nil {
		t.Error("Metadata must never be nil")
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Warnings = %q, want none", doc.Warnings)
	}
}

func TestParse_SkipsMalformedBlocks(t *testing.T) {
	t.Parallel()

	doc := Parse("Stray text.\n# LESSON one\nBody.\n# LESSON 2\n## TITLE\n1. Q?")
	if len(doc.Lessons) != 1 || doc.Lessons[0].Number != "2" {
		t.Errorf("Lessons = %+v, want only lesson 2", doc.Lessons)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	doc := Parse("")
	if doc == nil {
		t.Fatal("Parse() = nil")
	}
	if len(doc.Lessons) != 0 {
		t.Errorf("len(Lessons) = %d, want 0", len(doc.Lessons))
	}
}

func TestParse_Reproduction(t *testing.T) {
	t.Parallel()

	t.Run("valid start date renumbers and redates", func(t *testing.T) {
		t.Parallel()

		doc := Parse(combinedQuarter, WithReproduction(&Reproduction{QuarterStartDate: "2025-04-05"}))
		if len(doc.Warnings) != 0 {
			t.Fatalf("Warnings = %q, want none", doc.Warnings)
		}
		if doc.Lessons[1].Date != "April 12, 2025" {
			t.Errorf("Lessons[1].Date = %q, want %q", doc.Lessons[1].Date, "April 12, 2025")
		}
		if doc.Lessons[1].OriginalDate != "January 12, 1895" {
			t.Errorf("Lessons[1].OriginalDate = %q", doc.Lessons[1].OriginalDate)
		}
	})

	t.Run("invalid start date keeps lessons and warns", func(t *testing.T) {
		t.Parallel()

		doc := Parse(combinedQuarter, WithReproduction(&Reproduction{QuarterStartDate: "April 1st"}))
		if len(doc.Lessons) != 2 {
			t.Fatalf("len(Lessons) = %d, want 2", len(doc.Lessons))
		}
		if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "April 1st") {
			t.Errorf("Warnings = %q, want one mentioning the bad date", doc.Warnings)
		}
		if doc.Lessons[0].Date != "January 5, 1895" || doc.Lessons[0].OriginalDate != "" {
			t.Errorf("Lessons[0] dates changed: %q / %q", doc.Lessons[0].Date, doc.Lessons[0].OriginalDate)
		}
	})
}

func TestParseLessons_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("preface\n")
	for i := 1; i <= 13; i++ {
		fmt.Fprintf(&b, "# LESSON %d — January %d, 1905\n\n## LESSON TITLE %d\n\n1. First? Gen. %d:1.\n2. Second?\n\n## NOTES\n\nNote %d.\n\n", i, i, i, i, i)
	}

	sequential := ParseLessons(b.String())
	parallel := ParseLessons(b.String(), WithParallel(4))

	if len(sequential) != 13 {
		t.Fatalf("len(sequential) = %d, want 13", len(sequential))
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Error("parallel parse differs from sequential parse")
	}
}
