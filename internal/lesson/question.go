package lesson

import (
	"regexp"
	"strings"
)

var (
	// ordinalPrefix matches a leading "N." list marker.
	ordinalPrefix = regexp.MustCompile(`^\s*\d+\.(?:\s+|$)`)

	// answerMarker matches "Ans." followed by any dash variant.
	answerMarker = regexp.MustCompile(`\bAns\.\s*` + dashClass + `\s*`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// closingMarks may trail terminal punctuation without hiding it.
const closingMarks = `"'”’)]*_`

// isNumberedLine reports whether line starts a numbered list item.
func isNumberedLine(line string) bool {
	return ordinalPrefix.MatchString(line)
}

// ParseQuestions splits a numbered-list block into questions tagged with
// section. Ordinals are boundaries only: skipped or repeated numbers are
// kept in source order. Text before the first ordinal is ignored.
func ParseQuestions(block, section string) []Question {
	var (
		questions []Question
		current   []string
	)

	flush := func() {
		if current != nil {
			questions = append(questions, ParseQuestion(strings.Join(current, "\n"), section))
			current = nil
		}
	}

	for _, line := range strings.Split(block, "\n") {
		switch {
		case isNumberedLine(line):
			flush()
			current = []string{line}
		case current != nil:
			current = append(current, line)
		}
	}
	flush()

	return questions
}

// ParseQuestion converts one numbered item into a Question.
//
// An explicit answer ("Ans. — ...") is cut off first. The remainder is split
// at its last question mark: the interrogative part becomes Text and the
// trailer becomes Scripture. Without a question mark the whole remainder is
// Text.
func ParseQuestion(chunk, section string) Question {
	if section == "" {
		section = DefaultQuestionSection
	}

	s := strings.TrimSpace(chunk)
	if loc := ordinalPrefix.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}

	var answer string
	if loc := answerMarker.FindStringIndex(s); loc != nil {
		answer = s[loc[1]:]
		s = s[:loc[0]]
	}

	text, scripture := s, ""
	if i := strings.LastIndex(s, "?"); i >= 0 {
		text, scripture = s[:i+1], s[i+1:]
	}

	return Question{
		Text:      NormalizePunctuation(collapseSpace(text)),
		Scripture: collapseSpace(scripture),
		Answer:    collapseSpace(answer),
		Section:   section,
	}
}

// NormalizePunctuation makes text end in '.', '?' or '!', appending a period
// when needed. Closing quotes and brackets after the mark are allowed.
// Applying it twice gives the same result as applying it once.
func NormalizePunctuation(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	core := strings.TrimRight(text, closingMarks)
	if core != "" && strings.ContainsAny(core[len(core)-1:], ".?!") {
		return text
	}
	return text + "."
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
