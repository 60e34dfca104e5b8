package lesson

// DefaultQuestionSection names the question group used when a lesson has no
// explicit question sub-headers.
const DefaultQuestionSection = "QUESTIONS"

// Question is one numbered study question.
type Question struct {
	Text      string `yaml:"text" json:"text"`
	Scripture string `yaml:"scripture" json:"scripture"`
	Answer    string `yaml:"answer" json:"answer"`
	Section   string `yaml:"section" json:"section"`
}

// Section is a named lesson section that is neither questions nor notes,
// such as "READING".
type Section struct {
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
}

// Lesson is one weekly study unit.
type Lesson struct {
	Number             string     `yaml:"number" json:"number"`
	Date               string     `yaml:"date" json:"date"`
	OriginalDate       string     `yaml:"original_date,omitempty" json:"original_date,omitempty"`
	Title              string     `yaml:"title" json:"title"`
	Location           string     `yaml:"location,omitempty" json:"location,omitempty"`
	References         string     `yaml:"references,omitempty" json:"references,omitempty"`
	PreliminaryNote    string     `yaml:"preliminary_note" json:"preliminary_note"`
	QuestionHeaders    []string   `yaml:"question_headers" json:"question_headers"`
	Questions          []Question `yaml:"questions" json:"questions"`
	Notes              string     `yaml:"notes" json:"notes"`
	AdditionalSections []Section  `yaml:"additional_sections" json:"additional_sections"`
}

// newLesson returns a Lesson with non-nil collections so that serialized
// output always carries empty lists instead of nulls.
func newLesson() *Lesson {
	return &Lesson{
		QuestionHeaders:    []string{},
		Questions:          []Question{},
		AdditionalSections: []Section{},
	}
}

// addQuestionHeader registers name once, preserving first-seen order.
func (l *Lesson) addQuestionHeader(name string) {
	for _, h := range l.QuestionHeaders {
		if h == name {
			return
		}
	}
	l.QuestionHeaders = append(l.QuestionHeaders, name)
}

// QuestionsBySection groups questions under their headers in header order.
// Questions whose section is not a registered header are grouped last under
// their own name.
func (l *Lesson) QuestionsBySection() []QuestionGroup {
	groups := make([]QuestionGroup, 0, len(l.QuestionHeaders))
	index := make(map[string]int, len(l.QuestionHeaders))
	for _, h := range l.QuestionHeaders {
		index[h] = len(groups)
		groups = append(groups, QuestionGroup{Name: h})
	}
	for _, q := range l.Questions {
		i, ok := index[q.Section]
		if !ok {
			i = len(groups)
			index[q.Section] = i
			groups = append(groups, QuestionGroup{Name: q.Section})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}

// QuestionGroup is a named run of questions.
type QuestionGroup struct {
	Name      string
	Questions []Question
}

// Document is the parsed form of a combined lesson source.
type Document struct {
	Lessons     []Lesson          `yaml:"lessons" json:"lessons"`
	FrontMatter string            `yaml:"frontmatter" json:"frontmatter"`
	BackMatter  string            `yaml:"backmatter" json:"backmatter"`
	Metadata    map[string]string `yaml:"metadata" json:"metadata"`
	Warnings    []string          `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}
