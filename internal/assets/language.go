package assets

import (
	"errors"
	"fmt"

	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

// Translation holds the fixed booklet labels for one language. Field names
// and order match pipeline.Labels so one converts directly to the other.
type Translation struct {
	SabbathSchool   string            `yaml:"sabbath_school"`
	Lessons         string            `yaml:"lessons"`
	Questions       string            `yaml:"questions"`
	Notes           string            `yaml:"notes"`
	Note            string            `yaml:"note"`
	AnswerPrefix    string            `yaml:"answer_prefix"`
	TableOfContents string            `yaml:"table_of_contents"`
	LessonColumn    string            `yaml:"lesson_column"`
	TitleColumn     string            `yaml:"title_column"`
	DateColumn      string            `yaml:"date_column"`
	PageColumn      string            `yaml:"page_column"`
	AdaptedFrom     string            `yaml:"adapted_from"`
	From            string            `yaml:"from_text"`
	QuarterNames    map[string]string `yaml:"quarter_names"`
	QuarterMonths   map[string]string `yaml:"quarter_months"`
}

// Translations returns the labels for lang. Unknown languages fall back to
// English, and labels missing from a translation file take the English value.
func Translations(loader AssetLoader, lang string) (Translation, error) {
	english, err := loadTranslation(loader, DefaultLanguage)
	if err != nil {
		return Translation{}, err
	}
	if lang == "" || lang == DefaultLanguage {
		return english, nil
	}

	local, err := loadTranslation(loader, lang)
	if errors.Is(err, ErrLanguageNotFound) {
		return english, nil
	}
	if err != nil {
		return Translation{}, err
	}
	return local.merge(english), nil
}

func loadTranslation(loader AssetLoader, code string) (Translation, error) {
	raw, err := loader.LoadLanguage(code)
	if err != nil {
		return Translation{}, err
	}

	var tr Translation
	if err := yamlutil.Unmarshal([]byte(raw), &tr); err != nil {
		return Translation{}, fmt.Errorf("%w: %s: %v", ErrInvalidLanguage, code, err)
	}
	return tr, nil
}

// merge fills empty fields of t from fallback.
func (t Translation) merge(fallback Translation) Translation {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.SabbathSchool, fallback.SabbathSchool)
	fill(&t.Lessons, fallback.Lessons)
	fill(&t.Questions, fallback.Questions)
	fill(&t.Notes, fallback.Notes)
	fill(&t.Note, fallback.Note)
	fill(&t.AnswerPrefix, fallback.AnswerPrefix)
	fill(&t.TableOfContents, fallback.TableOfContents)
	fill(&t.LessonColumn, fallback.LessonColumn)
	fill(&t.TitleColumn, fallback.TitleColumn)
	fill(&t.DateColumn, fallback.DateColumn)
	fill(&t.PageColumn, fallback.PageColumn)
	fill(&t.AdaptedFrom, fallback.AdaptedFrom)
	fill(&t.From, fallback.From)
	t.QuarterNames = mergeMap(t.QuarterNames, fallback.QuarterNames)
	t.QuarterMonths = mergeMap(t.QuarterMonths, fallback.QuarterMonths)
	return t
}

func mergeMap(dst, fallback map[string]string) map[string]string {
	out := make(map[string]string, len(fallback))
	for k, v := range fallback {
		out[k] = v
	}
	for k, v := range dst {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
