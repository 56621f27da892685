package content

import (
	"strings"

	"github.com/samber/lo"
)

// VariantSeparator separates alternative forms such as "am / is".
const VariantSeparator = "/"

// VocabWord is a verb with its present and past forms and a Korean gloss.
// Present and Past may hold several variants separated by VariantSeparator.
type VocabWord struct {
	ID      int    `json:"id"`
	Present string `json:"present"`
	Past    string `json:"past"`
	Korean  string `json:"korean"`
}

// SentenceQuestion is a sentence whose tokens are presented out of order.
type SentenceQuestion struct {
	ID        int      `json:"id"`
	Korean    string   `json:"korean"`
	Scrambled []string `json:"scrambled"`
	Answer    string   `json:"answer"`
}

// Catalog is the full set of practice content.
type Catalog struct {
	SchemaVersion string             `json:"schema_version"`
	Title         string             `json:"title"`
	Vocabulary    []VocabWord        `json:"vocabulary"`
	Sentences     []SentenceQuestion `json:"sentences"`
}

// Variants splits a form like "am / is" into its trimmed, non-empty
// alternatives.
func Variants(form string) []string {
	parts := lo.Map(strings.Split(form, VariantSeparator), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// FirstWord returns the first whitespace-separated word of the answer.
func (q SentenceQuestion) FirstWord() string {
	fields := strings.Fields(q.Answer)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (q SentenceQuestion) clone() SentenceQuestion {
	q.Scrambled = append([]string(nil), q.Scrambled...)
	return q
}
