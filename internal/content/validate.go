package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/speakup-edu/speakup/internal/textnorm"
)

// checkVersion accepts catalogs whose schema_version shares the supported
// major version and is not newer than it.
func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid schema_version %q", v)
	}
	if semver.Major(v) != semver.Major(SupportedSchemaVersion) {
		return fmt.Errorf("unsupported schema_version %s (this build reads %s.x)", v, semver.Major(SupportedSchemaVersion))
	}
	if semver.Compare(v, SupportedSchemaVersion) > 0 {
		return fmt.Errorf("schema_version %s is newer than supported %s", v, SupportedSchemaVersion)
	}
	return nil
}

// validateCatalog performs structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(c *Catalog) error {
	var errs []string

	seen := make(map[int]bool, len(c.Vocabulary))
	for _, w := range c.Vocabulary {
		if seen[w.ID] {
			errs = append(errs, fmt.Sprintf("duplicate vocabulary ID: %d", w.ID))
		}
		seen[w.ID] = true
		if len(Variants(w.Present)) == 0 {
			errs = append(errs, fmt.Sprintf("vocabulary %d has no present form", w.ID))
		}
		if len(Variants(w.Past)) == 0 {
			errs = append(errs, fmt.Sprintf("vocabulary %d has no past form", w.ID))
		}
	}

	seen = make(map[int]bool, len(c.Sentences))
	for _, q := range c.Sentences {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate sentence ID: %d", q.ID))
		}
		seen[q.ID] = true
		if len(textnorm.Words(q.Answer)) == 0 {
			errs = append(errs, fmt.Sprintf("sentence %d has an empty answer", q.ID))
			continue
		}
		if !sameWords(q.Scrambled, q.Answer) {
			errs = append(errs, fmt.Sprintf("sentence %d: scrambled tokens %q do not spell the answer %q", q.ID, q.Scrambled, q.Answer))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// sameWords reports whether the scrambled tokens hold exactly the words of
// the answer, ignoring order, case and punctuation-only tokens.
func sameWords(tokens []string, answer string) bool {
	var got []string
	for _, tok := range tokens {
		got = append(got, textnorm.Words(tok)...)
	}
	want := textnorm.Words(answer)
	slices.Sort(got)
	slices.Sort(want)
	return slices.Equal(got, want)
}
