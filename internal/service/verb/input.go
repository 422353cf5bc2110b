package verb

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

const (
	maxPrefixLen      = 100
	maxDescriptionLen = 5000
)

// normalizeVerb applies storage normalization in place: the identity is
// lowercased and the level upper-cased.
func normalizeVerb(v *domain.Verb) {
	v.ID = domain.NormalizeVerbID(v.ID)
	v.Verb = strings.TrimSpace(v.Verb)
	v.URL = strings.TrimSpace(v.URL)
	v.Data.Properties.Level = domain.NormalizeLevel(v.Data.Properties.Level)
}

// validateVerb checks a normalized verb document.
func validateVerb(v *domain.Verb) error {
	var errs []domain.FieldError

	if v.ID == "" {
		errs = append(errs, domain.FieldError{Field: "_id", Message: "required"})
	}
	if v.Verb == "" {
		errs = append(errs, domain.FieldError{Field: "verb", Message: "required"})
	}
	if v.URL == "" {
		errs = append(errs, domain.FieldError{Field: "url", Message: "required"})
	}

	for mood, tenses := range v.Data.Tenses {
		if !mood.IsValid() {
			errs = append(errs, domain.FieldError{
				Field:   "data.tenses." + string(mood),
				Message: "unknown mood",
			})
			continue
		}
		for tense, entries := range tenses {
			field := fmt.Sprintf("data.tenses.%s.%s", mood, tense)
			if _, ok := tense.MoodOf(); !ok {
				errs = append(errs, domain.FieldError{Field: field, Message: "unknown tense"})
				continue
			}
			for i, c := range entries {
				if c.Conjugation == "" {
					errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%d].conjugation", field, i), Message: "required"})
				}
				if c.ConjugationHTML == "" {
					errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%d].conjugationHTML", field, i), Message: "required"})
				}
			}
		}
	}

	for mood := range v.Examples {
		if !mood.IsValid() {
			errs = append(errs, domain.FieldError{Field: "examples." + string(mood), Message: "unknown mood"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// requiredPatchPaths are document paths a patch may change but never clear.
var requiredPatchPaths = [][]string{
	{"verb"},
	{"url"},
	{"data"},
	{"data", "properties"},
	{"data", "tenses"},
}

// validatePatchNulls rejects a patch that sets a required path to null.
func validatePatchNulls(changes map[string]any) error {
	var errs []domain.FieldError
	for _, path := range requiredPatchPaths {
		node := changes
		for i, key := range path {
			v, ok := node[key]
			if !ok {
				break
			}
			if v == nil {
				errs = append(errs, domain.FieldError{Field: strings.Join(path[:i+1], "."), Message: "cannot be null"})
				break
			}
			if node, ok = v.(map[string]any); !ok {
				break
			}
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DescriptionInput holds parameters for setting one description language.
type DescriptionInput struct {
	Verb     string
	Language domain.Language
	Text     string
}

// Validate validates the description input.
func (i DescriptionInput) Validate() error {
	var errs []domain.FieldError

	if i.Verb == "" {
		errs = append(errs, domain.FieldError{Field: "verb", Message: "required"})
	}
	if !i.Language.IsValid() {
		errs = append(errs, domain.FieldError{Field: "lang", Message: "must be one of en, es, fr, de"})
	}
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	} else if len(i.Text) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// validatePrefix rejects prefixes a search or tense lookup cannot use.
func validatePrefix(prefix string) error {
	if prefix == "" {
		return domain.NewValidationError("verb", "required")
	}
	if len(prefix) > maxPrefixLen {
		return domain.NewValidationError("verb", "too long")
	}
	return nil
}
