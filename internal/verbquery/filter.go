package verbquery

import (
	"slices"
	"strings"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// Flag names a boolean field of the properties sub-document.
type Flag string

const (
	FlagIrregular Flag = "isIrregular"
	FlagSeparable Flag = "isSeparable"
	FlagPrefixed  Flag = "prefixed"
	FlagModal     Flag = "isModal"
)

func (f Flag) String() string { return string(f) }

func (f Flag) value(p domain.Properties) bool {
	switch f {
	case FlagIrregular:
		return p.IsIrregular
	case FlagSeparable:
		return p.IsSeparable
	case FlagPrefixed:
		return p.IsPrefixed
	case FlagModal:
		return p.IsModal
	}
	return false
}

// FlagClause requires properties.<Flag> to equal Want.
type FlagClause struct {
	Flag Flag
	Want bool
}

// typeClauses maps each verb-type selector to its single equality clause.
// Auxiliary has no entry.
var typeClauses = map[domain.VerbType]FlagClause{
	domain.VerbTypeRegular:     {Flag: FlagIrregular, Want: false},
	domain.VerbTypeIrregular:   {Flag: FlagIrregular, Want: true},
	domain.VerbTypeSeparable:   {Flag: FlagSeparable, Want: true},
	domain.VerbTypeInseparable: {Flag: FlagSeparable, Want: false},
	domain.VerbTypePrefixed:    {Flag: FlagPrefixed, Want: true},
	domain.VerbTypeModal:       {Flag: FlagModal, Want: true},
}

// VerbFilter is a conjunctive predicate over stored verb properties.
// The zero value matches every verb.
type VerbFilter struct {
	// Levels requires properties.level to be one of the values when non-empty.
	Levels []string
	// Clauses are ANDed. Contradictory clauses (regular with irregular,
	// separable with inseparable) are all kept, so such a filter matches nothing.
	Clauses []FlagClause
}

// BuildVerbFilter composes the predicate for the given level tags and
// verb-type selectors. Levels are upper-cased; unknown type names add no clause.
func BuildVerbFilter(levels, types []string) VerbFilter {
	var f VerbFilter
	for _, l := range levels {
		l = domain.NormalizeLevel(l)
		if l == "" || slices.Contains(f.Levels, l) {
			continue
		}
		f.Levels = append(f.Levels, l)
	}
	for _, name := range types {
		c, ok := typeClauses[domain.VerbType(strings.ToLower(strings.TrimSpace(name)))]
		if !ok || slices.Contains(f.Clauses, c) {
			continue
		}
		f.Clauses = append(f.Clauses, c)
	}
	return f
}

// IsEmpty reports whether the filter imposes no constraint.
func (f VerbFilter) IsEmpty() bool {
	return len(f.Levels) == 0 && len(f.Clauses) == 0
}

// Matches evaluates the predicate against a verb's properties.
func (f VerbFilter) Matches(p domain.Properties) bool {
	if len(f.Levels) > 0 && !slices.Contains(f.Levels, p.Level) {
		return false
	}
	for _, c := range f.Clauses {
		if c.Flag.value(p) != c.Want {
			return false
		}
	}
	return true
}

// Satisfiable reports whether some verb could match, i.e. no flag is
// required to be both true and false.
func (f VerbFilter) Satisfiable() bool {
	want := make(map[Flag]bool, len(f.Clauses))
	for _, c := range f.Clauses {
		if prev, ok := want[c.Flag]; ok && prev != c.Want {
			return false
		}
		want[c.Flag] = c.Want
	}
	return true
}
