// Package verbquery builds the typed projections and filters that shape read
// queries against stored verb documents. It never talks to the store itself;
// the postgres adapter renders these values into SQL.
package verbquery

import (
	"slices"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// MoodTenses is one mood of a tense projection with the tenses selected under it.
type MoodTenses struct {
	Mood   domain.Mood
	Tenses []domain.Tense
}

// Path is a single included field path tenses.<mood>.<tense>.
type Path struct {
	Mood  domain.Mood
	Tense domain.Tense
}

func (p Path) String() string {
	return "tenses." + string(p.Mood) + "." + string(p.Tense)
}

// Segments returns the path below the document's data root, suitable for a
// JSON path lookup.
func (p Path) Segments() []string {
	return []string{"tenses", string(p.Mood), string(p.Tense)}
}

// TenseProjection selects a subset of the conjugation table grouped by mood.
// The projected record always carries the verb display name and never the
// document identity.
type TenseProjection struct {
	groups []MoodTenses
}

// NewTenseProjection includes, for every mood in moods (in order), each
// requested tense owned by that mood (in request order). Tenses whose mood is
// not in moods and names that do not classify are left out.
func NewTenseProjection(moods []domain.Mood, tenses []string) TenseProjection {
	var p TenseProjection
	for _, m := range moods {
		var group *MoodTenses
		for _, name := range tenses {
			t, ok := domain.ParseTense(name)
			if !ok {
				continue
			}
			if owner, _ := t.MoodOf(); owner != m {
				continue
			}
			if group == nil {
				p.groups = append(p.groups, MoodTenses{Mood: m})
				group = &p.groups[len(p.groups)-1]
			}
			if !slices.Contains(group.Tenses, t) {
				group.Tenses = append(group.Tenses, t)
			}
		}
	}
	return p
}

// ProjectTenses is NewTenseProjection driven by the moods derived from the
// requested tenses themselves.
func ProjectTenses(tenses []string) TenseProjection {
	return NewTenseProjection(domain.ExpandTensesToMoods(tenses), tenses)
}

// Groups returns the selected tenses grouped by mood.
func (p TenseProjection) Groups() []MoodTenses {
	return p.groups
}

// Paths returns every included tenses.<mood>.<tense> path.
func (p TenseProjection) Paths() []Path {
	var paths []Path
	for _, g := range p.groups {
		for _, t := range g.Tenses {
			paths = append(paths, Path{Mood: g.Mood, Tense: t})
		}
	}
	return paths
}

// IsEmpty reports whether no tense was selected.
func (p TenseProjection) IsEmpty() bool {
	return len(p.groups) == 0
}

// PropertyProjection selects the display name and the whole properties
// sub-document of a batch of verbs, matched by identity membership.
type PropertyProjection struct {
	IDs []string
}

// NewPropertyProjection normalizes the requested identities, dropping empty
// and repeated ones while keeping request order.
func NewPropertyProjection(ids []string) PropertyProjection {
	var p PropertyProjection
	for _, id := range ids {
		id = domain.NormalizeVerbID(id)
		if id == "" || slices.Contains(p.IDs, id) {
			continue
		}
		p.IDs = append(p.IDs, id)
	}
	return p
}

// IsEmpty reports whether no identity was requested.
func (p PropertyProjection) IsEmpty() bool {
	return len(p.IDs) == 0
}
