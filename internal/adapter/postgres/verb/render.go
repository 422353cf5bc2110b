package verb

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/verbquery"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	tableVerbs = "verbs"

	colLevel      = "data->'properties'->>'level'"
	colProperties = "data->'properties'"
)

var verbColumns = []string{
	"id", "url", "verb", "data", "descriptions", "examples", "created_at", "updated_at",
}

// filterPredicate renders a VerbFilter as an AND of SQL clauses over the JSONB
// document. An empty filter renders as an empty conjunction (match-all).
func filterPredicate(f verbquery.VerbFilter) (squirrel.And, error) {
	var where squirrel.And
	if len(f.Levels) > 0 {
		where = append(where, squirrel.Eq{colLevel: f.Levels})
	}
	for _, c := range f.Clauses {
		expr, err := flagContainment(c)
		if err != nil {
			return nil, err
		}
		where = append(where, expr)
	}
	return where, nil
}

// flagContainment renders one equality clause as JSONB containment so the
// GIN index on data serves it.
func flagContainment(c verbquery.FlagClause) (squirrel.Sqlizer, error) {
	doc, err := json.Marshal(map[string]map[string]bool{
		"properties": {c.Flag.String(): c.Want},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal flag clause %s: %w", c.Flag, err)
	}
	return squirrel.Expr("data @> ?::jsonb", string(doc)), nil
}

// tensesColumn renders a TenseProjection as a single jsonb column shaped like
// the stored tenses object, restricted to the projected paths. Missing paths
// are stripped; moods left empty are removed after scanning.
func tensesColumn(p verbquery.TenseProjection) (string, []any) {
	if p.IsEmpty() {
		return "'{}'::jsonb AS tenses", nil
	}

	var (
		sql  = "jsonb_build_object("
		args []any
	)
	for i, g := range p.Groups() {
		if i > 0 {
			sql += ", "
		}
		sql += "?::text, jsonb_strip_nulls(jsonb_build_object("
		args = append(args, string(g.Mood))
		for j, t := range g.Tenses {
			if j > 0 {
				sql += ", "
			}
			sql += "?::text, data #> ?::text[]"
			path := verbquery.Path{Mood: g.Mood, Tense: t}
			args = append(args, string(t), path.Segments())
		}
		sql += "))"
	}
	sql += ") AS tenses"
	return sql, args
}

// prefixPredicate renders an anchored, case-sensitive prefix match on the
// display name.
func prefixPredicate(prefix string) squirrel.Sqlizer {
	return squirrel.Expr(`verb LIKE ? ESCAPE '\'`, verbquery.EscapeLike(prefix)+"%")
}

// pruneEmptyMoods drops moods whose projected tenses were all absent.
func pruneEmptyMoods(t domain.Tenses) domain.Tenses {
	for m, ts := range t {
		if len(ts) == 0 {
			delete(t, m)
		}
	}
	if t == nil {
		return domain.Tenses{}
	}
	return t
}

// jsonArg marshals v for a nullable jsonb column. Nil values become SQL NULL.
func jsonArg(v any) (any, error) {
	switch x := v.(type) {
	case *domain.LocalizedText:
		if x == nil {
			return nil, nil
		}
	case domain.Examples:
		if len(x) == 0 {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
