package verb

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/verbquery"
)

// SearchPrefix returns up to limit verbs whose display name starts with
// prefix, projected to name and level.
func (r *Repo) SearchPrefix(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error) {
	query, args, err := psql.Select("verb", "COALESCE("+colLevel+", '')").
		From(tableVerbs).
		Where(prefixPredicate(prefix)).
		OrderBy("verb ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, prefix+"*")
	}
	defer rows.Close()

	out := []domain.VerbSummary{}
	for rows.Next() {
		var s domain.VerbSummary
		if err := rows.Scan(&s.Verb, &s.Level); err != nil {
			return nil, postgres.MapError(err, entity, prefix+"*")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, prefix+"*")
	}
	return out, nil
}

// Props returns name and properties for every requested identity that exists.
// Missing identities are simply absent from the result.
func (r *Repo) Props(ctx context.Context, p verbquery.PropertyProjection) ([]domain.VerbProperties, error) {
	out := []domain.VerbProperties{}
	if p.IsEmpty() {
		return out, nil
	}

	query, args, err := psql.Select("verb", colProperties).
		From(tableVerbs).
		Where(squirrel.Eq{"id": p.IDs}).
		OrderBy("verb ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build props: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, fmt.Sprint(p.IDs))
	}
	defer rows.Close()

	for rows.Next() {
		var vp domain.VerbProperties
		if err := rows.Scan(&vp.Verb, &vp.Properties); err != nil {
			return nil, postgres.MapError(err, entity, fmt.Sprint(p.IDs))
		}
		out = append(out, vp)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, fmt.Sprint(p.IDs))
	}
	return out, nil
}

// Tenses returns the first verb (by display name) whose name starts with
// prefix, restricted to the projected tenses.
func (r *Repo) Tenses(ctx context.Context, prefix string, p verbquery.TenseProjection) (*domain.VerbTenses, error) {
	col, colArgs := tensesColumn(p)

	query, args, err := psql.Select("verb").
		Column(col, colArgs...).
		From(tableVerbs).
		Where(prefixPredicate(prefix)).
		OrderBy("verb ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tenses: %w", err)
	}

	var vt domain.VerbTenses
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&vt.Verb, &vt.Data.Tenses)
	if err != nil {
		return nil, postgres.MapError(err, entity, prefix+"*")
	}
	vt.Data.Tenses = pruneEmptyMoods(vt.Data.Tenses)
	return &vt, nil
}

// Random returns the identity and properties of one uniformly random verb
// matching f. An empty filter matches every verb.
func (r *Repo) Random(ctx context.Context, f verbquery.VerbFilter) (*domain.VerbSample, error) {
	where, err := filterPredicate(f)
	if err != nil {
		return nil, err
	}

	b := psql.Select("id", colProperties).From(tableVerbs)
	if len(where) > 0 {
		b = b.Where(where)
	}

	query, args, err := b.OrderBy("random()").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build random: %w", err)
	}

	var s domain.VerbSample
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&s.ID, &s.Properties)
	if err != nil {
		return nil, postgres.MapError(err, entity, "random")
	}
	return &s, nil
}

// Exists reports whether a verb with the exact identity id is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Select("1").
		From(tableVerbs).
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return exists, nil
}

// ListSeparable returns the identities of all separable verbs.
func (r *Repo) ListSeparable(ctx context.Context) ([]domain.VerbRef, error) {
	where, err := flagContainment(verbquery.FlagClause{Flag: verbquery.FlagSeparable, Want: true})
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select("id").
		From(tableVerbs).
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build separable: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, "separable")
	}
	defer rows.Close()

	refs := []domain.VerbRef{}
	for rows.Next() {
		var ref domain.VerbRef
		if err := rows.Scan(&ref.ID); err != nil {
			return nil, postgres.MapError(err, entity, "separable")
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, "separable")
	}
	return refs, nil
}
