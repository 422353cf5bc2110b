// Package verb implements the verb document store on PostgreSQL JSONB.
// Filters and projections built by package verbquery are rendered here.
package verb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	"github.com/heartmarshall/konjug-backend/internal/domain"
)

const entity = "verb"

// Repo provides verb persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new verb repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new verb document and returns it with timestamps set.
func (r *Repo) Create(ctx context.Context, v *domain.Verb) (*domain.Verb, error) {
	args, err := documentArgs(v)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, v.ID, err)
	}

	query, qargs, err := psql.Insert(tableVerbs).
		Columns("id", "url", "verb", "data", "descriptions", "examples").
		Values(append([]any{v.ID, v.URL, v.Verb}, args...)...).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanVerb(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, qargs...))
	if err != nil {
		return nil, postgres.MapError(err, entity, v.ID)
	}
	return created, nil
}

// Update overwrites every mutable column of the stored document with id v.ID.
func (r *Repo) Update(ctx context.Context, v *domain.Verb) (*domain.Verb, error) {
	args, err := documentArgs(v)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, v.ID, err)
	}

	query, qargs, err := psql.Update(tableVerbs).
		Set("url", v.URL).
		Set("verb", v.Verb).
		Set("data", args[0]).
		Set("descriptions", args[1]).
		Set("examples", args[2]).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanVerb(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, qargs...))
	if err != nil {
		return nil, postgres.MapError(err, entity, v.ID)
	}
	return updated, nil
}

// Delete removes the verb with the given id and returns the removed document.
func (r *Repo) Delete(ctx context.Context, id string) (*domain.Verb, error) {
	query, args, err := psql.Delete(tableVerbs).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete: %w", err)
	}

	deleted, err := scanVerb(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return deleted, nil
}

// SetDescription sets one language of the descriptions object of the verb
// whose display name is name, leaving the other languages untouched.
func (r *Repo) SetDescription(ctx context.Context, name string, lang domain.Language, text string) (*domain.Verb, error) {
	query, args, err := psql.Update(tableVerbs).
		Set("descriptions", squirrel.Expr(
			"jsonb_set(COALESCE(descriptions, '{}'::jsonb), ARRAY[?::text], to_jsonb(?::text))",
			string(lang), text,
		)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"verb": name}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set description: %w", err)
	}

	updated, err := scanVerb(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, name)
	}
	return updated, nil
}

// ---------------------------------------------------------------------------
// Full-document reads
// ---------------------------------------------------------------------------

// GetByID returns the verb with the given identity.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Verb, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id, false)
}

// GetByName returns the verb whose display name equals name exactly.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Verb, error) {
	return r.getOne(ctx, squirrel.Eq{"verb": name}, name, false)
}

// GetForUpdate returns the verb with the given identity and locks its row
// until the surrounding transaction ends. It must run inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id string) (*domain.Verb, error) {
	if !postgres.InTx(ctx) {
		return nil, errors.New("verb.GetForUpdate: called outside a transaction")
	}
	return r.getOne(ctx, squirrel.Eq{"id": id}, id, true)
}

// List returns every stored verb ordered by display name.
func (r *Repo) List(ctx context.Context) ([]domain.Verb, error) {
	query, args, err := psql.Select(verbColumns...).
		From(tableVerbs).
		OrderBy("verb ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, "*")
	}
	defer rows.Close()

	verbs := []domain.Verb{}
	for rows.Next() {
		v, err := scanVerb(rows)
		if err != nil {
			return nil, postgres.MapError(err, entity, "*")
		}
		verbs = append(verbs, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, "*")
	}
	return verbs, nil
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key string, forUpdate bool) (*domain.Verb, error) {
	b := psql.Select(verbColumns...).From(tableVerbs).Where(where)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	v, err := scanVerb(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func joinColumns() string {
	return strings.Join(verbColumns, ", ")
}

// scanVerb reads one row in verbColumns order. pgx decodes the jsonb columns
// straight into the document types; NULL leaves optional fields nil.
func scanVerb(row pgx.Row) (*domain.Verb, error) {
	var v domain.Verb
	err := row.Scan(
		&v.ID, &v.URL, &v.Verb, &v.Data, &v.Descriptions, &v.Examples,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// documentArgs returns the data, descriptions and examples column values.
func documentArgs(v *domain.Verb) ([]any, error) {
	data, err := jsonArg(v.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}
	desc, err := jsonArg(v.Descriptions)
	if err != nil {
		return nil, fmt.Errorf("marshal descriptions: %w", err)
	}
	examples, err := jsonArg(v.Examples)
	if err != nil {
		return nil, fmt.Errorf("marshal examples: %w", err)
	}
	return []any{data, desc, examples}, nil
}
