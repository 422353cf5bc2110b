package verb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	"github.com/heartmarshall/konjug-backend/internal/domain"
)

const upsertVerb = `
INSERT INTO verbs (id, url, verb, data, descriptions, examples)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    url          = EXCLUDED.url,
    verb         = EXCLUDED.verb,
    data         = EXCLUDED.data,
    descriptions = EXCLUDED.descriptions,
    examples     = EXCLUDED.examples,
    updated_at   = now()
RETURNING (xmax = 0) AS inserted`

// BulkUpsert writes verbs in one pgx.Batch round trip, inserting new
// identities and replacing existing ones. It reports how many rows were
// inserted and how many updated. The first failing row aborts the
// batch; callers wanting all-or-nothing semantics wrap it in RunInTx.
func (r *Repo) BulkUpsert(ctx context.Context, verbs []domain.Verb) (inserted, updated int, err error) {
	if len(verbs) == 0 {
		return 0, 0, nil
	}

	batch := &pgx.Batch{}
	for i := range verbs {
		v := &verbs[i]
		args, err := documentArgs(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%s %s: %w", entity, v.ID, err)
		}
		batch.Queue(upsertVerb, v.ID, v.URL, v.Verb, args[0], args[1], args[2])
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	for i := range verbs {
		var isInsert bool
		if err := br.QueryRow().Scan(&isInsert); err != nil {
			return inserted, updated, postgres.MapError(err, entity, verbs[i].ID)
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}
