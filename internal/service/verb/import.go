package verb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Total    int
	Inserted int
	Updated  int
	Batches  int
	DryRun   bool
}

// ImportInput holds parameters for a bulk import.
type ImportInput struct {
	Verbs     []domain.Verb
	BatchSize int
	DryRun    bool
}

// Import validates every document and then upserts them in batches inside a
// single transaction. Any invalid document aborts the import before writing;
// the returned validation error names the offending documents by index.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = s.cfg.ImportBatchSize
	}

	verbs := make([]domain.Verb, len(input.Verbs))
	copy(verbs, input.Verbs)

	var errs []domain.FieldError
	seen := make(map[string]int, len(verbs))
	for i := range verbs {
		normalizeVerb(&verbs[i])
		var ve *domain.ValidationError
		if err := validateVerb(&verbs[i]); errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("[%d].%s", i, fe.Field), Message: fe.Message})
			}
			continue
		}
		if prev, dup := seen[verbs[i].ID]; dup {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("[%d]._id", i),
				Message: fmt.Sprintf("duplicates document %d", prev),
			})
			continue
		}
		seen[verbs[i].ID] = i
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	res := &ImportResult{Total: len(verbs), DryRun: input.DryRun}
	if input.DryRun || len(verbs) == 0 {
		return res, nil
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for start := 0; start < len(verbs); start += batchSize {
			end := min(start+batchSize, len(verbs))
			inserted, updated, err := s.verbs.BulkUpsert(txCtx, verbs[start:end])
			if err != nil {
				return fmt.Errorf("batch %d: %w", res.Batches+1, err)
			}
			res.Inserted += inserted
			res.Updated += updated
			res.Batches++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("verb.Import: %w", err)
	}

	s.invalidate(ctx, "import")
	s.log.InfoContext(ctx, "verbs imported",
		slog.Int("total", res.Total),
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("batches", res.Batches),
	)
	return res, nil
}
