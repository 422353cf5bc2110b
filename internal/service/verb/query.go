package verb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/verbquery"
)

// Get returns the verb with the given identity.
func (s *Service) Get(ctx context.Context, id string) (*domain.Verb, error) {
	id = domain.NormalizeVerbID(id)
	if id == "" {
		return nil, domain.NewValidationError("verbId", "required")
	}

	v, err := s.verbs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verb.Get: %w", err)
	}
	return v, nil
}

// GetByName returns the verb whose display name equals name exactly.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Verb, error) {
	if name == "" {
		return nil, domain.NewValidationError("verb", "required")
	}

	v, err := s.verbs.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("verb.GetByName: %w", err)
	}
	return v, nil
}

// List returns every stored verb.
func (s *Service) List(ctx context.Context) ([]domain.Verb, error) {
	verbs, err := s.verbs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("verb.List: %w", err)
	}
	return verbs, nil
}

// Search returns up to limit verbs whose display name starts with prefix.
// A limit <= 0 uses the configured default; larger limits are capped.
func (s *Service) Search(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}
	limit = s.searchLimit(limit)

	if hits, ok := s.cache.Get(prefix, limit); ok {
		return hits, nil
	}
	gen := s.cache.Generation()

	hits, err := s.verbs.SearchPrefix(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("verb.Search: %w", err)
	}

	if !s.cache.Set(prefix, limit, gen, hits) {
		s.log.DebugContext(ctx, "search result not cached", slog.String("prefix", prefix))
	}
	return hits, nil
}

func (s *Service) searchLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.SearchLimit
	}
	if limit > s.cfg.SearchMaxLimit {
		return s.cfg.SearchMaxLimit
	}
	return limit
}

// Props returns name and properties for each requested identity that exists.
// At least one identity is required.
func (s *Service) Props(ctx context.Context, ids []string) ([]domain.VerbProperties, error) {
	p := verbquery.NewPropertyProjection(ids)
	if p.IsEmpty() {
		return nil, domain.NewValidationError("verbs", "at least one verb identity required")
	}

	props, err := s.verbs.Props(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("verb.Props: %w", err)
	}
	return props, nil
}

// Tenses returns the first verb matching prefix with only the requested
// tenses, grouped by mood. Unknown tense names are dropped silently; an empty
// request yields the verb with no tenses.
func (s *Service) Tenses(ctx context.Context, prefix string, tenses []string) (*domain.VerbTenses, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}

	p := verbquery.ProjectTenses(tenses)
	if dropped := len(tenses) - len(p.Paths()); dropped > 0 {
		s.log.DebugContext(ctx, "tenses dropped from projection",
			slog.Int("requested", len(tenses)),
			slog.Int("dropped", dropped),
		)
	}

	vt, err := s.verbs.Tenses(ctx, prefix, p)
	if err != nil {
		return nil, fmt.Errorf("verb.Tenses: %w", err)
	}
	return vt, nil
}

// Random returns one random verb matching the level and type filters.
// Returns ErrNotFound when nothing matches, including for contradictory types.
func (s *Service) Random(ctx context.Context, levels, types []string) (*domain.VerbSample, error) {
	f := verbquery.BuildVerbFilter(levels, types)
	if !f.Satisfiable() {
		s.log.DebugContext(ctx, "random verb filter is contradictory",
			slog.Any("types", types),
		)
	}

	sample, err := s.verbs.Random(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("verb.Random: %w", err)
	}
	return sample, nil
}

// Exists reports whether a verb with the exact identity is stored.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	id = domain.NormalizeVerbID(id)
	if id == "" {
		return false, domain.NewValidationError("verb", "required")
	}

	ok, err := s.verbs.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("verb.Exists: %w", err)
	}
	return ok, nil
}

// Separable returns the identities of all separable verbs.
func (s *Service) Separable(ctx context.Context) ([]domain.VerbRef, error) {
	refs, err := s.verbs.ListSeparable(ctx)
	if err != nil {
		return nil, fmt.Errorf("verb.Separable: %w", err)
	}
	return refs, nil
}
