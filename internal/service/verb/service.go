// Package verb implements the verb use cases on top of the document store.
package verb

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/konjug-backend/internal/config"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/verbquery"
)

// verbRepo defines the verb store operations needed by the service.
type verbRepo interface {
	Create(ctx context.Context, v *domain.Verb) (*domain.Verb, error)
	Update(ctx context.Context, v *domain.Verb) (*domain.Verb, error)
	Delete(ctx context.Context, id string) (*domain.Verb, error)
	SetDescription(ctx context.Context, name string, lang domain.Language, text string) (*domain.Verb, error)
	BulkUpsert(ctx context.Context, verbs []domain.Verb) (inserted, updated int, err error)

	GetByID(ctx context.Context, id string) (*domain.Verb, error)
	GetByName(ctx context.Context, name string) (*domain.Verb, error)
	GetForUpdate(ctx context.Context, id string) (*domain.Verb, error)
	List(ctx context.Context) ([]domain.Verb, error)

	SearchPrefix(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error)
	Props(ctx context.Context, p verbquery.PropertyProjection) ([]domain.VerbProperties, error)
	Tenses(ctx context.Context, prefix string, p verbquery.TenseProjection) (*domain.VerbTenses, error)
	Random(ctx context.Context, f verbquery.VerbFilter) (*domain.VerbSample, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListSeparable(ctx context.Context) ([]domain.VerbRef, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// searchCache defines the search-result cache needed by the service.
type searchCache interface {
	Get(prefix string, limit int) ([]domain.VerbSummary, bool)
	Generation() uint64
	Set(prefix string, limit int, gen uint64, hits []domain.VerbSummary) bool
	Flush()
}

// Service implements verb operations.
type Service struct {
	log   *slog.Logger
	verbs verbRepo
	tx    txManager
	cache searchCache
	cfg   config.VerbsConfig
}

// NewService creates a new verb service instance.
func NewService(
	logger *slog.Logger,
	verbs verbRepo,
	tx txManager,
	cache searchCache,
	cfg config.VerbsConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "verb"),
		verbs: verbs,
		tx:    tx,
		cache: cache,
		cfg:   cfg,
	}
}

// invalidate drops cached search results after a successful write.
func (s *Service) invalidate(ctx context.Context, op string) {
	s.cache.Flush()
	s.log.DebugContext(ctx, "search cache flushed", slog.String("op", op))
}
