package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/konjug-backend/internal/config"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/service/user"
	"github.com/heartmarshall/konjug-backend/internal/service/verb"
)

type mockVerbService struct {
	CreateFunc         func(ctx context.Context, v domain.Verb) (*domain.Verb, error)
	PatchFunc          func(ctx context.Context, id string, patch json.RawMessage) (*domain.Verb, error)
	DeleteFunc         func(ctx context.Context, id string) (*domain.Verb, error)
	SetDescriptionFunc func(ctx context.Context, input verb.DescriptionInput) (*domain.Verb, error)
	GetFunc            func(ctx context.Context, id string) (*domain.Verb, error)
	GetByNameFunc      func(ctx context.Context, name string) (*domain.Verb, error)
	ListFunc           func(ctx context.Context) ([]domain.Verb, error)
	SearchFunc         func(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error)
	PropsFunc          func(ctx context.Context, ids []string) ([]domain.VerbProperties, error)
	TensesFunc         func(ctx context.Context, prefix string, tenses []string) (*domain.VerbTenses, error)
	RandomFunc         func(ctx context.Context, levels, types []string) (*domain.VerbSample, error)
	ExistsFunc         func(ctx context.Context, id string) (bool, error)
	SeparableFunc      func(ctx context.Context) ([]domain.VerbRef, error)
}

func (m *mockVerbService) Create(ctx context.Context, v domain.Verb) (*domain.Verb, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return &v, nil
}

func (m *mockVerbService) Patch(ctx context.Context, id string, patch json.RawMessage) (*domain.Verb, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) Delete(ctx context.Context, id string) (*domain.Verb, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) SetDescription(ctx context.Context, input verb.DescriptionInput) (*domain.Verb, error) {
	if m.SetDescriptionFunc != nil {
		return m.SetDescriptionFunc(ctx, input)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) Get(ctx context.Context, id string) (*domain.Verb, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) GetByName(ctx context.Context, name string) (*domain.Verb, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) List(ctx context.Context) ([]domain.Verb, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockVerbService) Search(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, prefix, limit)
	}
	return nil, nil
}

func (m *mockVerbService) Props(ctx context.Context, ids []string) ([]domain.VerbProperties, error) {
	if m.PropsFunc != nil {
		return m.PropsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockVerbService) Tenses(ctx context.Context, prefix string, tenses []string) (*domain.VerbTenses, error) {
	if m.TensesFunc != nil {
		return m.TensesFunc(ctx, prefix, tenses)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) Random(ctx context.Context, levels, types []string) (*domain.VerbSample, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx, levels, types)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVerbService) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockVerbService) Separable(ctx context.Context) ([]domain.VerbRef, error) {
	if m.SeparableFunc != nil {
		return m.SeparableFunc(ctx)
	}
	return nil, nil
}

type mockUserService struct {
	RegisterFunc      func(ctx context.Context, input user.RegisterInput) (*domain.User, error)
	LoginFunc         func(ctx context.Context, input user.LoginInput) (*user.Session, error)
	CurrentFunc       func(ctx context.Context) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	DeleteByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, input user.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.User{Email: input.Email}, nil
}

func (m *mockUserService) Login(ctx context.Context, input user.LoginInput) (*user.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, input)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserService) Current(ctx context.Context) (*domain.User, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil, domain.ErrUnauthorized
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserService) DeleteByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{CookieName: "jwt", CookieSecure: true}
}

// newTestRouter mounts mock services behind the real route table.
func newTestRouter(verbs *mockVerbService, users *mockUserService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Handlers{
		Verb:   NewVerbHandler(verbs, logger),
		User:   NewUserHandler(users, testAuthConfig(), logger),
		Health: NewHealthHandler(&dbPingerMock{}, &schemaCheckerMock{current: 1, latest: 1}, "test"),
	})
}
