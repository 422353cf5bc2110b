package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/service/verb"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sein() *domain.Verb {
	return &domain.Verb{
		ID:   "sein",
		URL:  "https://example.org/sein",
		Verb: "sein",
		Data: domain.VerbData{
			Properties: domain.Properties{Level: "A1", IsIrregular: true, Auxiliary: "sein"},
			Tenses: domain.Tenses{
				domain.MoodIndicative: {
					domain.TensePrasens: {{Person: "ich", Conjugation: "bin", ConjugationHTML: "bin"}},
				},
			},
		},
	}
}

func TestVerbHandler_Create(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		CreateFunc: func(_ context.Context, v domain.Verb) (*domain.Verb, error) {
			assert.Equal(t, "sein", v.ID)
			assert.Equal(t, "A1", v.Data.Properties.Level)
			return &v, nil
		},
	}
	body, err := json.Marshal(sein())
	require.NoError(t, err)

	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodPost, "/verbs/create", string(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Verb domain.Verb `json:"verb"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sein", resp.Verb.ID)
}

func TestVerbHandler_Create_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"malformed body", `{"_id":`, nil, http.StatusBadRequest},
		{"validation", `{}`, domain.NewValidationError("_id", "required"), http.StatusUnprocessableEntity},
		{"duplicate", `{}`, domain.ErrAlreadyExists, http.StatusConflict},
		{"store failure", `{}`, errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &mockVerbService{
				CreateFunc: func(context.Context, domain.Verb) (*domain.Verb, error) { return nil, tt.svcErr },
			}
			rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodPost, "/verbs/create", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestVerbHandler_ValidationBody(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		CreateFunc: func(context.Context, domain.Verb) (*domain.Verb, error) {
			return nil, domain.NewValidationErrors([]domain.FieldError{
				{Field: "_id", Message: "required"},
				{Field: "url", Message: "required"},
			})
		},
	}
	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodPost, "/verbs/create", `{}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"validation: 2 errors","fields":[
		{"field":"_id","message":"required"},
		{"field":"url","message":"required"}
	]}`, rec.Body.String())
}

func TestVerbHandler_Get(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		GetFunc: func(_ context.Context, id string) (*domain.Verb, error) {
			if id == "sein" {
				return sein(), nil
			}
			return nil, domain.ErrNotFound
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodGet, "/verbs/get/sein", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"_id":"sein"`)

	rec = do(t, router, http.MethodGet, "/verbs/get/haben", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"not found"}`, rec.Body.String())
}

func TestVerbHandler_GetByName_Unicode(t *testing.T) {
	t.Parallel()

	var got string
	svc := &mockVerbService{
		GetByNameFunc: func(_ context.Context, name string) (*domain.Verb, error) {
			got = name
			return sein(), nil
		},
	}
	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodGet, "/verbs/get/verb/m%C3%BCssen", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "müssen", got)
}

func TestVerbHandler_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&mockVerbService{}, &mockUserService{}), http.MethodGet, "/verbs/get", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verbs":[]}`, rec.Body.String())
}

func TestVerbHandler_Search(t *testing.T) {
	t.Parallel()

	var gotPrefix string
	var gotLimit int
	svc := &mockVerbService{
		SearchFunc: func(_ context.Context, prefix string, limit int) ([]domain.VerbSummary, error) {
			gotPrefix, gotLimit = prefix, limit
			return []domain.VerbSummary{{Verb: "sein", Level: "A1"}, {Verb: "senden", Level: "B1"}}, nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodGet, "/verbs/get/search/se", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "se", gotPrefix)
	assert.Equal(t, 0, gotLimit)
	assert.JSONEq(t, `{"verbs":[{"verb":"sein","level":"A1"},{"verb":"senden","level":"B1"}]}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/verbs/get/search/se?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)

	rec = do(t, router, http.MethodGet, "/verbs/get/search/se?limit=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVerbHandler_Props(t *testing.T) {
	t.Parallel()

	var gotIDs []string
	svc := &mockVerbService{
		PropsFunc: func(_ context.Context, ids []string) ([]domain.VerbProperties, error) {
			gotIDs = ids
			return []domain.VerbProperties{{Verb: "sein", Properties: domain.Properties{Level: "A1"}}}, nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodGet, "/verbs/get/props?sein&nonexistent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"sein", "nonexistent"}, gotIDs)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "sein", resp[0]["verb"])
	assert.NotContains(t, resp[0], "tenses")
}

func TestVerbHandler_Props_NoneRequested(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		PropsFunc: func(context.Context, []string) ([]domain.VerbProperties, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	for _, target := range []string{
		"/verbs/get/props",
		"/verbs/get/props?%20",
		"/verbs/get/props?%20&&%09=1",
	} {
		rec := do(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)
		assert.JSONEq(t, `{"error":"no verbs requested"}`, rec.Body.String(), target)
	}
}

func TestVerbHandler_Tenses(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		TensesFunc: func(_ context.Context, prefix string, tenses []string) (*domain.VerbTenses, error) {
			assert.Equal(t, "sein", prefix)
			assert.Equal(t, []string{"präsens"}, tenses)
			return &domain.VerbTenses{
				Verb: "sein",
				Data: domain.VerbTensesData{Tenses: sein().Data.Tenses},
			}, nil
		},
	}
	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodGet, "/verbs/get/tenses/sein?tenses=pr%C3%A4sens", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verb":{"verb":"sein","data":{"tenses":{"indicative":{"präsens":[
		{"person":"ich","conjugation":"bin","conjugationHTML":"bin"}
	]}}}}}`, rec.Body.String())
}

func TestVerbHandler_Tenses_NoMatch(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&mockVerbService{}, &mockUserService{}), http.MethodGet, "/verbs/get/tenses/xyz?tenses=pr%C3%A4sens", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerbHandler_Random(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		RandomFunc: func(_ context.Context, levels, types []string) (*domain.VerbSample, error) {
			assert.Equal(t, []string{"A1", "A2"}, levels)
			assert.Equal(t, []string{"regular", "modal"}, types)
			return &domain.VerbSample{ID: "können"}, nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodGet, "/verbs/get/random-verb?levels=A1,A2&types=regular,modal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"_id":"können"`)

	rec = do(t, newTestRouter(&mockVerbService{}, &mockUserService{}), http.MethodGet, "/verbs/get/random-verb?types=regular,irregular", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerbHandler_Exists(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		ExistsFunc: func(_ context.Context, id string) (bool, error) { return id == "sein", nil },
	}
	router := newTestRouter(svc, &mockUserService{})

	assert.JSONEq(t, `{"exists":true}`, do(t, router, http.MethodGet, "/verbs/get/exists/sein", "").Body.String())
	assert.JSONEq(t, `{"exists":false}`, do(t, router, http.MethodGet, "/verbs/get/exists/haben", "").Body.String())
}

func TestVerbHandler_Separable(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		SeparableFunc: func(context.Context) ([]domain.VerbRef, error) {
			return []domain.VerbRef{{ID: "anfangen"}}, nil
		},
	}
	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodGet, "/verbs/get/separable", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verbs":[{"_id":"anfangen"}]}`, rec.Body.String())
}

func TestVerbHandler_Update(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		PatchFunc: func(_ context.Context, id string, patch json.RawMessage) (*domain.Verb, error) {
			assert.Equal(t, "sein", id)
			assert.JSONEq(t, `{"data":{"properties":{"level":"A2"}}}`, string(patch))
			v := sein()
			v.Data.Properties.Level = "A2"
			return v, nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodPatch, "/verbs/update/sein", `{"data":{"properties":{"level":"A2"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"A2"`)

	rec = do(t, router, http.MethodPatch, "/verbs/update/sein", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerbHandler_Delete(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		DeleteFunc: func(_ context.Context, id string) (*domain.Verb, error) {
			if id != "sein" {
				return nil, domain.ErrNotFound
			}
			return sein(), nil
		},
	}
	router := newTestRouter(svc, &mockUserService{})

	rec := do(t, router, http.MethodDelete, "/verbs/delete/sein", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Deleted", resp["message"])
	assert.Contains(t, resp, "verb")

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/verbs/delete/haben", "").Code)
}

func TestVerbHandler_SetDescription(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{
		SetDescriptionFunc: func(_ context.Context, in verb.DescriptionInput) (*domain.Verb, error) {
			assert.Equal(t, verb.DescriptionInput{Verb: "sein", Language: domain.LanguageEN, Text: "to be"}, in)
			v := sein()
			v.Descriptions = &domain.LocalizedText{EN: in.Text}
			return v, nil
		},
	}
	rec := do(t, newTestRouter(svc, &mockUserService{}), http.MethodPut, "/verbs/put/description/sein", `{"lang":"en","description":"to be"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"descriptions":{"en":"to be"}`)
}
