package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/service/verb"
	"github.com/heartmarshall/konjug-backend/internal/verbquery"
)

// verbService defines the verb operations needed by VerbHandler.
type verbService interface {
	Create(ctx context.Context, v domain.Verb) (*domain.Verb, error)
	Patch(ctx context.Context, id string, patch json.RawMessage) (*domain.Verb, error)
	Delete(ctx context.Context, id string) (*domain.Verb, error)
	SetDescription(ctx context.Context, input verb.DescriptionInput) (*domain.Verb, error)

	Get(ctx context.Context, id string) (*domain.Verb, error)
	GetByName(ctx context.Context, name string) (*domain.Verb, error)
	List(ctx context.Context) ([]domain.Verb, error)
	Search(ctx context.Context, prefix string, limit int) ([]domain.VerbSummary, error)
	Props(ctx context.Context, ids []string) ([]domain.VerbProperties, error)
	Tenses(ctx context.Context, prefix string, tenses []string) (*domain.VerbTenses, error)
	Random(ctx context.Context, levels, types []string) (*domain.VerbSample, error)
	Exists(ctx context.Context, id string) (bool, error)
	Separable(ctx context.Context) ([]domain.VerbRef, error)
}

// VerbHandler serves the /verbs endpoints.
type VerbHandler struct {
	svc verbService
	log *slog.Logger
}

// NewVerbHandler creates a VerbHandler.
func NewVerbHandler(svc verbService, logger *slog.Logger) *VerbHandler {
	return &VerbHandler{svc: svc, log: logger.With("handler", "verb")}
}

type verbResponse[T any] struct {
	Verb T `json:"verb"`
}

type verbsResponse[T any] struct {
	Verbs []T `json:"verbs"`
}

type deletedVerbResponse struct {
	Verb    *domain.Verb `json:"verb"`
	Message string       `json:"message"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type descriptionRequest struct {
	Lang        domain.Language `json:"lang"`
	Description string          `json:"description"`
}

// Create handles POST /verbs/create.
func (h *VerbHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Verb
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, verbResponse[*domain.Verb]{Verb: created})
}

// Get handles GET /verbs/get/{verbId}.
func (h *VerbHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), r.PathValue("verbId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.Verb]{Verb: v})
}

// GetByName handles GET /verbs/get/verb/{verb}.
func (h *VerbHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetByName(r.Context(), r.PathValue("verb"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.Verb]{Verb: v})
}

// List handles GET /verbs/get.
func (h *VerbHandler) List(w http.ResponseWriter, r *http.Request) {
	verbs, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbsResponse[domain.Verb]{Verbs: nonNil(verbs)})
}

// Search handles GET /verbs/get/search/{verb}?limit=.
func (h *VerbHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handleError(w, r, h.log, domain.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = n
	}

	hits, err := h.svc.Search(r.Context(), r.PathValue("verb"), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbsResponse[domain.VerbSummary]{Verbs: nonNil(hits)})
}

// Props handles GET /verbs/get/props?<id1>&<id2>. Query keys are the
// requested identities; a request without any non-blank key is a 500.
func (h *VerbHandler) Props(w http.ResponseWriter, r *http.Request) {
	ids := verbquery.QueryKeys(r.URL.RawQuery)
	if verbquery.NewPropertyProjection(ids).IsEmpty() {
		writeError(w, http.StatusInternalServerError, "no verbs requested")
		return
	}

	props, err := h.svc.Props(r.Context(), ids)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(props))
}

// Tenses handles GET /verbs/get/tenses/{verb}?tenses=a,b,c.
func (h *VerbHandler) Tenses(w http.ResponseWriter, r *http.Request) {
	tenses := verbquery.SplitList(r.URL.Query().Get("tenses"))

	vt, err := h.svc.Tenses(r.Context(), r.PathValue("verb"), tenses)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.VerbTenses]{Verb: vt})
}

// Random handles GET /verbs/get/random-verb?levels=&types=.
func (h *VerbHandler) Random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sample, err := h.svc.Random(r.Context(),
		verbquery.SplitList(q.Get("levels")),
		verbquery.SplitList(q.Get("types")),
	)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.VerbSample]{Verb: sample})
}

// Exists handles GET /verbs/get/exists/{verb}.
func (h *VerbHandler) Exists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Exists(r.Context(), r.PathValue("verb"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, existsResponse{Exists: ok})
}

// Separable handles GET /verbs/get/separable.
func (h *VerbHandler) Separable(w http.ResponseWriter, r *http.Request) {
	refs, err := h.svc.Separable(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbsResponse[domain.VerbRef]{Verbs: nonNil(refs)})
}

// Update handles PATCH /verbs/update/{verbId}.
func (h *VerbHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Patch(r.Context(), r.PathValue("verbId"), body)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.Verb]{Verb: updated})
}

// Delete handles DELETE /verbs/delete/{verbId}.
func (h *VerbHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), r.PathValue("verbId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedVerbResponse{Verb: deleted, Message: "Deleted"})
}

// SetDescription handles PUT /verbs/put/description/{verb}.
func (h *VerbHandler) SetDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.svc.SetDescription(r.Context(), verb.DescriptionInput{
		Verb:     r.PathValue("verb"),
		Language: req.Lang,
		Text:     req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, verbResponse[*domain.Verb]{Verb: v})
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
