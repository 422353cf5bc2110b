package rest

import (
	"net/http"
)

const banner = "konjug API: German verb conjugations"

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Verb   *VerbHandler
	User   *UserHandler
	Health *HealthHandler
}

// NewRouter builds the route table. More specific patterns win, so
// /verbs/get/search/{verb} never reaches /verbs/get/{verbId}.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(banner)) //nolint:errcheck
	})
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"hello": "Hello from konjug"})
	})

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /verbs/create", h.Verb.Create)
	mux.HandleFunc("GET /verbs/get", h.Verb.List)
	mux.HandleFunc("GET /verbs/get/{verbId}", h.Verb.Get)
	mux.HandleFunc("GET /verbs/get/verb/{verb}", h.Verb.GetByName)
	mux.HandleFunc("GET /verbs/get/search/{verb}", h.Verb.Search)
	mux.HandleFunc("GET /verbs/get/props", h.Verb.Props)
	mux.HandleFunc("GET /verbs/get/tenses/{verb}", h.Verb.Tenses)
	mux.HandleFunc("GET /verbs/get/random-verb", h.Verb.Random)
	mux.HandleFunc("GET /verbs/get/exists/{verb}", h.Verb.Exists)
	mux.HandleFunc("GET /verbs/get/separable", h.Verb.Separable)
	mux.HandleFunc("PATCH /verbs/update/{verbId}", h.Verb.Update)
	mux.HandleFunc("DELETE /verbs/delete/{verbId}", h.Verb.Delete)
	mux.HandleFunc("PUT /verbs/put/description/{verb}", h.Verb.SetDescription)

	mux.HandleFunc("POST /users/create", h.User.Create)
	mux.HandleFunc("POST /users/login", h.User.Login)
	mux.HandleFunc("GET /users/user", h.User.Current)
	mux.HandleFunc("GET /users/get/user/{email}", h.User.GetByEmail)
	mux.HandleFunc("DELETE /users/delete/{email}", h.User.Delete)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})

	return mux
}
