package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/konjug-backend/internal/config"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/service/user"
)

// userService defines the account operations needed by UserHandler.
type userService interface {
	Register(ctx context.Context, input user.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input user.LoginInput) (*user.Session, error)
	Current(ctx context.Context) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserHandler serves the /users endpoints.
type UserHandler struct {
	svc    userService
	cookie config.AuthConfig
	log    *slog.Logger
}

// NewUserHandler creates a UserHandler. Cookie name and security come from
// the auth config.
func NewUserHandler(svc userService, cfg config.AuthConfig, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, cookie: cfg, log: logger.With("handler", "user")}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the public shape of an account; the password hash never
// leaves the service.
type userView struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	IsVerified   bool      `json:"isVerified"`
	CreationDate time.Time `json:"creationDate"`
}

type loginView struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	CreationDate time.Time `json:"creationDate"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:           u.ID.String(),
		Email:        u.Email,
		IsVerified:   u.IsVerified,
		CreationDate: u.CreatedAt,
	}
}

// Create handles POST /users/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.svc.Register(r.Context(), user.RegisterInput{Email: req.Email, Password: req.Password}); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeMessage(w, http.StatusCreated, "user created successfully")
}

// Login handles POST /users/login. On success the session token is set as
// an HttpOnly cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.svc.Login(r.Context(), user.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(sess.Token, sess.ExpiresAt))
	writeJSON(w, http.StatusOK, map[string]loginView{
		"userResp": {
			ID:           sess.User.ID.String(),
			Email:        sess.User.Email,
			CreationDate: sess.User.CreatedAt,
		},
	})
}

// Current handles GET /users/user.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Current(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userView{"data": toUserView(u)})
}

// GetByEmail handles GET /users/get/user/{email}.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userView{"user": toUserView(u)})
}

// Delete handles DELETE /users/delete/{email}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.DeleteByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		User    userView `json:"user"`
		Message string   `json:"message"`
	}{User: toUserView(u), Message: "Deleted"})
}

// sessionCookie builds the session cookie. SameSite=None requires Secure,
// so insecure development setups fall back to Lax.
func (h *UserHandler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	sameSite := http.SameSiteNoneMode
	if !h.cookie.CookieSecure {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: sameSite,
	}
}
