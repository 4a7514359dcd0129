package handlers

import (
	"context"
	"net/http"
	"strings"

	"quickbids/internal/apperror"
	"quickbids/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal is the authenticated caller: an active user and the contractor
// profile behind it.
type Principal struct {
	User       models.User
	Contractor models.Contractor
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the caller stored by Authenticate.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

// Authenticate resolves the token in the Authorization header to an active
// user with a contractor profile. Both "Bearer" and "Token" schemes are
// accepted.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, "Authentication credentials were not provided.")
			return
		}

		userID, err := h.Tokens.Parse(token)
		if err != nil {
			unauthorized(w, "Invalid token.")
			return
		}

		ctx := r.Context()
		user, err := h.Store.GetUser(ctx, userID)
		if apperror.IsNotFound(err) {
			unauthorized(w, "Invalid token.")
			return
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if !user.IsActive {
			unauthorized(w, "User inactive or deleted.")
			return
		}

		contractor, err := h.Store.GetContractorByUser(ctx, user.ID)
		if apperror.IsNotFound(err) {
			unauthorized(w, "User has no contractor profile.")
			return
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		p := &Principal{User: *user, Contractor: *contractor}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		token = strings.TrimSpace(token)
		return token, token != ""
	default:
		return "", false
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="quickbids"`)
	writeJSON(w, http.StatusUnauthorized, errorResponse{Message: message})
}

// principal fetches the caller or answers 401 when the route was mounted
// without Authenticate.
func principal(w http.ResponseWriter, r *http.Request) (*Principal, bool) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		unauthorized(w, "Authentication credentials were not provided.")
	}
	return p, ok
}
