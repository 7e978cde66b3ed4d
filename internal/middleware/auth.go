package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext returns the user id stored by the Authenticator, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

// Authenticator verifies HS256 bearer tokens issued for this API.
// The token subject is the user id. Tokens must carry an expiry and the
// configured issuer.
type Authenticator struct {
	secret []byte
	issuer string
	log    *slog.Logger
}

// NewAuthenticator returns an Authenticator. secret must not be empty.
func NewAuthenticator(secret, issuer string, log *slog.Logger) *Authenticator {
	if secret == "" {
		panic("middleware: JWT secret must not be empty")
	}
	return &Authenticator{secret: []byte(secret), issuer: issuer, log: log}
}

// Require rejects requests without a valid bearer token with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.authenticate(r)
		if err != nil {
			a.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}

// Optional lets anonymous requests through. A token that is present but
// invalid is still rejected with 401.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := a.authenticate(r)
		if err != nil {
			a.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}

var errMissingToken = errors.New("Authorization header must be Bearer {token}")

func (a *Authenticator) authenticate(r *http.Request) (uuid.UUID, error) {
	scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(raw) == "" {
		return uuid.Nil, errMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return id, nil
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, err error) {
	a.log.WarnContext(r.Context(), "authentication failed",
		slog.String("path", r.URL.Path), slog.String("error", err.Error()))

	msg := "Invalid or expired token"
	switch {
	case errors.Is(err, errMissingToken):
		msg = err.Error()
	case errors.Is(err, jwt.ErrTokenExpired):
		msg = "Token has expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		msg = "Malformed token"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": msg},
	})
}
