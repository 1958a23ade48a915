package v1handler

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"linkshield/internal/config"
	"linkshield/pkg/domain"
	"linkshield/pkg/serrors"
)

// SecHandlerOptions configures request authentication for v1 endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key used to verify bearer tokens.
	PublicKey string
}

// NewSecHandlerOptions maps JWT settings from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler verifies RS256 bearer tokens and injects the authenticated user
// ID into the request context.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}

	return &SecHandler{publicKey: key}, nil
}

// userIDKey is the context key under which the authenticated user ID is stored.
type userIDKey struct{}

// UserIDKey is exported for tests that need to seed an authenticated context.
var UserIDKey = userIDKey{} //nolint: gochecknoglobals

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext returns the authenticated user ID, or the zero ID when
// the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if v, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
		return v
	}

	return domain.UserID{}
}

// Authenticate verifies the given bearer token and returns a context carrying
// the token's subject as the user ID.
func (s *SecHandler) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return WithUserID(ctx, domain.UserID(userID)), nil
}

// RequireAuth wraps a handler with bearer token verification.
func (s *SecHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.Authenticate(r.Context(), token)
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
