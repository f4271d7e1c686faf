package auth

import (
	"context"
	"errors"
	"filepress/internal/config"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const contextKeySubject contextKey = "auth_subject"

var (
	hmacMethods = []string{"HS256", "HS384", "HS512"}
	jwksMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "PS256"}
)

// Authenticator validates bearer tokens and answers port.AuthChecker
type Authenticator struct {
	keyfunc jwt.Keyfunc
	methods []string
	issuer  string
	leeway  time.Duration
	logger  *slog.Logger
}

// NewAuthenticator verifies tokens against a JWKS endpoint when one is configured,
// otherwise against the shared HMAC secret.
func NewAuthenticator(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (*Authenticator, error) {
	if cfg.JWKSURL != "" {
		k, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS: %w", err)
		}
		return NewAuthenticatorWithKeyfunc(k.Keyfunc, jwksMethods, cfg, logger), nil
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("no JWT secret or JWKS URL configured")
	}
	secret := []byte(cfg.JWTSecret)
	kf := func(*jwt.Token) (any, error) {
		return secret, nil
	}
	return NewAuthenticatorWithKeyfunc(kf, hmacMethods, cfg, logger), nil
}

// NewAuthenticatorWithKeyfunc builds an Authenticator around an existing key lookup
func NewAuthenticatorWithKeyfunc(kf jwt.Keyfunc, methods []string, cfg config.AuthConfig, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		keyfunc: kf,
		methods: methods,
		issuer:  cfg.Issuer,
		leeway:  cfg.Leeway,
		logger:  logger.With("component", "jwt_auth"),
	}
}

// Middleware puts the token subject in the request context when the bearer token is valid.
// Requests without a valid token go through anonymous.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := a.subject(tokenString)
			if err != nil {
				a.logger.Debug("bearer token rejected", "error", err, "remote_addr", r.RemoteAddr)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

func (a *Authenticator) subject(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(a.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(a.leeway),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, a.keyfunc, opts...)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}
	return subject, nil
}

// IsAuthenticated reports whether the middleware accepted a token for this request
func (a *Authenticator) IsAuthenticated(ctx context.Context) bool {
	return SubjectFromContext(ctx) != ""
}

// WithSubject returns a context carrying an authenticated subject
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, contextKeySubject, subject)
}

// SubjectFromContext returns the authenticated subject or an empty string
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(contextKeySubject).(string)
	return subject
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
