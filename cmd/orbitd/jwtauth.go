package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"orbit/observability/logging"
)

// adminScope is the single claim this demo harness checks. The teacher
// codebase's otc-gateway service supports a full role hierarchy (teller,
// supervisor, compliance, ...) backed by RSA/Vault/WebAuthn; Orbit's HTTP
// surface only gates one action class (governance calls into admin), so it
// is reduced to HS256 plus one scope string.
const adminScope = "orbit:admin"

type contextKey string

const contextKeySubject contextKey = "orbitd_subject"

// adminClaims is the JWT payload an operator token carries.
type adminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// adminAuth issues and verifies HS256 bearer tokens scoped to adminScope,
// standing in for the host ledger's signature-authorization of the
// governance caller at the HTTP boundary (the on-chain admin address check
// inside each contract still runs independently).
type adminAuth struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func newAdminAuth(secret string, ttl time.Duration) *adminAuth {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &adminAuth{secret: []byte(secret), ttl: ttl, logger: slog.Default()}
}

// SetLogger overrides the logger rejected bearer tokens are reported to,
// primarily so main.go can point this at the same structured logger every
// other subsystem writes to.
func (a *adminAuth) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// issue mints a bearer token for subject, scoped to adminScope.
func (a *adminAuth) issue(subject string) (string, error) {
	claims := adminClaims{
		Scope: adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Require is chi middleware rejecting any request whose bearer token does
// not verify and carry adminScope.
func (a *adminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			a.logger.Warn("rejected bearer token", logging.MaskField("token", raw), "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		if claims.Scope != adminScope {
			writeError(w, http.StatusForbidden, "token missing required scope")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeySubject, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
