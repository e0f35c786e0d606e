package middleware

import (
	"context"
	"net/http"
	"strings"

	"med-reminder/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Options del middleware de auth.
type Options struct {
	Verifier auth.AuthVerifier // nil => modo dev / local

	// DefaultUserID: identidad implícita cuando no hay verifier ni
	// header de debug. Es el modo "dispositivo local sin cuenta": la
	// app corre contra SQLite con un único usuario.
	DefaultUserID string
}

// AuthContext:
// - Con verifier: si viene Bearer token intenta Verify() y setea claims.
// - Sin verifier: header X-Debug-User-ID setea claims; si tampoco viene
//   y hay DefaultUserID, se usa ese.
// - Si no hay claims el request sigue igual; cada handler decide si
//   exige auth.
func AuthContext(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
				if opts.DefaultUserID != "" {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), auth.Claims{UserID: opts.DefaultUserID})))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := opts.Verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos acá para no acoplar; el handler decide 401.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func withClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
