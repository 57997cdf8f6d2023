package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier is the slice of the Firebase auth client the middleware
// needs; tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type ctxKey struct{ name string }

var ctxKeyAdminUID = ctxKey{name: "adminUID"}

// AdminUID returns the verified admin's UID, if the request passed AdminAuth.
func AdminUID(ctx context.Context) string {
	uid, _ := ctx.Value(ctxKeyAdminUID).(string)
	return uid
}

// AdminAuth verifies "Authorization: Bearer <ID_TOKEN>" against Firebase
// and requires the admin custom claim. Status transitions and annotations
// are admin-only actions; customers never get past this middleware.
func AdminAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				unauthorized(w, http.StatusServiceUnavailable, "auth not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if idToken == "" {
				unauthorized(w, http.StatusUnauthorized, "empty bearer token")
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				unauthorized(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if admin, _ := token.Claims["admin"].(bool); !admin {
				unauthorized(w, http.StatusForbidden, "admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdminUID, token.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
