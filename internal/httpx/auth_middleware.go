package httpx

import (
	"net/http"
	"strings"
)

// TokenVerifier checks a bearer token and returns the username it asserts.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware admits only requests carrying a valid bearer token. A missing
// token is answered with 401, a token that fails verification with 403.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				JSONMessage(w, http.StatusUnauthorized, MsgAccessDenied)
				return
			}

			username, err := verifier.Verify(token)
			if err != nil {
				JSONMessage(w, http.StatusForbidden, MsgInvalidToken)
				return
			}

			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
