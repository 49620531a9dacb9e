package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/response"
)

type workerIDKey struct{}

// AuthRequired rejects requests without a verified access token and stashes
// the token's worker id in the request context for WorkerID.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			workerID, ok := claims["worker_id"].(string)
			if !ok || workerID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), workerIDKey{}, workerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// WorkerID returns the authenticated worker's id placed in the context by
// AuthRequired.
func WorkerID(ctx context.Context) (string, error) {
	workerID, ok := ctx.Value(workerIDKey{}).(string)
	if !ok || workerID == "" {
		return "", auth.ErrInvalidToken
	}
	return workerID, nil
}
