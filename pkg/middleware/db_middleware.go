package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peoplekit/teamcal/pkg/composables"
)

// ProvidePool makes the shared pgx pool available to repositories via the
// request context.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := composables.WithPool(r.Context(), pool)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
