package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/httpapi"
)

// Headers populated by the authenticating gateway in front of this service.
// Authentication itself is an external collaborator; the engine only needs
// the resolved identity.
const (
	ViewerIDHeader   = "X-Viewer-ID"
	ViewerRoleHeader = "X-Viewer-Role"
	ViewerOrgHeader  = "X-Viewer-Org"
)

// ProvideViewer extracts the authenticated viewer from gateway headers and
// puts it into the request context. Requests without a complete, valid
// identity are rejected before reaching any handler.
func ProvideViewer() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(ViewerIDHeader))
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "CALENDAR_NO_VIEWER", "missing or invalid viewer identity", nil)
				return
			}
			role, err := viewer.NewRole(r.Header.Get(ViewerRoleHeader))
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "CALENDAR_NO_VIEWER", "missing or invalid viewer role", nil)
				return
			}
			orgID, err := uuid.Parse(r.Header.Get(ViewerOrgHeader))
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "CALENDAR_NO_VIEWER", "missing or invalid viewer organization", nil)
				return
			}

			ctx := composables.WithViewer(r.Context(), viewer.Viewer{
				ID:    id,
				Role:  role,
				OrgID: orgID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
