package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/balance"
	"github.com/peoplekit/teamcal/modules/calendar/presentation/controllers/dtos"
	"github.com/peoplekit/teamcal/modules/calendar/presentation/mappers"
	"github.com/peoplekit/teamcal/modules/calendar/presentation/viewmodels"
	"github.com/peoplekit/teamcal/modules/calendar/services"
	"github.com/peoplekit/teamcal/pkg/application"
	"github.com/peoplekit/teamcal/pkg/composables"
	"github.com/peoplekit/teamcal/pkg/httpapi"
	"github.com/peoplekit/teamcal/pkg/middleware"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

// CalendarAPIController exposes the calendar read API. It owns no state of
// its own: every request flows through the visibility or balance service,
// which carry all authorization and redaction decisions.
type CalendarAPIController struct {
	app        application.Application
	visibility *services.VisibilityService
	balances   *services.BalanceService
	basePath   string
}

func NewCalendarAPIController(app application.Application) application.Controller {
	return &CalendarAPIController{
		app:        app,
		visibility: app.Service(services.VisibilityService{}).(*services.VisibilityService),
		balances:   app.Service(services.BalanceService{}).(*services.BalanceService),
		basePath:   "/calendar/api",
	}
}

func (c *CalendarAPIController) Key() string {
	return c.basePath
}

// Register mounts the API under the base path. The viewer requirement is
// scoped to this subrouter only, so unauthenticated surfaces on the same
// server (metrics, not-found handling) stay reachable.
func (c *CalendarAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideViewer())
	router.HandleFunc("/events", c.Events).Methods(http.MethodGet)
	router.HandleFunc("/balances/{personId}", c.Balances).Methods(http.MethodGet)
	router.HandleFunc("/balances/{personId}/recompute", c.Recompute).Methods(http.MethodPost)
}

func (c *CalendarAPIController) Events(w http.ResponseWriter, r *http.Request) {
	v, err := composables.UseViewer(r.Context())
	if err != nil {
		c.respondError(w, r, serrors.NewPermissionDenied("no viewer identity"))
		return
	}

	q := r.URL.Query()
	dto := dtos.EventQueryDTO{
		From:    q.Get("from"),
		To:      q.Get("to"),
		Org:     q.Get("org"),
		Scope:   q.Get("scope"),
		Types:   q.Get("types"),
		Persons: q.Get("persons"),
		Region:  q.Get("region"),
	}
	if errs, ok := dto.Ok(); !ok {
		c.respondValidationErrors(w, errs)
		return
	}

	query, err := dto.ToQuery(v)
	if err != nil {
		c.respondError(w, r, err)
		return
	}

	feed, err := c.visibility.Events(r.Context(), query)
	if err != nil {
		c.respondError(w, r, err)
		return
	}

	out := viewmodels.CalendarFeed{
		Events:   make([]viewmodels.RedactedEvent, 0, len(feed.Events)),
		Holidays: make([]viewmodels.HolidayDay, 0, len(feed.Holidays)),
	}
	for _, e := range feed.Events {
		out.Events = append(out.Events, mappers.EventToViewModel(e))
	}
	for _, h := range feed.Holidays {
		out.Holidays = append(out.Holidays, mappers.HolidayToViewModel(h))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CalendarAPIController) Balances(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["personId"])
	if err != nil {
		c.respondError(w, r, serrors.NewNotFound("unknown person"))
		return
	}

	views, err := c.balances.Balances(r.Context(), personID)
	if err != nil {
		c.respondError(w, r, err)
		return
	}

	out := make([]viewmodels.BalanceView, 0, len(views))
	for _, view := range views {
		out = append(out, mappers.BalanceToViewModel(view))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CalendarAPIController) Recompute(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(mux.Vars(r)["personId"])
	if err != nil {
		c.respondError(w, r, serrors.NewNotFound("unknown person"))
		return
	}

	dto := dtos.RecomputeDTO{Plan: r.URL.Query().Get("plan")}
	if errs, ok := dto.Ok(); !ok {
		c.respondValidationErrors(w, errs)
		return
	}
	planType, err := balance.NewPlanType(dto.Plan)
	if err != nil {
		c.respondValidationErrors(w, serrors.ValidationErrors{
			"Plan": serrors.NewInvalidRange("unknown plan type"),
		})
		return
	}

	if err := c.balances.RequestRecompute(r.Context(), personID, planType); err != nil {
		c.respondError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}

func (c *CalendarAPIController) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case serrors.IsPermissionDenied(err):
		_ = httpapi.WriteError(w, http.StatusForbidden, serrors.CodePermissionDenied, err.Error(), nil)
	case serrors.IsDependencyUnavailable(err):
		_ = httpapi.WriteError(w, http.StatusServiceUnavailable, serrors.CodeDependencyUnavailable, err.Error(), nil)
	case serrors.IsInvalidRange(err):
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, serrors.CodeInvalidRange, err.Error(), nil)
	case serrors.IsNotFound(err):
		_ = httpapi.WriteError(w, http.StatusNotFound, serrors.CodeNotFound, err.Error(), nil)
	default:
		if logger, ok := composables.TryUseLogger(r.Context()); ok {
			logger.WithError(err).Error("calendar api request failed")
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

func (c *CalendarAPIController) respondValidationErrors(w http.ResponseWriter, errs serrors.ValidationErrors) {
	meta := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		meta[field] = fieldErr.Message
	}
	_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid request parameters", meta)
}
