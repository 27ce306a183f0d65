package dtos

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/event"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/modules/calendar/services"
	"github.com/peoplekit/teamcal/pkg/constants"
	"github.com/peoplekit/teamcal/pkg/serrors"
)

const dateLayout = "2006-01-02"

// EventQueryDTO carries the raw query parameters of an events request. All
// fields are strings as they arrive on the wire; ToQuery performs the
// parsing after validation.
type EventQueryDTO struct {
	From    string `validate:"required,datetime=2006-01-02"`
	To      string `validate:"required,datetime=2006-01-02"`
	Org     string `validate:"omitempty,uuid"`
	Scope   string `validate:"omitempty,max=32"`
	Types   string `validate:"omitempty,max=256"`
	Persons string `validate:"omitempty,max=4096"`
	Region  string `validate:"omitempty,max=64"`
}

func (d *EventQueryDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return nil, true
	}
	validationErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return serrors.ValidationErrors{
			"": serrors.NewInvalidRange(errs.Error()),
		}, false
	}
	out := serrors.ProcessValidatorErrors(validationErrs, func(field string) string {
		return "Calendar.Validation." + field
	})
	return out, false
}

// ToQuery converts the validated DTO into a service query. The organization
// defaults to the viewer's own; unknown event types and malformed person ids
// are rejected rather than silently dropped, so a typo cannot widen a result.
func (d *EventQueryDTO) ToQuery(v viewer.Viewer) (services.EventQuery, error) {
	orgID := v.OrgID
	if d.Org != "" {
		parsed, err := uuid.Parse(d.Org)
		if err != nil {
			return services.EventQuery{}, serrors.NewInvalidRange("malformed organization id")
		}
		orgID = parsed
	}

	from, err := time.Parse(dateLayout, d.From)
	if err != nil {
		return services.EventQuery{}, serrors.NewInvalidRange("malformed from date")
	}
	to, err := time.Parse(dateLayout, d.To)
	if err != nil {
		return services.EventQuery{}, serrors.NewInvalidRange("malformed to date")
	}
	r, err := daterange.New(from, to)
	if err != nil {
		return services.EventQuery{}, err
	}

	var types []event.Type
	for _, raw := range splitCSV(d.Types) {
		t, err := event.NewType(raw)
		if err != nil {
			return services.EventQuery{}, serrors.NewInvalidRange("unknown event type: " + raw)
		}
		types = append(types, t)
	}

	var persons []uuid.UUID
	for _, raw := range splitCSV(d.Persons) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return services.EventQuery{}, serrors.NewInvalidRange("malformed person id: " + raw)
		}
		persons = append(persons, id)
	}

	return services.EventQuery{
		OrgID:             orgID,
		Range:             r,
		Scope:             services.ParseScope(d.Scope),
		Types:             types,
		ExplicitPersonIDs: persons,
		Region:            strings.TrimSpace(d.Region),
	}, nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RecomputeDTO names the plan a recompute request targets.
type RecomputeDTO struct {
	Plan string `validate:"required,oneof=annual_leave sickness other_absence"`
}

func (d *RecomputeDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return nil, true
	}
	validationErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return serrors.ValidationErrors{
			"": serrors.NewInvalidRange(errs.Error()),
		}, false
	}
	out := serrors.ProcessValidatorErrors(validationErrs, func(field string) string {
		return "Calendar.Validation." + field
	})
	return out, false
}
