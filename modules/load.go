package modules

import (
	"github.com/peoplekit/teamcal/modules/calendar"
	"github.com/peoplekit/teamcal/pkg/application"
)

var BuiltInModules = []application.Module{
	calendar.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	return application.Load(app, externalModules...)
}
