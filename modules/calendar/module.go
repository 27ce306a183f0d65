package calendar

import (
	"embed"

	"github.com/peoplekit/teamcal/modules/calendar/infrastructure/hierarchy"
	"github.com/peoplekit/teamcal/modules/calendar/infrastructure/persistence"
	"github.com/peoplekit/teamcal/modules/calendar/presentation/controllers"
	"github.com/peoplekit/teamcal/modules/calendar/services"
	"github.com/peoplekit/teamcal/pkg/application"
	"github.com/peoplekit/teamcal/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/calendar-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	resolver := services.NewScopeResolver(
		hierarchy.NewHierarchyProvider(),
		conf.Calendar.HierarchyTimeout,
	)
	holidays := services.NewHolidayService(
		persistence.NewHolidayRepository(),
		conf.Calendar.DefaultHolidayRegion,
	)

	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewVisibilityService(persistence.NewEventRepository(), resolver, holidays),
		services.NewBalanceService(
			persistence.NewBalanceRepository(),
			app.EventPublisher(),
			conf.Calendar.BalanceFreshnessWindow,
		),
	)
	app.RegisterControllers(
		controllers.NewCalendarAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "calendar"
}
