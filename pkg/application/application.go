package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/peoplekit/teamcal/pkg/eventbus"
)

// Controller registers HTTP routes on the shared router. Key must be unique
// per controller; later registrations with the same key replace earlier ones.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module is a self-contained feature slice that wires its services and
// controllers into the application.
type Module interface {
	Register(app Application) error
	Name() string
}

type Application interface {
	Pool() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Migrations() MigrationManager

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Middleware() []mux.MiddlewareFunc
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:           opts.Pool,
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
		migrations:     NewMigrationManager(opts.Pool),
	}
}

// application with a dynamically extendable service registry
type application struct {
	pool           *pgxpool.Pool
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	controllerKeys []string
	middleware     []mux.MiddlewareFunc
	migrations     MigrationManager
}

func (app *application) Pool() *pgxpool.Pool {
	return app.pool
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) Migrations() MigrationManager {
	return app.migrations
}

func (app *application) RegisterServices(services ...interface{}) {
	for _, svc := range services {
		t := reflect.TypeOf(svc).Elem()
		app.services[t] = svc
	}
}

// Service looks up a registered service by example value, e.g.
// app.Service(services.BalanceService{}).(*services.BalanceService).
func (app *application) Service(service interface{}) interface{} {
	svc, ok := app.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %s not found", reflect.TypeOf(service).Name()))
	}
	return svc
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, exists := app.controllers[c.Key()]; !exists {
			app.controllerKeys = append(app.controllerKeys, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) Controllers() []Controller {
	out := make([]Controller, 0, len(app.controllerKeys))
	for _, key := range app.controllerKeys {
		out = append(out, app.controllers[key])
	}
	return out
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

// Load registers modules in order, failing fast on the first error.
func Load(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return fmt.Errorf("failed to register module %s: %w", module.Name(), err)
		}
	}
	return nil
}
