package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peoplekit/teamcal/modules"
	"github.com/peoplekit/teamcal/pkg/application"
	"github.com/peoplekit/teamcal/pkg/configuration"
	"github.com/peoplekit/teamcal/pkg/eventbus"
	"github.com/peoplekit/teamcal/pkg/httpapi"
	"github.com/peoplekit/teamcal/pkg/metrics"
	"github.com/peoplekit/teamcal/pkg/middleware"
	"github.com/peoplekit/teamcal/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if err := app.Migrations().Apply(ctx); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	app.RegisterMiddleware(
		middleware.RequestLogger(logger),
		middleware.ProvidePool(pool),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance := server.NewHTTPServer(
		app,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		}),
	)
	log.Printf("Listening on: %s\n", conf.SocketAddress)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
