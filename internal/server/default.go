package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/amadeus-works/koechel/pkg/application"
	"github.com/amadeus-works/koechel/pkg/configuration"
	"github.com/amadeus-works/koechel/pkg/constants"
	"github.com/amadeus-works/koechel/pkg/middleware"
	"github.com/amadeus-works/koechel/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(options.Configuration.Origin),
	}

	if options.Configuration.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: options.Configuration.RateLimit.GlobalRPS,
			Store:             middleware.NewMemoryStore(),
		}))
	}

	app.RegisterMiddleware(middlewares...)
	app.RegisterControllers(NewHealthController(options.Pool))

	serverInstance := server.NewHTTPServer(
		app,
		notFoundHandler(),
		methodNotAllowedHandler(),
	)
	return serverInstance, nil
}
