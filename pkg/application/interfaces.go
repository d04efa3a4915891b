package application

import (
	"context"
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amadeus-works/koechel/pkg/eventbus"
)

// Controller registers a set of routes under a unique key.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires services and controllers into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type MigrationManager interface {
	RegisterSchema(fs ...*embed.FS)
	Apply(ctx context.Context) error
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Migrations() MigrationManager

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}
