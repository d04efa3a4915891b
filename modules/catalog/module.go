package catalog

import (
	"embed"

	"github.com/amadeus-works/koechel/modules/catalog/handlers"
	"github.com/amadeus-works/koechel/modules/catalog/infrastructure/persistence"
	"github.com/amadeus-works/koechel/modules/catalog/presentation/controllers"
	"github.com/amadeus-works/koechel/modules/catalog/services"
	"github.com/amadeus-works/koechel/pkg/application"
	"github.com/amadeus-works/koechel/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/catalog-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	repo := persistence.NewCatalogRepository()
	app.RegisterServices(
		services.NewCatalogService(repo, app.EventPublisher()),
		services.NewReorderService(repo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewCatalogAPIController(app),
	)

	handlers.RegisterLogHandlers(app.EventPublisher(), configuration.Use().Logger())

	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
