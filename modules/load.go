package modules

import (
	"github.com/amadeus-works/koechel/modules/catalog"
	"github.com/amadeus-works/koechel/pkg/application"
)

var BuiltInModules = []application.Module{
	catalog.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
