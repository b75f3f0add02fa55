//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"profiled/internal"
	"profiled/internal/controllers"
	"profiled/internal/persistence"
	"profiled/internal/providers"
	"profiled/internal/repository"
	"profiled/internal/services"
	"profiled/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewI18nProvider,

		repository.NewProfileRepository,
		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,
		services.NewProfileService,
		controllers.NewApiController,
		controllers.NewHistoryController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
