package internal

import (
	"net/http"
	"profiled/internal/controllers"
	"profiled/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, historyController *controllers.HistoryController, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(logger)

	routers.Post("/profiles", http.HandlerFunc(apiController.ReceiveProfile))
	routers.Get("/profiles/query", http.HandlerFunc(apiController.GetProfiles))
	routers.Get("/urns", http.HandlerFunc(apiController.GetUrns))
	routers.Get("/windows", http.HandlerFunc(apiController.GetWindows))
	routers.Get("/history", http.HandlerFunc(historyController.GetHistory))
	return routers
}
