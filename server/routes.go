package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Login flow. The guard runs here too: an authenticated user never
	// re-sees the login form.
	s.RegisterRouteHandler("GET "+RouteRoot, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Role-gated dashboards. The guard middleware runs before any handler
	// work so no protected content is computed for a rejected navigation.
	s.RegisterRouteHandler("GET "+RouteAdminHome, ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAdminHome+"/", ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteManagerHome, ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteManagerHome+"/", ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteSalesHome, ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteSalesHome+"/", ChainMiddleware(s.HomeHandler(), s.PageMiddleware(s.GuardMiddleware)...))

	// Scoped record lists
	s.RegisterRouteHandler("GET "+RouteAPICountries, ChainMiddleware(s.CountriesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICars, ChainMiddleware(s.CarsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIExpenses, ChainMiddleware(s.ExpensesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIInventory, ChainMiddleware(s.InventoryHandler(), s.APIMiddleware()...))

	// Operational endpoints
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
