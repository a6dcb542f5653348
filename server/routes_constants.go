package server

const (
	RouteRoot   = "/"
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	RouteAdminHome   = "/admin"
	RouteManagerHome = "/manager"
	RouteSalesHome   = "/sales"

	RouteAPICountries = "/api/countries"
	RouteAPICars      = "/api/cars"
	RouteAPIExpenses  = "/api/expenses"
	RouteAPIInventory = "/api/inventory"

	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
