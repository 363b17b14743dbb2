package fakebackend

// Route path constants for the endpoints the fake backend serves itself.
// Domain routes are registered per test with Handle.
const (
	RouteLogin        = "/auth/login/"
	RouteTokenRefresh = "/auth/token/refresh/"
)

// Route keys are "METHOD path", the same shape ServeMux patterns use.
func routeKey(method, path string) string {
	return method + " " + path
}
