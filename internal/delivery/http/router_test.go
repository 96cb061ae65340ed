package http

import (
	"testing"

	"radlab-backoffice/internal/delivery/http/handler"
	"radlab-backoffice/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func routeTable(t *testing.T) map[string]bool {
	t.Helper()

	r := NewRouter(
		handler.NewAuthHandler(nil, nil),
		handler.NewUserHandler(nil, nil),
		handler.NewPatientHandler(nil, nil),
		handler.NewDoctorHandler(nil, nil),
		handler.NewRepresentativeHandler(nil, nil),
		handler.NewBranchHandler(nil, nil),
		handler.NewScanHandler(nil, nil),
		handler.NewStockHandler(nil, nil),
		handler.NewAppointmentHandler(nil, nil),
		handler.NewExpenseHandler(nil, nil),
		handler.NewAuditLogHandler(nil),
		handler.NewWebSocketHandler(nil, logrus.New()),
		handler.NewHealthHandler(nil),
		middleware.NewAuthMiddleware(nil, nil, nil, nil),
		middleware.NewCORSMiddleware(nil),
		middleware.NewRateLimitMiddleware(10, 20),
	)

	routes := make(map[string]bool)
	err := r.Setup().Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, m := range methods {
			routes[m+" "+path] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk routes: %v", err)
	}
	return routes
}

func TestRouterRegistersAPIRoutes(t *testing.T) {
	routes := routeTable(t)

	want := []string{
		"GET /api/v1/health",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/verify-registration-2fa",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/verify-login-2fa",
		"POST /api/v1/auth/refresh-token",
		"POST /api/v1/auth/forgot-password",
		"POST /api/v1/auth/reset-password",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"GET /api/v1/ws",
		"POST /api/v1/users/{id}/privileges",
		"DELETE /api/v1/users/{id}/privileges",
		"POST /api/v1/doctors/recount",
		"POST /api/v1/representatives/recount",
		"PATCH /api/v1/stock/{id}/adjust",
		"PATCH /api/v1/appointments/{id}/status",
		"GET /api/v1/appointments/{id}/history",
		"PATCH /api/v1/expenses/{id}/status",
		"GET /api/v1/audit-logs",
		"GET /api/v1/audit-logs/{id}",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q is not registered", route)
		}
	}
}

func TestRouterRegistersCRUDRoutes(t *testing.T) {
	routes := routeTable(t)

	for _, prefix := range []string{
		"/api/v1/users", "/api/v1/patients", "/api/v1/doctors",
		"/api/v1/representatives", "/api/v1/branches", "/api/v1/scans",
		"/api/v1/stock", "/api/v1/appointments", "/api/v1/expenses",
	} {
		for _, route := range []string{
			"POST " + prefix,
			"GET " + prefix,
			"GET " + prefix + "/{id}",
			"PATCH " + prefix + "/{id}",
			"PUT " + prefix + "/{id}",
			"DELETE " + prefix + "/{id}",
		} {
			if !routes[route] {
				t.Errorf("route %q is not registered", route)
			}
		}
	}
}
