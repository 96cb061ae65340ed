package http

import (
	"net/http"

	"radlab-backoffice/internal/delivery/http/handler"
	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	userHandler           *handler.UserHandler
	patientHandler        *handler.PatientHandler
	doctorHandler         *handler.DoctorHandler
	representativeHandler *handler.RepresentativeHandler
	branchHandler         *handler.BranchHandler
	scanHandler           *handler.ScanHandler
	stockHandler          *handler.StockHandler
	appointmentHandler    *handler.AppointmentHandler
	expenseHandler        *handler.ExpenseHandler
	auditLogHandler       *handler.AuditLogHandler
	wsHandler             *handler.WebSocketHandler
	healthHandler         *handler.HealthHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	rateLimitMiddleware   *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	representativeHandler *handler.RepresentativeHandler,
	branchHandler *handler.BranchHandler,
	scanHandler *handler.ScanHandler,
	stockHandler *handler.StockHandler,
	appointmentHandler *handler.AppointmentHandler,
	expenseHandler *handler.ExpenseHandler,
	auditLogHandler *handler.AuditLogHandler,
	wsHandler *handler.WebSocketHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		userHandler:           userHandler,
		patientHandler:        patientHandler,
		doctorHandler:         doctorHandler,
		representativeHandler: representativeHandler,
		branchHandler:         branchHandler,
		scanHandler:           scanHandler,
		stockHandler:          stockHandler,
		appointmentHandler:    appointmentHandler,
		expenseHandler:        expenseHandler,
		auditLogHandler:       auditLogHandler,
		wsHandler:             wsHandler,
		healthHandler:         healthHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		rateLimitMiddleware:   rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/verify-registration-2fa", r.authHandler.VerifyRegistration).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/verify-login-2fa", r.authHandler.VerifyLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Realtime notifications (protected, token passed as a query parameter)
	ws := api.PathPrefix("/ws").Subrouter()
	ws.Use(r.authMiddleware.Authenticate)
	ws.HandleFunc("", r.wsHandler.Subscribe).Methods(http.MethodGet)

	// Everything below requires authentication plus a per-route privilege.
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	r.registerCRUD(protected, "/users", entity.ModuleUsers, crudHandlers{
		create:  r.userHandler.Create,
		getAll:  r.userHandler.GetAll,
		getByID: r.userHandler.GetByID,
		update:  r.userHandler.Update,
		delete:  r.userHandler.Delete,
	})

	// Privilege management (super admin only)
	privileges := protected.NewRoute().Subrouter()
	privileges.Use(middleware.RequireSuperAdmin)
	privileges.HandleFunc("/users/{id}/privileges", r.userHandler.GrantPrivilege).Methods(http.MethodPost)
	privileges.HandleFunc("/users/{id}/privileges", r.userHandler.RevokePrivilege).Methods(http.MethodDelete)

	r.registerCRUD(protected, "/patients", entity.ModulePatients, crudHandlers{
		create:  r.patientHandler.Create,
		getAll:  r.patientHandler.GetAll,
		getByID: r.patientHandler.GetByID,
		update:  r.patientHandler.Update,
		delete:  r.patientHandler.Delete,
	})

	r.registerCRUD(protected, "/doctors", entity.ModuleDoctors, crudHandlers{
		create:  r.doctorHandler.Create,
		getAll:  r.doctorHandler.GetAll,
		getByID: r.doctorHandler.GetByID,
		update:  r.doctorHandler.Update,
		delete:  r.doctorHandler.Delete,
	})
	protected.Handle("/doctors/recount",
		middleware.RequirePrivilege(entity.ModuleDoctors, entity.OperationUpdate)(http.HandlerFunc(r.doctorHandler.Recount)),
	).Methods(http.MethodPost)

	r.registerCRUD(protected, "/representatives", entity.ModuleRepresentatives, crudHandlers{
		create:  r.representativeHandler.Create,
		getAll:  r.representativeHandler.GetAll,
		getByID: r.representativeHandler.GetByID,
		update:  r.representativeHandler.Update,
		delete:  r.representativeHandler.Delete,
	})
	protected.Handle("/representatives/recount",
		middleware.RequirePrivilege(entity.ModuleRepresentatives, entity.OperationUpdate)(http.HandlerFunc(r.representativeHandler.Recount)),
	).Methods(http.MethodPost)

	r.registerCRUD(protected, "/branches", entity.ModuleBranches, crudHandlers{
		create:  r.branchHandler.Create,
		getAll:  r.branchHandler.GetAll,
		getByID: r.branchHandler.GetByID,
		update:  r.branchHandler.Update,
		delete:  r.branchHandler.Delete,
	})

	r.registerCRUD(protected, "/scans", entity.ModuleScans, crudHandlers{
		create:  r.scanHandler.Create,
		getAll:  r.scanHandler.GetAll,
		getByID: r.scanHandler.GetByID,
		update:  r.scanHandler.Update,
		delete:  r.scanHandler.Delete,
	})

	r.registerCRUD(protected, "/stock", entity.ModuleStock, crudHandlers{
		create:  r.stockHandler.Create,
		getAll:  r.stockHandler.GetAll,
		getByID: r.stockHandler.GetByID,
		update:  r.stockHandler.Update,
		delete:  r.stockHandler.Delete,
	})
	protected.Handle("/stock/{id}/adjust",
		middleware.RequirePrivilege(entity.ModuleStock, entity.OperationUpdate)(http.HandlerFunc(r.stockHandler.Adjust)),
	).Methods(http.MethodPatch)

	r.registerCRUD(protected, "/appointments", entity.ModuleAppointments, crudHandlers{
		create:  r.appointmentHandler.Create,
		getAll:  r.appointmentHandler.GetAll,
		getByID: r.appointmentHandler.GetByID,
		update:  r.appointmentHandler.Update,
		delete:  r.appointmentHandler.Delete,
	})
	protected.Handle("/appointments/{id}/status",
		middleware.RequirePrivilege(entity.ModuleAppointments, entity.OperationUpdate)(http.HandlerFunc(r.appointmentHandler.UpdateStatus)),
	).Methods(http.MethodPatch)
	protected.Handle("/appointments/{id}/history",
		middleware.RequirePrivilege(entity.ModuleAppointments, entity.OperationView)(http.HandlerFunc(r.appointmentHandler.GetHistory)),
	).Methods(http.MethodGet)

	r.registerCRUD(protected, "/expenses", entity.ModuleExpenses, crudHandlers{
		create:  r.expenseHandler.Create,
		getAll:  r.expenseHandler.GetAll,
		getByID: r.expenseHandler.GetByID,
		update:  r.expenseHandler.Update,
		delete:  r.expenseHandler.Delete,
	})
	protected.Handle("/expenses/{id}/status",
		middleware.RequirePrivilege(entity.ModuleExpenses, entity.OperationApprove)(http.HandlerFunc(r.expenseHandler.UpdateStatus)),
	).Methods(http.MethodPatch)

	// Audit trail (read only)
	protected.Handle("/audit-logs",
		middleware.RequirePrivilege(entity.ModuleAudit, entity.OperationView)(http.HandlerFunc(r.auditLogHandler.GetAll)),
	).Methods(http.MethodGet)
	protected.Handle("/audit-logs/{id}",
		middleware.RequirePrivilege(entity.ModuleAudit, entity.OperationView)(http.HandlerFunc(r.auditLogHandler.GetByID)),
	).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.rateLimitMiddleware.Handle)

	return r.router
}

type crudHandlers struct {
	create  http.HandlerFunc
	getAll  http.HandlerFunc
	getByID http.HandlerFunc
	update  http.HandlerFunc
	delete  http.HandlerFunc
}

// registerCRUD wires the standard five routes for a module, each gated by
// the matching privilege operation.
func (r *Router) registerCRUD(router *mux.Router, prefix, module string, h crudHandlers) {
	router.Handle(prefix,
		middleware.RequirePrivilege(module, entity.OperationCreate)(h.create),
	).Methods(http.MethodPost)
	router.Handle(prefix,
		middleware.RequirePrivilege(module, entity.OperationView)(h.getAll),
	).Methods(http.MethodGet)
	router.Handle(prefix+"/{id}",
		middleware.RequirePrivilege(module, entity.OperationView)(h.getByID),
	).Methods(http.MethodGet)
	router.Handle(prefix+"/{id}",
		middleware.RequirePrivilege(module, entity.OperationUpdate)(h.update),
	).Methods(http.MethodPatch, http.MethodPut)
	router.Handle(prefix+"/{id}",
		middleware.RequirePrivilege(module, entity.OperationDelete)(h.delete),
	).Methods(http.MethodDelete)
}
