package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/fleet-backend-go/internal/config"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	authHandler AuthHandler,
	deliveryHandler DeliveryHandler,
	leaveHandler LeaveHandler,
	expenseHandler ExpenseHandler,
	invitationHandler InvitationHandler,
	payrollHandler PayrollHandler,
	weighTicketHandler WeighTicketHandler,
	masterHandler MasterHandler,
	dashboardHandler DashboardHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fleet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// The event stream stays open for the whole session
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/events/stream"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Proof photos, receipts and weigh ticket images. The verifier also
	// accepts the jwt cookie so image tags can load them.
	if cfg.Storage.Type == "local" {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath))))
		})
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		r.Get("/events/stream", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", authHandler.Me)
			r.Post("/events/token", eventHandler.GetSSEToken)

			r.Route("/deliveries", func(r chi.Router) {
				r.Get("/", deliveryHandler.List)
				r.Get("/number/{orderNumber}", deliveryHandler.GetByOrderNumber)
				r.Get("/{id}", deliveryHandler.Get)
				r.Get("/{id}/detail", deliveryHandler.GetDetail)
				r.Post("/{id}/start", deliveryHandler.Start)
				r.Post("/{id}/proof", deliveryHandler.UploadProof)
				r.Post("/{id}/confirm", deliveryHandler.Confirm)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDeliveryManage))
					r.Post("/", deliveryHandler.Create)
					r.Get("/stats", deliveryHandler.Stats)
					r.Put("/{id}/assign", deliveryHandler.AssignDriver)
					r.Post("/{id}/invoice", deliveryHandler.MarkInvoiced)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/pending", leaveHandler.ListPending)
					r.Get("/stats", leaveHandler.Stats)
					r.Put("/{id}/status", leaveHandler.UpdateStatus)
				})

				r.Get("/{id}", leaveHandler.GetRequest)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", expenseHandler.Submit)
				r.Post("/receipt", expenseHandler.UploadReceipt)
				r.Get("/my", expenseHandler.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionExpenseApprove))
					r.Get("/", expenseHandler.ListAll)
					r.Put("/{id}/status", expenseHandler.UpdateStatus)
				})
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Post("/claim", invitationHandler.Claim)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionInvitationManage))
					r.Get("/", invitationHandler.List)
					r.Post("/", invitationHandler.Create)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/mark-paid", payrollHandler.MarkPaid)
				})
			})

			r.Route("/weigh-tickets", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionWeighTicketCreate)).Post("/", weighTicketHandler.Create)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionWeighTicketView))
					r.Get("/", weighTicketHandler.List)
					r.Get("/{id}", weighTicketHandler.Get)
				})
			})

			r.Route("/master", func(r chi.Router) {
				r.Get("/clients", masterHandler.ListClients)
				r.Get("/materials", masterHandler.ListMaterials)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDeliveryManage))
					r.Post("/clients", masterHandler.CreateClient)
					r.Post("/materials", masterHandler.CreateMaterial)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/", dashboardHandler.GetOverview)
				r.With(middleware.RequireRole(user.RoleDriver)).Get("/driver", dashboardHandler.GetDriverDashboard)
			})
		})
	})
	return r
}
