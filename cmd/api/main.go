package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/fleet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/fleet-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/fleet-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/fleet-backend-go/internal/service/dashboard"
	deliveryService "github.com/cmlabs-hris/fleet-backend-go/internal/service/delivery"
	driverDashboardService "github.com/cmlabs-hris/fleet-backend-go/internal/service/driver_dashboard"
	expenseService "github.com/cmlabs-hris/fleet-backend-go/internal/service/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
	invitationService "github.com/cmlabs-hris/fleet-backend-go/internal/service/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/fleet-backend-go/internal/service/payroll"
	weighTicketService "github.com/cmlabs-hris/fleet-backend-go/internal/service/weigh_ticket"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(context.Background()); err != nil {
			return err
		}
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	materialRepo := postgresql.NewMaterialRepository(db)
	deliveryOrderRepo := postgresql.NewDeliveryOrderRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	salaryRecordRepo := postgresql.NewSalaryRecordRepository(db)
	weighTicketRepo := postgresql.NewWeighTicketRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			return fmt.Errorf("init local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	location := cfg.App.Location

	fileService := file.NewFileService(fileStorage)
	invitationSvc := invitationService.NewInvitationService(txManager, invitationRepo, userRepo)
	authService := serviceAuth.NewAuthService(txManager, userRepo, refreshTokenRepo, JWTService, invitationSvc)
	deliverySvc := deliveryService.NewDeliveryService(txManager, deliveryOrderRepo, clientRepo, materialRepo, userRepo, fileService, hub)
	leaveService := leave.NewLeaveService(leaveRequestRepo, userRepo, hub, location)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, fileService, hub)
	payrollSvc := payrollService.NewPayrollService(txManager, salaryRecordRepo, userRepo, deliveryOrderRepo, cfg.Payroll.RatePerDelivery, location)
	weighTicketSvc := weighTicketService.NewWeighTicketService(weighTicketRepo, fileService)
	masterService := master.NewMasterService(clientRepo, materialRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, location)
	driverDashboardSvc := driverDashboardService.NewDriverDashboardService(userRepo, deliveryOrderRepo, expenseRepo, location)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewDeliveryHandler(deliverySvc),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewExpenseHandler(expenseSvc),
		appHTTP.NewInvitationHandler(invitationSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewWeighTicketHandler(weighTicketSvc),
		appHTTP.NewMasterHandler(masterService),
		appHTTP.NewDashboardHandler(dashboardSvc, driverDashboardSvc),
		appHTTP.NewEventHandler(JWTService, hub),
	)

	// Request contexts end on shutdown so open event streams return.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	// WriteTimeout stays unset: the event stream is a long-lived response.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancelBase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
