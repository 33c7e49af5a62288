package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/cancel_reservation"
	confirmPaymentHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/confirm_payment"
	createReservationHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/list_reservations"
	manageBlackoutsHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/manage_blackouts"
	rescheduleReservationHandler "github.com/kamillakovacs/craftbeerspa/internal/api/handlers/reschedule_reservation"
	"github.com/kamillakovacs/craftbeerspa/internal/api/middleware"
	"github.com/kamillakovacs/craftbeerspa/internal/config"
	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	blackoutRepo "github.com/kamillakovacs/craftbeerspa/internal/infra/storage/blackout"
	reservationRepo "github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/billingo"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/mailersend"
	"github.com/kamillakovacs/craftbeerspa/internal/jobs"
	blackoutsService "github.com/kamillakovacs/craftbeerspa/internal/service/blackouts"
	notificationsService "github.com/kamillakovacs/craftbeerspa/internal/service/notifications"
	reservationsService "github.com/kamillakovacs/craftbeerspa/internal/service/reservations"
	cancelReservationUC "github.com/kamillakovacs/craftbeerspa/internal/usecase/cancel_reservation"
	confirmPaymentUC "github.com/kamillakovacs/craftbeerspa/internal/usecase/confirm_payment"
	createReservationUC "github.com/kamillakovacs/craftbeerspa/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/kamillakovacs/craftbeerspa/internal/usecase/get_available_slots"
	rescheduleReservationUC "github.com/kamillakovacs/craftbeerspa/internal/usecase/reschedule_reservation"
	"github.com/kamillakovacs/craftbeerspa/pkg/logger"
	"github.com/kamillakovacs/craftbeerspa/pkg/metrics"
	"github.com/kamillakovacs/craftbeerspa/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting craftbeerspa reservation service...")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	policy, err := domain.NewBookingPolicy(cfg.Booking.Timezone, cfg.Booking.HorizonDays, cfg.Booking.PreparedTTLMinutes)
	if err != nil {
		log.Fatal("Failed to build booking policy: %v", err)
	}
	log.Info("Booking policy: timezone=%s, horizon=%d days, prepared ttl=%s",
		cfg.Booking.Timezone, policy.HorizonDays, policy.PreparedTTL)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Integration clients
	gatewayClient := barion.NewClient(
		cfg.Gateway.URL,
		cfg.Gateway.POSKey,
		cfg.Gateway.CallbackURL,
		cfg.Gateway.RedirectURL,
		time.Duration(cfg.Gateway.Timeout)*time.Second,
		log,
	)
	mailerClient := mailersend.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.APIKey,
		cfg.Mailer.FromEmail,
		cfg.Mailer.FromName,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	invoicerClient := billingo.NewClient(
		cfg.Invoicing.URL,
		cfg.Invoicing.APIKey,
		cfg.Invoicing.BlockID,
		cfg.Invoicing.BankAccountID,
		time.Duration(cfg.Invoicing.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (gateway=%s, mailer=%s, invoicing=%s)",
		cfg.Gateway.URL, cfg.Mailer.URL, cfg.Invoicing.URL)

	// Repositories and transaction manager
	reservationRepository := reservationRepo.NewRepository(db)
	blackoutRepository := blackoutRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Services
	notifier := notificationsService.NewService(
		mailerClient,
		invoicerClient,
		reservationRepository,
		metricsCollector,
		notificationsService.Config{
			OperatorEmail:       cfg.Mailer.OperatorEmail,
			ConfirmedTemplateHU: cfg.Mailer.ConfirmedTemplateHU,
			ConfirmedTemplateEN: cfg.Mailer.ConfirmedTemplateEN,
			ChangedTemplateHU:   cfg.Mailer.ChangedTemplateHU,
			ChangedTemplateEN:   cfg.Mailer.ChangedTemplateEN,
			CanceledTemplateHU:  cfg.Mailer.CanceledTemplateHU,
			CanceledTemplateEN:  cfg.Mailer.CanceledTemplateEN,
			OperatorTemplate:    cfg.Mailer.OperatorTemplate,
			ReservationBaseURL:  cfg.Mailer.ReservationBaseURL,
		},
		log,
	)
	reservationSvc := reservationsService.NewService(reservationRepository, policy, log)
	blackoutSvc := blackoutsService.NewService(blackoutRepository, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		blackoutRepository,
		policy,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		blackoutRepository,
		gatewayClient,
		txMgr,
		policy,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		reservationRepository,
		gatewayClient,
		notifier,
		txMgr,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		notifier,
		txMgr,
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		blackoutRepository,
		notifier,
		txMgr,
		policy,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, metricsCollector, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, metricsCollector, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, metricsCollector, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, metricsCollector, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	manageBlackouts := manageBlackoutsHandler.NewHandler(blackoutSvc, log)

	// Background sweeper
	sweeper := jobs.NewSweeper(notifier, reservationRepository, policy, cfg.Booking.SweepSchedule, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start sweeper: %v", err)
	}

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{paymentId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{paymentId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{paymentId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Gateway callback; serves both the customer redirect and the
	// server-to-server notification
	api.HandleFunc("/payments/callback", confirmPayment.Handle).Methods(http.MethodGet, http.MethodPost)

	// Operator routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts", manageBlackouts.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts", manageBlackouts.HandleBlock).Methods(http.MethodPost)
	admin.HandleFunc("/blackouts", manageBlackouts.HandleUnblock).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
