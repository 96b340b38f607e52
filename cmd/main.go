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

	createBookingHandler "github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers/get_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-ProphetBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ProphetBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ProphetBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/booking"
	courseRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/course"
	customerRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/migrations"
	paymentRepo "github.com/m04kA/SMC-ProphetBookingService/internal/infra/storage/payment"
	bookingsService "github.com/m04kA/SMC-ProphetBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ProphetBookingService/internal/service/idgen"
	paymentsService "github.com/m04kA/SMC-ProphetBookingService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-ProphetBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/logger"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ProphetBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ProphetBookingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Обёртка БД: с метриками или без
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Plain(db)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	courseRepository := courseRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)

	// Генераторы идентификаторов (по одному на таблицу)
	bookingIDs := idgen.NewGenerator(bookingRepository, log,
		idgen.WithLength(cfg.Booking.IDLength),
		idgen.WithMaxAttempts(cfg.Booking.IDMaxAttempts),
	)
	paymentIDs := idgen.NewGenerator(paymentRepository, log,
		idgen.WithLength(cfg.Booking.IDLength),
		idgen.WithMaxAttempts(cfg.Booking.IDMaxAttempts),
	)

	// Сервисы
	paymentSvc := paymentsService.NewService(paymentRepository, paymentIDs, log)
	bookingSvc := bookingsService.NewService(bookingRepository, paymentSvc, customerRepository, txMgr, log)

	// Use cases
	deps := createBookingUC.Dependencies{
		Customers: customerRepository,
		Courses:   courseRepository,
		IDs:       bookingIDs,
		Bookings:  bookingRepository,
		Payments:  paymentSvc,
		TxManager: txMgr,
		Logger:    log,
	}
	if metricsCollector != nil {
		deps.Metrics = metricsCollector
	}
	createBookingUseCase := createBookingUC.NewUseCase(deps)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-Account-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	close(stopMetricsCh)

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
