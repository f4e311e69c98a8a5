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

	closeFlowHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/close_flow"
	getAvailableSeatsHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/get_available_seats"
	getFlowHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/get_flow"
	getRouteRatingsHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/get_route_ratings"
	getTicketHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/get_ticket"
	getUserTicketsHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/get_user_tickets"
	openFlowHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/open_flow"
	searchRoutesHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/search_routes"
	submitBookingHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/submit_booking"
	submitRatingHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/submit_rating"
	toggleSeatHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/toggle_seat"
	updateFlowHandler "github.com/m04kA/Kelale-BookingPortal/internal/api/handlers/update_flow"
	"github.com/m04kA/Kelale-BookingPortal/internal/api/middleware"
	"github.com/m04kA/Kelale-BookingPortal/internal/config"
	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	flowRegistry "github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/flows"
	ticketRepo "github.com/m04kA/Kelale-BookingPortal/internal/infra/storage/ticket"
	"github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
	ticketsService "github.com/m04kA/Kelale-BookingPortal/internal/service/tickets"
	createBookingUC "github.com/m04kA/Kelale-BookingPortal/internal/usecase/create_booking"
	loadRouteUC "github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
	rateRouteUC "github.com/m04kA/Kelale-BookingPortal/internal/usecase/rate_route"
	searchRoutesUC "github.com/m04kA/Kelale-BookingPortal/internal/usecase/search_routes"
	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
	"github.com/m04kA/Kelale-BookingPortal/pkg/dbmetrics"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
	"github.com/m04kA/Kelale-BookingPortal/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("KELALE_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting Kelale-BookingPortal...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (хранилище выданных билетов)
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент Kelale API
	kelaleClient := kelaleapi.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log,
	)
	log.Info("Kelale API client initialized (url=%s, timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var ticketRepository *ticketRepo.Repository
	var submissionRecorder createBookingUC.SubmissionRecorder
	var openFlowsGauge flowRegistry.Metrics

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		ticketRepository = ticketRepo.NewRepository(wrappedDB)
		kelaleClient.WithObserver(metricsCollector)
		submissionRecorder = metricsCollector
		openFlowsGauge = metricsCollector
	} else {
		ticketRepository = ticketRepo.NewRepository(db)
	}

	// Инициализируем сервисы
	seatResolver := seats.NewResolver(cfg.Booking.DefaultTotalSeats)
	ticketSvc := ticketsService.NewService(ticketRepository, log)
	defaultPaymentMethod := domain.PaymentMethod(cfg.Booking.DefaultPaymentMethod)

	// Инициализируем use cases
	searchRoutesUseCase := searchRoutesUC.NewUseCase(kelaleClient, log)
	loadRouteUseCase := loadRouteUC.NewUseCase(kelaleClient, seatResolver, log)
	rateRouteUseCase := rateRouteUC.NewUseCase(kelaleClient, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		kelaleClient,
		ticketRepository,
		seatResolver,
		submissionRecorder,
		defaultPaymentMethod,
		log,
	)

	// Реестр открытых страниц бронирования с очисткой по простою
	registry := flowRegistry.NewRegistry(cfg.Flows.IdleTTL(), openFlowsGauge, log)
	stopSweepCh := make(chan struct{})
	go registry.Run(cfg.Flows.SweepInterval(), stopSweepCh)
	log.Info("Flow registry started (idle_ttl=%s, sweep_interval=%s)", cfg.Flows.IdleTTL(), cfg.Flows.SweepInterval())

	flowDeps := workflow.Dependencies{
		Loader:               loadRouteUseCase,
		Submitter:            createBookingUseCase,
		Sessions:             middleware.ContextSessionProvider{},
		DefaultPaymentMethod: defaultPaymentMethod,
		Logger:               log,
	}

	// Инициализируем handlers
	searchRoutes := searchRoutesHandler.NewHandler(searchRoutesUseCase, log)
	getAvailableSeats := getAvailableSeatsHandler.NewHandler(loadRouteUseCase, log)
	openFlow := openFlowHandler.NewHandler(registry, flowDeps, log)
	getFlow := getFlowHandler.NewHandler(registry, log)
	updateFlow := updateFlowHandler.NewHandler(registry, log)
	toggleSeat := toggleSeatHandler.NewHandler(registry, log)
	submitBooking := submitBookingHandler.NewHandler(registry, log)
	closeFlow := closeFlowHandler.NewHandler(registry, log)
	getRouteRatings := getRouteRatingsHandler.NewHandler(rateRouteUseCase, log)
	submitRating := submitRatingHandler.NewHandler(rateRouteUseCase, log)
	getUserTickets := getUserTicketsHandler.NewHandler(ticketSvc, log)
	getTicket := getTicketHandler.NewHandler(ticketSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без сессии)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Сессия необязательна: операции, которым нужен вход, отвечают 401
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(middleware.AuthOptions{
		JWTSecret:  cfg.Session.JWTSecret,
		UserHeader: cfg.Session.UserHeader,
	}, log))

	// --- Маршруты ---
	api.HandleFunc("/routes", searchRoutes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/routes/{routeId}/seats", getAvailableSeats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/routes/{routeId}/ratings", getRouteRatings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/routes/{routeId}/ratings", submitRating.Handle).Methods(http.MethodPost)

	// --- Страница бронирования ---
	api.HandleFunc("/routes/{routeId}/flows", openFlow.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}", getFlow.Handle).Methods(http.MethodGet)
	api.HandleFunc("/flows/{flowId}", updateFlow.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/flows/{flowId}", closeFlow.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/flows/{flowId}/seats/{seat}", toggleSeat.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Билеты ---
	api.HandleFunc("/tickets", getUserTickets.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{bookingId}", getTicket.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем открытые страницы: отправки в полете отменяются
	close(stopSweepCh)
	registry.CloseAll()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server exited")
}
