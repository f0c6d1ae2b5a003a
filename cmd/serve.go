package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/PrismCRM/internal/api/handlers/create_booking"
	dashboardHandler "github.com/m04kA/PrismCRM/internal/api/handlers/dashboard"
	exportLeadsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/export_leads"
	getAvailableSlotsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PrismCRM/internal/api/handlers/get_booking"
	healthHandler "github.com/m04kA/PrismCRM/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/list_bookings"
	listLeadsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/list_leads"
	loginHandler "github.com/m04kA/PrismCRM/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/PrismCRM/internal/api/handlers/logout"
	meHandler "github.com/m04kA/PrismCRM/internal/api/handlers/me"
	rentSyncHandler "github.com/m04kA/PrismCRM/internal/api/handlers/rentsync_webhook"
	updateBookingStatusHandler "github.com/m04kA/PrismCRM/internal/api/handlers/update_booking_status"
	updateLeadStatusHandler "github.com/m04kA/PrismCRM/internal/api/handlers/update_lead_status"
	"github.com/m04kA/PrismCRM/internal/api/middleware"
	"github.com/m04kA/PrismCRM/internal/config"
	"github.com/m04kA/PrismCRM/internal/events"
	"github.com/m04kA/PrismCRM/internal/infra/sessions"
	bookingRepo "github.com/m04kA/PrismCRM/internal/infra/storage/booking"
	leadRepo "github.com/m04kA/PrismCRM/internal/infra/storage/lead"
	"github.com/m04kA/PrismCRM/internal/infra/storage/migrations"
	"github.com/m04kA/PrismCRM/internal/infra/users"
	authService "github.com/m04kA/PrismCRM/internal/service/auth"
	bookingsService "github.com/m04kA/PrismCRM/internal/service/bookings"
	leadsService "github.com/m04kA/PrismCRM/internal/service/leads"
	createBookingUC "github.com/m04kA/PrismCRM/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PrismCRM/internal/usecase/get_available_slots"
	ingestLeadUC "github.com/m04kA/PrismCRM/internal/usecase/ingest_lead"
	"github.com/m04kA/PrismCRM/pkg/dbmetrics"
	"github.com/m04kA/PrismCRM/pkg/logger"
	"github.com/m04kA/PrismCRM/pkg/metrics"
	"github.com/m04kA/PrismCRM/pkg/txmanager"
)

const (
	poolStatsInterval      = 15 * time.Second
	sessionCleanupInterval = time.Minute
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

func runServe(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting %s %s...", appName, Version)
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	schedule, err := cfg.Booking.Schedule()
	if err != nil {
		return fmt.Errorf("build tour schedule: %w", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := migrations.Apply(ctx, db, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	wrappedDB.CollectPoolStats(poolStatsInterval, stopMetricsCh)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	leadRepository := leadRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Шина событий: метрики и аудит
	bus := events.NewEventBus(log)
	if metricsCollector != nil {
		events.RegisterMetrics(bus, metricsCollector)
	}
	events.RegisterAudit(bus, log.With("audit"))

	// Сессии: Redis, если включён и доступен, иначе память процесса
	var sessionStore authService.SessionStore
	if cfg.Redis.Enabled {
		redisClient := sessions.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		redisStore := sessions.NewRedisStore(redisClient)
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn("Redis unavailable at %s, falling back to in-memory sessions: %v", cfg.Redis.Address, err)
		} else {
			sessionStore = redisStore
			log.Info("Sessions stored in Redis (%s)", cfg.Redis.Address)
		}
	}
	if sessionStore == nil {
		memoryStore := sessions.NewMemoryStore()
		go memoryStore.RunCleanup(ctx, sessionCleanupInterval)
		sessionStore = memoryStore
		log.Info("Sessions stored in memory")
	}

	// Пользователи админки
	userStore := users.NewFileStore(cfg.Auth.UsersFile, log)
	log.Info("Users file %s loaded (%d users)", cfg.Auth.UsersFile, userStore.Count())
	if cfg.Auth.WatchUsersFile {
		go func() {
			if err := userStore.Watch(ctx); err != nil {
				log.Warn("Users file watcher stopped: %v", err)
			}
		}()
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		leadRepository,
		txMgr,
		wrappedDB,
		bus,
		schedule,
		log,
	)
	leadSvc := leadsService.NewService(leadRepository, txMgr, log)
	authSvc := authService.NewService(
		userStore,
		sessionStore,
		cfg.Auth.DefaultRole,
		time.Duration(cfg.Auth.SessionTTL)*time.Minute,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		leadRepository,
		txMgr,
		bus,
		schedule,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, schedule, log)
	ingestLeadUseCase := ingestLeadUC.NewUseCase(leadRepository, bus, log)

	// Инициализируем handlers
	h := &routeHandlers{
		health:              healthHandler.NewHandler(wrappedDB, log),
		slots:               getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		createBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		getBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		listBookings:        listBookingsHandler.NewHandler(bookingSvc, log),
		updateBookingStatus: updateBookingStatusHandler.NewHandler(bookingSvc, log),
		listLeads:           listLeadsHandler.NewHandler(leadSvc, log),
		exportLeads:         exportLeadsHandler.NewHandler(leadSvc, log),
		updateLeadStatus:    updateLeadStatusHandler.NewHandler(leadSvc, log),
		rentSync:            rentSyncHandler.NewHandler(ingestLeadUseCase, cfg.Webhooks.RentSyncSecret, log),
		login:               loginHandler.NewHandler(authSvc, log),
		logout:              logoutHandler.NewHandler(authSvc, log),
		me:                  meHandler.NewHandler(log),
		dashboard:           dashboardHandler.NewHandler(bookingSvc, log),
	}

	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst, log)
	webhookLimiter := middleware.NewRateLimiter(cfg.Webhooks.RateLimit, cfg.Webhooks.RateBurst, log)
	go loginLimiter.RunCleanup(ctx, limiterCleanupInterval, limiterIdleTimeout)
	go webhookLimiter.RunCleanup(ctx, limiterCleanupInterval, limiterIdleTimeout)

	mw := &routeMiddlewares{
		auth:         middleware.Auth(authSvc, log),
		loginLimit:   loginLimiter.Middleware,
		webhookLimit: webhookLimiter.Middleware,
	}
	if metricsCollector != nil {
		mw.metrics = middleware.Metrics(metricsCollector)
		mw.metricsPath = cfg.Metrics.Path
		mw.metricsView = promhttp.Handler()
		log.Info("HTTP metrics middleware enabled")
	}
	if cfg.Webhooks.RentSyncSecret == "" {
		log.Warn("RentSync webhook secret is not set, webhook accepts any caller")
	}

	router := newRouter(h, mw)
	handler := middleware.CORS(cfg.Server.CORSAllowedOrigins)(middleware.Logging(log)(router))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

