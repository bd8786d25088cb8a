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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"

	bulkCreateCapacitiesHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/bulk_create_capacities"
	cancelSessionHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/cancel_session"
	createCapacityHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/create_capacity"
	createSessionHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/create_session"
	deleteCapacityHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/delete_capacity"
	getCatalogHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/get_catalog"
	getLocationWeekHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/get_location_week"
	getSessionHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/get_session"
	getSessionGridHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/get_session_grid"
	navigateSessionHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/navigate_session"
	selectSlotHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/select_slot"
	submitBookingHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/submit_booking"
	updateCapacityHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/update_capacity"
	updateDetailsHandler "github.com/m04kA/SMC-CapacityService/internal/api/handlers/update_details"
	"github.com/m04kA/SMC-CapacityService/internal/api/middleware"
	"github.com/m04kA/SMC-CapacityService/internal/config"
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	capacityCache "github.com/m04kA/SMC-CapacityService/internal/infra/cache/capacity"
	"github.com/m04kA/SMC-CapacityService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	capacitiesService "github.com/m04kA/SMC-CapacityService/internal/service/capacities"
	"github.com/m04kA/SMC-CapacityService/internal/service/schedule"
	sessionsService "github.com/m04kA/SMC-CapacityService/internal/service/sessions"
	getWeekGridUC "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
	selectSlotUC "github.com/m04kA/SMC-CapacityService/internal/usecase/select_slot"
	submitBookingUC "github.com/m04kA/SMC-CapacityService/internal/usecase/submit_booking"
	migrator "github.com/m04kA/SMC-CapacityService/migrator/postgres"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
	"github.com/m04kA/SMC-CapacityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CapacityService/pkg/keylock"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
	"github.com/m04kA/SMC-CapacityService/pkg/logger"
	"github.com/m04kA/SMC-CapacityService/pkg/metrics"
	"github.com/m04kA/SMC-CapacityService/pkg/txmanager"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

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

	log.Info("Starting SMC-CapacityService...")

	// Часовой пояс локации и каталог часов
	clk, err := clock.New(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	if cfg.Schedule.CatalogVersion != domain.DefaultCatalog.Version() {
		log.Fatal("Unsupported catalog version %q (built-in: %q)",
			cfg.Schedule.CatalogVersion, domain.DefaultCatalog.Version())
	}
	log.Info("Schedule: timezone=%s, catalog_version=%s", cfg.Schedule.Timezone, cfg.Schedule.CatalogVersion)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет.
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrator.Migrate(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	sessionRepository := sessionRepo.NewRepository(wrappedDB, clk.Location())
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Клиент backend вместимости и кэш списков
	capacityClient := capacityapi.NewClient(
		cfg.CapacityAPI.URL,
		time.Duration(cfg.CapacityAPI.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Capacity API client initialized (url=%s, timeout=%ds)", cfg.CapacityAPI.URL, cfg.CapacityAPI.Timeout)

	var cache *capacityCache.Cache
	if cfg.Cache.Enabled {
		cache = capacityCache.NewCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTL)*time.Second, metricsCollector)
		log.Info("Capacity cache enabled (size=%d, ttl=%ds)", cfg.Cache.Size, cfg.Cache.TTL)
	}
	capacityLister := capacityCache.NewCachedLister(capacityClient, cache, log)

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// События об изменении вместимости между репликами
	var changePublisher capacitiesService.ChangePublisher
	if cfg.RabbitMQ.Enabled {
		instanceID := cfg.RabbitMQ.InstanceID
		if instanceID == "" {
			instanceID = uuid.NewString()
		}

		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		publisher, err := events.NewPublisher(conn, cfg.RabbitMQ.Exchange, instanceID, log)
		if err != nil {
			log.Fatal("Failed to create events publisher: %v", err)
		}
		defer publisher.Close()
		changePublisher = publisher

		listener, err := events.NewListener(conn, cfg.RabbitMQ.Exchange, instanceID, capacityLister, log)
		if err != nil {
			log.Fatal("Failed to create events listener: %v", err)
		}
		defer listener.Close()
		if err := listener.Start(appCtx); err != nil {
			log.Fatal("Failed to start events listener: %v", err)
		}
		log.Info("Capacity events enabled (exchange=%s, instance=%s)", cfg.RabbitMQ.Exchange, instanceID)
	}

	// Инициализируем сервисы
	scheduler := schedule.NewService(clk, domain.DefaultCatalog, log, metricsCollector)
	fetchTracker := latest.NewTracker()
	sessionLocks := keylock.New()
	locationLocks := keylock.New()

	sessionSvc := sessionsService.NewService(
		sessionRepository,
		scheduler,
		txMgr,
		fetchTracker,
		log,
	)
	capacitySvc := capacitiesService.NewService(
		capacityClient,
		capacityLister,
		changePublisher,
		locationLocks,
		clk,
		domain.DefaultCatalog,
		log,
	)

	// Инициализируем use cases
	getWeekGridUseCase := getWeekGridUC.NewUseCase(
		sessionRepository,
		capacityLister,
		scheduler,
		fetchTracker,
		metricsCollector,
		log,
	)
	selectSlotUseCase := selectSlotUC.NewUseCase(
		sessionRepository,
		capacityLister,
		scheduler,
		txMgr,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		sessionRepository,
		capacityClient,
		scheduler,
		sessionLocks,
		fetchTracker,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(scheduler, log)
	getLocationWeek := getLocationWeekHandler.NewHandler(getWeekGridUseCase, clk, domain.ViewDonor, log)
	getStaffGrid := getLocationWeekHandler.NewHandler(getWeekGridUseCase, clk, domain.ViewStaff, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, clk, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getSessionGrid := getSessionGridHandler.NewHandler(getWeekGridUseCase, log)
	navigateSession := navigateSessionHandler.NewHandler(sessionSvc, getWeekGridUseCase, clk, log)
	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, log)
	updateDetails := updateDetailsHandler.NewHandler(sessionSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionSvc, log)
	createCapacity := createCapacityHandler.NewHandler(capacitySvc, clk, log)
	updateCapacity := updateCapacityHandler.NewHandler(capacitySvc, log)
	deleteCapacity := deleteCapacityHandler.NewHandler(capacitySvc, log)
	bulkCreateCapacities := bulkCreateCapacitiesHandler.NewHandler(capacitySvc, clk, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		if err != nil {
			log.Fatal("Failed to create rate limiter: %v", err)
		}
		api.Use(limiter.Limit)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// DONOR ROUTES
	// ============================================================

	// Каталог часовых интервалов
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)

	// Недельная сетка локации
	api.HandleFunc("/locations/{locationId}/weeks", getLocationWeek.Handle).Methods(http.MethodGet)

	// --- Сессии бронирования ---
	api.HandleFunc("/booking-sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}", cancelSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/booking-sessions/{sessionId}/grid", getSessionGrid.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}/navigate", navigateSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/selection", selectSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/details", updateDetails.Handle).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES
	// ============================================================

	staff := api.PathPrefix("/staff").Subrouter()

	// Сетка вместимости для персонала
	staff.HandleFunc("/locations/{locationId}/capacity-grid", getStaffGrid.Handle).Methods(http.MethodGet)

	// --- Управление слотами ---
	// bulk регистрируется раньше {capacityId}
	staff.HandleFunc("/capacities/bulk", bulkCreateCapacities.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/capacities", createCapacity.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/capacities/{capacityId}", updateCapacity.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/capacities/{capacityId}", deleteCapacity.Handle).Methods(http.MethodDelete)

	// Очистка завершенных сессий
	go runSessionCleanup(appCtx, sessionSvc, clk, cfg.Sessions, log)

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
	stopApp()

	// Останавливаем сбор метрик connection pool
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

// runSessionCleanup периодически удаляет завершенные сессии старше retention
func runSessionCleanup(ctx context.Context, svc *sessionsService.Service, clk *clock.Clock, cfg config.SessionsConfig, log *logger.Logger) {
	retention := time.Duration(cfg.Retention) * time.Second
	ticker := time.NewTicker(time.Duration(cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := svc.CleanupFinished(ctx, clk.Now(), retention)
			if err != nil {
				log.Error("Session cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Info("Session cleanup: removed %d finished sessions", removed)
			}
		}
	}
}
