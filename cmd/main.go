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

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	assignVanHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/assign_van"
	cancelAdminHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/cancel_appointment_admin"
	cancelOwnerHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/cancel_appointment_owner"
	checkEligibilityHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/check_eligibility"
	createAppointmentHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/create_appointment"
	getAppointmentsByDayHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_appointments_by_day"
	getAvailableTimesHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_available_times"
	getAvailableVansHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_available_vans"
	getPricesHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_prices"
	getUserAppointmentsHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_user_appointments"
	healthHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/health"
	sessionLoginHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/session_login"
	sessionLogoutHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/session_logout"
	sessionRefreshHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/session_refresh"
	sessionRoleHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/session_role"
	updateAppointmentHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/config"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	"github.com/m04kA/SMC-MovingService/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	priceRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/price"
	userRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/user"
	vanRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/van"
	appointmentsService "github.com/m04kA/SMC-MovingService/internal/service/appointments"
	pricingService "github.com/m04kA/SMC-MovingService/internal/service/pricing"
	sessionsService "github.com/m04kA/SMC-MovingService/internal/service/sessions"
	assignVanUC "github.com/m04kA/SMC-MovingService/internal/usecase/assign_van"
	cancelAppointmentUC "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
	checkEligibilityUC "github.com/m04kA/SMC-MovingService/internal/usecase/check_eligibility"
	createAppointmentUC "github.com/m04kA/SMC-MovingService/internal/usecase/create_appointment"
	getAvailableTimesUC "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_times"
	getAvailableVansUC "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_vans"
	updateAppointmentUC "github.com/m04kA/SMC-MovingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/metrics"
	"github.com/m04kA/SMC-MovingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-MovingService/pkg/tracing"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

// tokenStore хранилище refresh токенов (Redis или память процесса)
type tokenStore interface {
	Save(ctx context.Context, token, username string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}

// eventPublisher публикация событий (Kafka или no-op)
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-MovingService...")
	log.Info("Configuration loaded from %s", configPath)

	rules, err := cfg.Scheduling.Rules()
	if err != nil {
		log.Fatal("Invalid scheduling rules: %v", err)
	}
	log.Info("Scheduling: timezone=%s, slots=%v, capacity=%d, lead_time=%s, van_buffer=%s",
		rules.Loc(), rules.DailySlots, rules.SlotCapacity, rules.EditLeadTime, rules.VanBuffer)

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	if err := sqlbuilder.SetDialect(sqlbuilder.Dialect(cfg.Database.Driver)); err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
		cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка собирает метрики запросов; без коллектора просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Хранилище refresh токенов
	var tokens tokenStore
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		store := session.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
		redisCtx, cancelRedis := context.WithTimeout(context.Background(), 3*time.Second)
		err := store.Ping(redisCtx)
		cancelRedis()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		tokens = store
		log.Info("Refresh tokens are stored in redis (addr=%s)", cfg.Redis.Addr)
	} else {
		tokens = session.NewMemoryStore()
		log.Warn("Redis disabled, refresh tokens are kept in memory and lost on restart")
	}

	// Публикация событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Topic)
		log.Info("Appointment events are published to kafka topic %s (brokers=%v)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	vanRepository := vanRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	priceRepository := priceRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(priceRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, rules.Loc(), log)
	sessionsSvc := sessionsService.NewService(userRepository, tokens, sessionsService.Config{
		AccessSecret:  cfg.Auth.JWTSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     time.Duration(cfg.Auth.AccessTTLMinutes) * time.Minute,
		RefreshTTL:    time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	}, log)

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(appointmentRepository, rules, log)
	getAvailableVansUseCase := getAvailableVansUC.NewUseCase(vanRepository, appointmentRepository, rules, log)
	checkEligibilityUseCase := checkEligibilityUC.NewUseCase(appointmentRepository, metricsCollector, rules, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		userRepository,
		pricingSvc,
		publisher,
		metricsCollector,
		txMgr,
		rules,
		log,
	)
	assignVanUseCase := assignVanUC.NewUseCase(
		appointmentRepository,
		vanRepository,
		publisher,
		metricsCollector,
		txMgr,
		rules,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		pricingSvc,
		publisher,
		metricsCollector,
		txMgr,
		rules,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		userRepository,
		publisher,
		metricsCollector,
		txMgr,
		rules,
		log,
	)

	// Инициализируем handlers
	secureCookie := cfg.Auth.CookieSecure
	sessionLogin := sessionLoginHandler.NewHandler(sessionsSvc, secureCookie, log)
	sessionRefresh := sessionRefreshHandler.NewHandler(sessionsSvc, secureCookie, log)
	sessionLogout := sessionLogoutHandler.NewHandler(sessionsSvc, secureCookie, log)
	sessionRole := sessionRoleHandler.NewHandler(sessionsSvc, log)
	getPrices := getPricesHandler.NewHandler(pricingSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointmentsByDay := getAppointmentsByDayHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	checkEligibility := checkEligibilityHandler.NewHandler(checkEligibilityUseCase, log)
	assignVan := assignVanHandler.NewHandler(assignVanUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	cancelOwner := cancelOwnerHandler.NewHandler(cancelAppointmentUseCase, log)
	cancelAdmin := cancelAdminHandler.NewHandler(cancelAppointmentUseCase, log)
	getAvailableVans := getAvailableVansHandler.NewHandler(getAvailableVansUseCase, log)
	health := healthHandler.NewHandler(map[string]healthHandler.CheckFunc{
		"database": wrappedDB.PingContext,
		"tokens":   tokens.Ping,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// --- Сессии ---
	r.HandleFunc("/session/login", sessionLogin.Handle).Methods(http.MethodPost)
	r.HandleFunc("/session/refresh-token", sessionRefresh.Handle).Methods(http.MethodPost)
	r.HandleFunc("/session/logout", sessionLogout.Handle).Methods(http.MethodPost)
	r.HandleFunc("/session/role", sessionRole.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют access токен)
	// ============================================================

	anyRole := r.NewRoute().Subrouter()
	anyRole.Use(middleware.Auth(sessionsSvc))
	anyRole.Use(middleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

	// Прайс-лист
	anyRole.HandleFunc("/prices", getPrices.Handle).Methods(http.MethodGet)

	// Создание заявки
	anyRole.HandleFunc("/appointment", createAppointment.Handle).Methods(http.MethodPost)

	// Свободные времена на день
	anyRole.HandleFunc("/appointment/available-times/{day}", getAvailableTimes.Handle).Methods(http.MethodGet)

	// Заявки пользователя (владелец или администратор, проверяется в handler)
	anyRole.HandleFunc("/appointment/user/{username}", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Действия владельца ---
	owner := r.NewRoute().Subrouter()
	owner.Use(middleware.Auth(sessionsSvc))
	owner.Use(middleware.RequireRole(domain.RoleUser))

	owner.HandleFunc("/appointment/eligibility/{id:[0-9]+}", checkEligibility.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointment/appointmentUser/{id:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/appointment/user/{id:[0-9]+}", cancelOwner.Handle).Methods(http.MethodPut)

	// --- Администратор ---
	admin := r.NewRoute().Subrouter()
	admin.Use(middleware.Auth(sessionsSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/appointment/day/{day}", getAppointmentsByDay.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointment/admin/{id:[0-9]+}", cancelAdmin.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointment/{id:[0-9]+}", assignVan.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/van/available", getAvailableVans.Handle).Methods(http.MethodGet)

	// Сквозные middleware снаружи роутера: CORS preflight, 404 и 405 тоже проходят через них
	var handler http.Handler = r
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate limit config: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, trustedProxies)
		handler = limiter.Middleware(log)(handler)
		log.Info("Rate limit enabled: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	handler = middleware.CORS(middleware.CORSOptions{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAgeSeconds:    cfg.CORS.MaxAgeSeconds,
	})(handler)
	handler = middleware.AccessLog(log)(handler)
	handler = middleware.RequestID(handler)
	handler = otelhttp.NewHandler(handler, cfg.Metrics.ServiceName)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
