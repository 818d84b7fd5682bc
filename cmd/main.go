package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appointmentStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/appointment_status"
	clientsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/clients"
	completeAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	deleteProfessionalHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_professional"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	healthHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_professional_appointments"
	publicBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/public_booking"
	updateAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment"
	workCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/work_calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	financeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/finance"
	outboxRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/outbox"
	kafkaClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/kafka"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	clientsService "github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	professionalsService "github.com/m04kA/SMC-SchedulingService/internal/service/professionals"
	"github.com/m04kA/SMC-SchedulingService/internal/service/relay"
	"github.com/m04kA/SMC-SchedulingService/internal/service/timezone"
	workCalendarService "github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar"
	completeAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/complete_appointment"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	publicBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	updateAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")

	fallbackLoc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid default time zone %q: %v", cfg.Scheduling.DefaultTimeZone, err)
	}

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

	// Метрики (nil - выключены, все методы nil-safe)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	financeRepository := financeRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)

	// Сервисы
	tzResolver := timezone.NewResolver(catalogRepository, fallbackLoc, log)
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		outboxRepository,
		txMgr,
		tzResolver,
		metricsCollector,
		log,
	)
	workCalendarSvc := workCalendarService.NewService(calendarRepository, catalogRepository, txMgr, log)
	professionalSvc := professionalsService.NewService(
		appointmentRepository,
		catalogRepository,
		txMgr,
		professionalsService.RealTimeProvider{},
		log,
	)
	clientSvc := clientsService.NewService(clientRepository, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		catalogRepository,
		tzResolver,
		txMgr,
		cfg.Scheduling.DefaultServiceDurationMinutes,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		outboxRepository,
		tzResolver,
		txMgr,
		metricsCollector,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		tzResolver,
		txMgr,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		financeRepository,
		outboxRepository,
		tzResolver,
		txMgr,
		metricsCollector,
		log,
	)
	publicBookingUseCase := publicBookingUC.NewUseCase(clientSvc, createAppointmentUseCase, tzResolver, log)

	// Redis (опционально: лимитер публичных эндпоинтов)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		log.Info("Redis configured at %s", cfg.Redis.Addr)
	}

	// Kafka и relay outbox (опционально)
	var (
		publisher *kafkaClient.Client
		relayWG   sync.WaitGroup
	)
	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()

	if cfg.Outbox.Enabled && cfg.Kafka.Brokers != "" {
		publisher, err = kafkaClient.NewClient(cfg.Kafka.Brokers, 10*time.Second, log)
		if err != nil {
			log.Fatal("Failed to initialize kafka client: %v", err)
		}
		defer publisher.Close()

		outboxRelay := relay.NewRelay(
			outboxRepository,
			publisher,
			txMgr,
			metricsCollector,
			relay.RealTimeProvider{},
			log,
			relay.Config{
				PollInterval: time.Duration(cfg.Outbox.PollIntervalMs) * time.Millisecond,
				BatchSize:    cfg.Outbox.BatchSize,
			},
		)
		relayWG.Add(1)
		go func() {
			defer relayWG.Done()
			outboxRelay.Run(relayCtx)
		}()
		log.Info("Outbox relay started (brokers=%s)", cfg.Kafka.Brokers)
	} else {
		log.Info("Outbox relay disabled, events stay in the outbox table")
	}

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	appointmentStatus := appointmentStatusHandler.NewHandler(appointmentSvc, log)
	workCalendar := workCalendarHandler.NewHandler(workCalendarSvc, log)
	deleteProfessional := deleteProfessionalHandler.NewHandler(professionalSvc, log)
	clients := clientsHandler.NewHandler(clientSvc, log)
	publicBooking := publicBookingHandler.NewHandler(publicBookingUseCase, log)

	readyChecks := []healthHandler.Check{{Name: "db", Check: wrappedDB.PingContext}}
	if rdb != nil {
		readyChecks = append(readyChecks, healthHandler.Check{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	if publisher != nil {
		readyChecks = append(readyChecks, healthHandler.Check{Name: "kafka", Check: publisher.Ready})
	}
	health := healthHandler.NewHandler(log, readyChecks...)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (тенант в пути, rate limit)
	// ============================================================

	public := api.PathPrefix("/public/{tenantId}").Subrouter()
	public.Use(middleware.PathTenant)
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, window)
		if rdb != nil {
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit.Requests, window, cfg.Metrics.ServiceName+":ratelimit")
		}
		public.Use(middleware.RateLimit(limiter, metricsCollector, cfg.RateLimit.FailOpen, log))
		log.Info("Rate limit enabled for public routes: %d requests per %s", cfg.RateLimit.Requests, window)
	}

	public.HandleFunc("/professionals/{professionalId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings", publicBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.Tenant)

	// --- Слоты и записи ---
	staff.HandleFunc("/professionals/{professionalId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{professionalId}/appointments", listAppointments.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}/confirm", appointmentStatus.Confirm).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}/cancel", appointmentStatus.Cancel).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}/no-show", appointmentStatus.NoShow).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Рабочий календарь и специалисты ---
	staff.HandleFunc("/professionals/{professionalId}/work-calendar", workCalendar.List).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{professionalId}/work-calendar", workCalendar.Replace).Methods(http.MethodPut)
	staff.HandleFunc("/professionals/{professionalId}/work-calendar/{weekday}", workCalendar.Get).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{professionalId}", deleteProfessional.Handle).Methods(http.MethodDelete)

	// --- Клиенты ---
	staff.HandleFunc("/clients", clients.FindOrCreate).Methods(http.MethodPost)
	staff.HandleFunc("/clients/{clientId}", clients.Get).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Relay дописывает текущий батч и выходит
	stopRelay()
	relayWG.Wait()

	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
