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

	assignStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/assign_staff"
	createBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_business_hours"
	listBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/reschedule_booking"
	transitionBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/transition_booking"
	updateBusinessHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	hoursRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/hours"
	locksRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/locks"
	personRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/person"
	catalogServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/scanner"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	hoursService "github.com/m04kA/SMC-SalonService/internal/service/hours"
	"github.com/m04kA/SMC-SalonService/internal/service/overlap"
	createBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/mq"
	"github.com/m04kA/SMC-SalonService/pkg/token"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("SALON_CONFIG")
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	// С выключенными метриками везде передается nil, все методы *metrics.Metrics это допускают
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	personRepository := personRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	lockRepository := locksRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Каналы уведомлений: email (если задан ключ SendGrid), брокер (если включен), лог всегда
	channels := []notifier.Channel{notifier.NewLogChannel(log)}

	if email := notifier.NewEmailChannel(notifier.EmailConfig{
		APIKey:    cfg.Notifier.SendGridAPIKey,
		FromEmail: cfg.Notifier.FromEmail,
		FromName:  cfg.Notifier.FromName,
		Host:      cfg.Notifier.SendGridHost,
	}); email != nil {
		channels = append(channels, email)
		log.Info("Email notifications enabled (from=%s)", cfg.Notifier.FromEmail)
	}

	if cfg.Broker.Enabled {
		publisher, err := mq.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to broker: %v", err)
		}
		defer publisher.Close()

		channels = append(channels, notifier.NewBrokerChannel(publisher))
		log.Info("Broker notifications enabled (exchange=%s)", cfg.Broker.Exchange)
	}

	notifications := notifier.New(log, metricsCollector, channels...)
	tokens := token.NewIssuer(cfg.Reschedule.Secret, cfg.Reschedule.TokenTTL())
	guard := overlap.NewGuard(bookingRepository)

	// Инициализируем сервисы
	hoursSvc := hoursService.NewService(
		hoursRepository,
		personRepository,
		txMgr,
		domain.BusinessHours{StartHour: cfg.BusinessHours.StartHour, EndHour: cfg.BusinessHours.EndHour},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		personRepository,
		guard,
		lockRepository,
		txMgr,
		tokens,
		notifications,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		personRepository,
		guard,
		lockRepository,
		catalogClient,
		txMgr,
		notifications,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		hoursSvc,
		catalogClient,
		location,
		log,
	)

	// Инициализируем фоновые проходы
	scheduleCtx, stopSchedule := context.WithCancel(context.Background())
	defer stopSchedule()

	var runner *scanner.Runner
	if cfg.Scheduler.Enabled {
		scan := scanner.New(
			bookingRepository,
			personRepository,
			bookingSvc,
			tokens,
			notifications,
			metricsCollector,
			scanner.Config{
				Lookaheads:    cfg.Scheduler.Lookaheads(),
				Band:          cfg.Scheduler.ReminderBand(),
				Grace:         cfg.Scheduler.Grace(),
				RescheduleURL: cfg.Reschedule.URL,
				Location:      location,
			},
			log,
		)

		runner = scanner.NewRunner(log,
			scanner.Task{
				Name:     scanner.TaskReminders,
				Interval: cfg.Scheduler.ReminderInterval(),
				Run: func(ctx context.Context) error {
					_, err := scan.ScanReminders(ctx)
					return err
				},
			},
			scanner.Task{
				Name:     scanner.TaskMissed,
				Interval: cfg.Scheduler.MissedInterval(),
				Run: func(ctx context.Context) error {
					_, err := scan.ScanMissed(ctx)
					return err
				},
			},
		)
		runner.Start(scheduleCtx)
		log.Info("Scheduler started (reminders every %s, missed every %s)",
			cfg.Scheduler.ReminderInterval(), cfg.Scheduler.MissedInterval())
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	checkIn := transitionBookingHandler.NewHandler(bookingSvc, domain.ActionCheckIn, log)
	complete := transitionBookingHandler.NewHandler(bookingSvc, domain.ActionComplete, log)
	cancel := transitionBookingHandler.NewHandler(bookingSvc, domain.ActionCancel, log)
	reschedule := rescheduleBookingHandler.NewHandler(bookingSvc, location, log)
	assignStaff := assignStaffHandler.NewHandler(bookingSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на день
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рабочие часы салона или сотрудника
	api.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Перенос по ссылке из уведомления о пропуске
	api.HandleFunc("/reschedule", reschedule.HandleByToken).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancel.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", reschedule.Handle).Methods(http.MethodPatch)

	// --- Для сотрудников ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRoles(domain.RoleStaff, domain.RoleAdmin))

	staff.HandleFunc("/bookings/self", createBooking.HandleSelf).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/walk-in", createBooking.HandleWalkIn).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/complete", complete.Handle).Methods(http.MethodPatch)

	// --- Для администратора ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))

	admin.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}/assign-staff", assignStaff.Handle).Methods(http.MethodPatch)

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

	shutdownCtx, cancelShutdown := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые проходы и ждем завершения текущих
	stopSchedule()
	if runner != nil {
		runner.Wait()
		log.Info("Scheduler stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
