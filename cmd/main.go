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

	abandonAdmissionHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/abandon_admission"
	adjustEarningsHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/adjust_earnings"
	adjustScheduleHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/adjust_schedule"
	checkAvailabilityHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/check_availability"
	confirmAdmissionHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/confirm_admission"
	getCapacityConfigHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/get_capacity_config"
	listAdjustmentsHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/list_adjustments"
	requestAdmissionHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/request_admission"
	updateCapacityConfigHandler "github.com/v-demidov/HCS-AdmissionService/internal/api/handlers/update_capacity_config"
	"github.com/v-demidov/HCS-AdmissionService/internal/api/middleware"
	"github.com/v-demidov/HCS-AdmissionService/internal/config"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/ledger"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/teamalloc"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/internal/infra/pricetable"
	adjustmentRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/adjustment"
	bookingRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/booking"
	capacityConfigRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
	pricelistRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/pricelist"
	teamRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/team"
	admissionsService "github.com/v-demidov/HCS-AdmissionService/internal/service/admissions"
	capacityService "github.com/v-demidov/HCS-AdmissionService/internal/service/capacity"
	overridesService "github.com/v-demidov/HCS-AdmissionService/internal/service/overrides"
	checkAvailabilityUC "github.com/v-demidov/HCS-AdmissionService/internal/usecase/check_availability"
	requestAdmissionUC "github.com/v-demidov/HCS-AdmissionService/internal/usecase/request_admission"
	"github.com/v-demidov/HCS-AdmissionService/pkg/dbmetrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/logger"
	"github.com/v-demidov/HCS-AdmissionService/pkg/metrics"
	"github.com/v-demidov/HCS-AdmissionService/pkg/simpletxmanager"
	"github.com/v-demidov/HCS-AdmissionService/pkg/txmanager"
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

	log.Info("Starting HCS-AdmissionService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		configRepository     *capacityConfigRepo.Repository
		teamRepository       *teamRepo.Repository
		adjustmentRepository *adjustmentRepo.Repository
		pricelistRepository  *pricelistRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		configRepository = capacityConfigRepo.NewRepository(wrappedDB)
		teamRepository = teamRepo.NewRepository(wrappedDB)
		adjustmentRepository = adjustmentRepo.NewRepository(wrappedDB)
		pricelistRepository = pricelistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		configRepository = capacityConfigRepo.NewRepository(db)
		teamRepository = teamRepo.NewRepository(db)
		adjustmentRepository = adjustmentRepo.NewRepository(db)
		pricelistRepository = pricelistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш прайс-листа
	priceCache := pricetable.NewCache(
		pricelistRepository,
		time.Duration(cfg.Admission.PriceCacheSeconds)*time.Second,
	)

	// Распределитель команд и журнал занятости. Хук освобождения возвращает
	// командный слот при любом освобождении резервации, включая снятие по TTL.
	allocator := teamalloc.New()
	capacityLedger := ledger.New(
		time.Duration(cfg.Admission.HoldTTLSeconds)*time.Second,
		log,
		ledger.WithReleaseHook(func(res *domain.Reservation) {
			if res.TeamName != nil {
				allocator.Release(*res.TeamName, res.Date)
			}
		}),
	)

	// Восстанавливаем занятость слотов из подтвержденных бронирований,
	// чтобы перезапуск сервиса не открывал овербукинг
	restoreFrom := time.Now().AddDate(0, 0, -cfg.Admission.RestoreWindowDays)
	if err := restoreOccupancy(capacityLedger, allocator, bookingRepository, restoreFrom); err != nil {
		log.Fatal("Failed to restore slot occupancy: %v", err)
	}

	// Фоновая уборка просроченных резерваций
	sweeper := ledger.NewSweeper(capacityLedger, time.Duration(cfg.Admission.SweepIntervalSeconds)*time.Second)
	sweeper.Start()
	log.Info("Reservation sweeper started, interval=%ds", cfg.Admission.SweepIntervalSeconds)

	// Инициализируем сервисы
	admissionsSvc := admissionsService.NewService(capacityLedger, bookingRepository, txMgr, log)
	overridesSvc := overridesService.NewService(bookingRepository, adjustmentRepository, txMgr, log)
	capacitySvc := capacityService.NewService(configRepository, log)

	// Инициализируем use cases
	requestAdmissionUseCase := requestAdmissionUC.NewUseCase(
		capacityLedger,
		allocator,
		configRepository,
		teamRepository,
		priceCache,
		metricsFacade(metricsCollector),
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		capacityLedger,
		allocator,
		configRepository,
		teamRepository,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	requestAdmission := requestAdmissionHandler.NewHandler(requestAdmissionUseCase, log)
	confirmAdmission := confirmAdmissionHandler.NewHandler(admissionsSvc, log)
	abandonAdmission := abandonAdmissionHandler.NewHandler(admissionsSvc, log)
	getCapacityConfig := getCapacityConfigHandler.NewHandler(capacitySvc, log)
	updateCapacityConfig := updateCapacityConfigHandler.NewHandler(capacitySvc, log)
	adjustEarnings := adjustEarningsHandler.NewHandler(overridesSvc, log)
	adjustSchedule := adjustScheduleHandler.NewHandler(overridesSvc, log)
	listAdjustments := listAdjustmentsHandler.NewHandler(overridesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота (read-only, ничего не резервирует)
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Допуск бронирования ---

	// Удержание места + снапшот цены
	protected.HandleFunc("/admissions", requestAdmission.Handle).Methods(http.MethodPost)

	// Подтверждение и отказ от удержанной резервации
	protected.HandleFunc("/admissions/{reservationId}/confirm", confirmAdmission.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admissions/{reservationId}/abandon", abandonAdmission.Handle).Methods(http.MethodPost)

	// --- Конфигурация допуска (scheduling limits) ---
	protected.HandleFunc("/scheduling-limits", getCapacityConfig.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/scheduling-limits/{serviceType}", getCapacityConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/scheduling-limits/{serviceType}", updateCapacityConfig.Handle).Methods(http.MethodPut)

	// --- Административные корректировки бронирований ---
	protected.HandleFunc("/bookings/{bookingId}/adjustments", listAdjustments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/adjustments/earnings", adjustEarnings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/adjustments/schedule", adjustSchedule.Handle).Methods(http.MethodPost)

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

	sweeper.Stop()
	log.Info("Reservation sweeper stopped")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

// restoreOccupancy заполняет журнал и распределитель команд из активных
// бронирований, начиная с указанной даты
func restoreOccupancy(
	capacityLedger *ledger.Ledger,
	allocator *teamalloc.Allocator,
	repo *bookingRepo.Repository,
	from time.Time,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bookings, err := repo.ListActiveFromDate(ctx, from)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		date := b.BookingDate.Format(domain.DateFormat)
		snapshot := b.Snapshot
		capacityLedger.Restore(&domain.Reservation{
			ID:          b.ID,
			ServiceType: b.ServiceType,
			Date:        date,
			TeamName:    b.TeamName,
			Snapshot:    &snapshot,
			State:       domain.ReservationConfirmed,
			CreatedAt:   b.CreatedAt,
		})
		if b.TeamName != nil {
			allocator.Restore(*b.TeamName, date, b.ID)
		}
	}

	return nil
}

// nopMetrics заглушка метрик допуска, когда сбор метрик выключен
type nopMetrics struct{}

func (nopMetrics) IncAdmission(serviceType, result string) {}
func (nopMetrics) IncSurgePriced(serviceType string)       {}

func metricsFacade(m *metrics.Metrics) requestAdmissionUC.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
