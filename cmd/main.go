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

	adjustWalletHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/adjust_wallet"
	cancelContractHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/cancel_contract"
	completeContractHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/complete_contract"
	createCarHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/create_car"
	createContractHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/create_contract"
	deleteCarHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/delete_car"
	extendBookingHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/extend_booking"
	getAvailableCarsHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/get_available_cars"
	getCarHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/get_car"
	getCarByPlateHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/get_car_by_plate"
	getContractDetailsHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/get_contract_details"
	getUserHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/get_user"
	listCarsHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/list_cars"
	listContractsHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/list_contracts"
	listUsersHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/list_users"
	updateCarRateHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/update_car_rate"
	updateCarStatusHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/update_car_status"
	updateUserStatusHandler "github.com/d3coo/car-rental-fastapi-vite/internal/api/handlers/update_user_status"
	"github.com/d3coo/car-rental-fastapi-vite/internal/api/middleware"
	"github.com/d3coo/car-rental-fastapi-vite/internal/config"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
	firestoreStore "github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore/firestore"
	memoryStore "github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore/memory"
	postgresStore "github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore/postgres"
	carRepo "github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/car"
	contractRepo "github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/contract"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/documents"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	userRepo "github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/user"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/workerpool"
	"github.com/d3coo/car-rental-fastapi-vite/internal/jobs/overdue"
	carsService "github.com/d3coo/car-rental-fastapi-vite/internal/service/cars"
	contractsService "github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts"
	usersService "github.com/d3coo/car-rental-fastapi-vite/internal/service/users"
	createContractUC "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/create_contract"
	extendBookingUC "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/extend_booking"
	getAvailableCarsUC "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_available_cars"
	getContractDetailsUC "github.com/d3coo/car-rental-fastapi-vite/internal/usecase/get_contract_details"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/dbmetrics"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting car rental service...")
	log.Info("Configuration loaded from %s (store driver=%s)", configPath, cfg.Store.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу документов
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open document store: %v", err)
	}
	defer closeStore()

	// Пул воркеров и шлюз к хранилищу
	var (
		poolOpts    []workerpool.Option
		gatewayOpts []documents.Option
		observers   = mapping.Observers{mapping.NewLogObserver(log)}
	)
	if cfg.Metrics.Enabled {
		poolOpts = append(poolOpts, workerpool.WithMetrics(metricsCollector))
		gatewayOpts = append(gatewayOpts, documents.WithMetrics(metricsCollector))
		observers = append(observers, mapping.NewMetricsObserver(metricsCollector))
	}

	pool := workerpool.New(workerpool.Config{
		Workers:    cfg.Pool.Workers,
		QueueDepth: cfg.Pool.QueueDepth,
	}, poolOpts...)
	defer pool.Close()

	gateway := documents.NewGateway(store, pool, documents.RetryConfig{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval(),
		MaxInterval:     cfg.Retry.MaxInterval(),
	}, log, gatewayOpts...)
	log.Info("Worker pool started (workers=%d, queue=%d)", cfg.Pool.Workers, cfg.Pool.QueueDepth)

	// Инициализируем репозитории
	mapper := mapping.NewMapper(observers)
	carRepository := carRepo.NewRepository(gateway, mapper)
	userRepository := userRepo.NewRepository(gateway, mapper)
	contractRepository := contractRepo.NewRepository(gateway, mapper)

	// Инициализируем сервисы
	carSvc := carsService.NewService(carRepository, log)
	userSvc := usersService.NewService(userRepository, log)
	contractSvc := contractsService.NewService(contractRepository, carRepository, log)

	// Инициализируем use cases
	createContractUseCase := createContractUC.NewUseCase(
		contractRepository,
		carRepository,
		userRepository,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(contractRepository, carRepository, log)
	getContractDetailsUseCase := getContractDetailsUC.NewUseCase(
		contractRepository,
		userRepository,
		carRepository,
		log,
	)
	getAvailableCarsUseCase := getAvailableCarsUC.NewUseCase(
		carRepository,
		contractRepository,
		cfg.Booking.MaxAdvanceDays,
		log,
	)

	// Инициализируем handlers
	getCar := getCarHandler.NewHandler(carSvc, log)
	getCarByPlate := getCarByPlateHandler.NewHandler(carSvc, log)
	listCars := listCarsHandler.NewHandler(carSvc, log)
	createCar := createCarHandler.NewHandler(carSvc, log)
	updateCarStatus := updateCarStatusHandler.NewHandler(carSvc, log)
	updateCarRate := updateCarRateHandler.NewHandler(carSvc, log)
	deleteCar := deleteCarHandler.NewHandler(carSvc, log)
	getAvailableCars := getAvailableCarsHandler.NewHandler(getAvailableCarsUseCase, log)

	getUser := getUserHandler.NewHandler(userSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	updateUserStatus := updateUserStatusHandler.NewHandler(userSvc, log)
	adjustWallet := adjustWalletHandler.NewHandler(userSvc, log)

	createContract := createContractHandler.NewHandler(createContractUseCase, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, log)
	getContractDetails := getContractDetailsHandler.NewHandler(getContractDetailsUseCase, log)
	listContracts := listContractsHandler.NewHandler(contractSvc, log)
	cancelContract := cancelContractHandler.NewHandler(contractSvc, log)
	completeContract := completeContractHandler.NewHandler(contractSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metricsCollector.Registry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Машины ---
	// /cars/available регистрируется раньше /cars/{carId}
	api.HandleFunc("/cars/available", getAvailableCars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars", listCars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars", createCar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cars/license/{plate}", getCarByPlate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}", getCar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}", deleteCar.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/cars/{carId}/status", updateCarStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/cars/{carId}/rate", updateCarRate.Handle).Methods(http.MethodPatch)

	// --- Пользователи ---
	api.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}", getUser.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/status", updateUserStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userId}/wallet", adjustWallet.Handle).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}/contracts", listContracts.Handle).Methods(http.MethodGet)

	// --- Контракты ---
	api.HandleFunc("/contracts", createContract.Handle).Methods(http.MethodPost)
	api.HandleFunc("/contracts", listContracts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}", getContractDetails.Handle).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}/extend", extendBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/contracts/{contractId}/cancel", cancelContract.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/contracts/{contractId}/complete", completeContract.Handle).Methods(http.MethodPatch)

	// Фоновая проверка просроченных контрактов
	var scheduler *overdue.Scheduler
	if cfg.Jobs.OverdueEnabled {
		var overdueMetrics overdue.Metrics
		if cfg.Metrics.Enabled {
			overdueMetrics = metricsCollector
		}
		job := overdue.NewJob(
			contractRepository,
			overdueMetrics,
			time.Duration(cfg.Jobs.OverdueTimeout)*time.Second,
			log,
		)
		scheduler, err = overdue.NewScheduler(cfg.Jobs.OverdueSchedule, job, log)
		if err != nil {
			log.Fatal("Failed to schedule overdue sweep: %v", err)
		}
		scheduler.Start()
	}

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

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// openStore открывает хранилище документов по cfg.Store.Driver.
// Возвращаемая функция освобождает соединения.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (docstore.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverFirestore:
		store, err := firestoreStore.Open(ctx, cfg.Store.ProjectID,
			firestoreStore.ClientOptions(cfg.Store.CredentialsFile, cfg.Store.CredentialsJSON)...)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to Firestore (project=%s)", cfg.Store.ProjectID)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("Failed to close Firestore client: %v", err)
			}
		}, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var store *postgresStore.Store
		if cfg.Metrics.Enabled {
			store = postgresStore.NewStore(dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh))
			log.Info("Database metrics collection started")
		} else {
			store = postgresStore.NewStore(db)
		}

		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	default:
		store := memoryStore.NewStore()
		if cfg.Store.SeedFile != "" {
			n, err := store.LoadSeedFile(cfg.Store.SeedFile)
			if err != nil {
				return nil, nil, err
			}
			log.Info("Loaded %d seed documents from %s", n, cfg.Store.SeedFile)
		}
		return store, func() {}, nil
	}
}
