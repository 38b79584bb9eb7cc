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

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	getCatalogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_catalog"
	getExtraServicesHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_extra_services"
	quoteExtraServicesHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/quote_extra_services"
	saveExtraServicesHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/save_extra_services"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	recordsRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/records"
	extraServicesService "github.com/m04kA/SMC-PetCareService/internal/service/extraservices"
	openExtraServicesUC "github.com/m04kA/SMC-PetCareService/internal/usecase/open_extra_services"
	saveExtraServicesUC "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("PETCARE_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithOptions(cfg.Logs.File, cfg.Logs.Level, logger.Options{
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-PetCareService...")
	log.Info("Configuration loaded from %s", configPath)

	catalog, err := cfg.CatalogItems()
	if err != nil {
		log.Fatal("Invalid catalog: %v", err)
	}
	log.Info("Extra services catalog loaded: %d items", len(catalog))

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем хранилище записей (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	recordStore := recordsRepo.NewRepository(executor)

	// Инициализируем use cases
	saveUseCase := saveExtraServicesUC.NewUseCase(recordStore, metricsCollector, log)
	openUseCase := openExtraServicesUC.NewUseCase(recordStore, saveUseCase, log)

	// Инициализируем сервисы
	extraServicesSvc := extraServicesService.NewService(openUseCase, catalog, log)

	// Инициализируем handlers
	getExtraServices := getExtraServicesHandler.NewHandler(extraServicesSvc, log)
	quoteExtraServices := quoteExtraServicesHandler.NewHandler(extraServicesSvc, log)
	saveExtraServices := saveExtraServicesHandler.NewHandler(extraServicesSvc, log)
	getCatalog := getCatalogHandler.NewHandler(extraServicesSvc)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	recordPath := fmt.Sprintf("/records/{%s}/{%s}/extra-services", handlers.VarKind, handlers.VarRecordID)

	// Черновик доп. услуг записи
	api.HandleFunc(recordPath, getExtraServices.Handle).Methods(http.MethodGet)

	// Расчёт суммы без сохранения
	api.HandleFunc(recordPath+"/quote", quoteExtraServices.Handle).Methods(http.MethodPost)

	// Сохранение доп. услуг (и цены месячного клиента)
	api.HandleFunc(recordPath, saveExtraServices.Handle).Methods(http.MethodPut)

	// Каталог доп. услуг
	api.HandleFunc("/extra-services/catalog", getCatalog.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
