package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/office-booking-api/internal/config"
	"github.com/office-booking-api/internal/events"
	"github.com/office-booking-api/internal/handler"
	"github.com/office-booking-api/internal/migrations"
	"github.com/office-booking-api/internal/repository"
	"github.com/office-booking-api/internal/service"
	"github.com/spf13/pflag"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var configPath string
	flagSet := pflag.NewFlagSet("booking-api", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Загрузка конфигурации
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Подключение к БД
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := migrations.Up(sqlDB, dialectFor(cfg.Database.Driver)); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Публикация событий
	publisher, err := newPublisher(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to create event publisher", slog.Any("error", err))
		os.Exit(1)
	}
	defer publisher.Close()

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	resRepo := repository.NewResourceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tx := repository.NewTransactor(db, cfg.Database.Driver == config.DriverPostgres)

	// Инициализация сервисов
	empService := service.NewEmployeeService(empRepo, bookingRepo, tx, logger)
	resService := service.NewResourceService(resRepo, bookingRepo, tx, logger)
	bookingService := service.NewBookingService(
		bookingRepo, resRepo, empRepo, tx,
		service.BookingPolicy{ValidateReferencesOnUpdate: cfg.Booking.ValidateReferencesOnUpdate},
		logger,
		service.WithPublisher(publisher),
	)
	reportService := service.NewReportService(bookingRepo, cfg.Booking.ReportWindowDays, nil)

	// Инициализация хендлеров
	empHandler := handler.NewEmployeeHandler(empService, logger)
	resHandler := handler.NewResourceHandler(resService, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, reportService, logger)

	// Настройка роутера
	router := handler.NewRouter(empHandler, resHandler, bookingHandler, cfg.Server.StaticDir, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("db_driver", cfg.Database.Driver),
		slog.Bool("validate_references_on_update", cfg.Booking.ValidateReferencesOnUpdate),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		// Внешние ключи в SQLite по умолчанию выключены
		dialector = sqlite.Open(cfg.Path + "?_foreign_keys=1&_busy_timeout=5000")
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	var db *gorm.DB
	var err error

	for range cfg.ConnectAttempts {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
			TranslateError: true,
		})
		if err == nil {
			var sqlDB *sql.DB
			if sqlDB, err = db.DB(); err != nil {
				return nil, fmt.Errorf("failed to get sql.DB: %w", err)
			}
			if err = sqlDB.Ping(); err == nil {
				if cfg.Driver == config.DriverSQLite {
					sqlDB.SetMaxOpenConns(1)
				}
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.ConnectAttempts, err)
}

func dialectFor(driver string) string {
	if driver == config.DriverSQLite {
		return migrations.DialectSQLite
	}
	return migrations.DialectPostgres
}

func newPublisher(cfg config.KafkaConfig, logger *slog.Logger) (events.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		logger.Info("kafka brokers not configured, booking events are not published")
		return events.NopPublisher{}, nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing booking events", slog.Any("brokers", cfg.Brokers), slog.String("topic", cfg.Topic))
	return publisher, nil
}
