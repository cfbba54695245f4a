package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
	// StaticDir - каталог собранного фронтенда; пустое значение отключает раздачу
	StaticDir string `yaml:"static_dir"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver          string `yaml:"driver" validate:"oneof=postgres sqlite"`
	Host            string `yaml:"host" validate:"required_if=Driver postgres"`
	Port            string `yaml:"port" validate:"required_if=Driver postgres"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname" validate:"required_if=Driver postgres"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path" validate:"required_if=Driver sqlite"`
	ConnectAttempts int    `yaml:"connect_attempts" validate:"min=1"`
}

// BookingConfig - правила бронирования
type BookingConfig struct {
	ValidateReferencesOnUpdate bool `yaml:"validate_references_on_update"`
	ReportWindowDays           int  `yaml:"report_window_days" validate:"min=1,max=3660"`
}

// KafkaConfig - публикация событий. Пустой список брокеров отключает публикацию.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic   string   `yaml:"topic" validate:"required_with=Brokers"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// SlogLevel переводит текстовый уровень в slog.Level
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			DBName:          "booking",
			SSLMode:         "disable",
			Path:            "booking.db",
			ConnectAttempts: 30,
		},
		Booking: BookingConfig{
			ValidateReferencesOnUpdate: true,
			ReportWindowDays:           30,
		},
		Kafka: KafkaConfig{
			Topic: "booking-events",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем файл (если path не пуст),
// затем переменные окружения. Результат проверяется.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.StaticDir = getEnv("STATIC_DIR", c.Server.StaticDir)

	c.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", c.Database.Driver))
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)

	var err error
	if c.Database.ConnectAttempts, err = getEnvInt("DB_CONNECT_ATTEMPTS", c.Database.ConnectAttempts); err != nil {
		return err
	}
	if c.Booking.ValidateReferencesOnUpdate, err = getEnvBool("BOOKING_VALIDATE_REFS_ON_UPDATE", c.Booking.ValidateReferencesOnUpdate); err != nil {
		return err
	}
	if c.Booking.ReportWindowDays, err = getEnvInt("BOOKING_REPORT_WINDOW_DAYS", c.Booking.ReportWindowDays); err != nil {
		return err
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = splitList(brokers)
	}
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))

	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
