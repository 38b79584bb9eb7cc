package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Переменные окружения, перекрывающие значения из файла
const (
	EnvDBPassword = "PETCARE_DB_PASSWORD"
	EnvDBHost     = "PETCARE_DB_HOST"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Catalog  []CatalogItem  `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogItem услуга каталога; цена строкой, чтобы не терять точность
type CatalogItem struct {
	Service        string `toml:"service"`
	Label          string `toml:"label"`
	SuggestedPrice string `toml:"suggested_price"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию,
// применяет переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "petcare-service",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvDBHost); v != "" {
		c.Database.Host = v
	}
}

// fillDefaults подставляет значения, которые файл мог обнулить явно
func (c *Config) fillDefaults() {
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

// Validate проверяет обязательные поля и каталог
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.User == "" {
		return fmt.Errorf("%w: database.user is required", ErrInvalidConfig)
	}
	if _, err := c.CatalogItems(); err != nil {
		return err
	}
	return nil
}

// CatalogItems конвертирует каталог в domain-модели
func (c *Config) CatalogItems() ([]domain.CatalogItem, error) {
	items := make([]domain.CatalogItem, 0, len(c.Catalog))
	seen := make(map[domain.ServiceKey]bool, len(c.Catalog))

	for i, item := range c.Catalog {
		service, err := domain.ParseServiceKey(item.Service)
		if err != nil {
			return nil, fmt.Errorf("%w: catalog[%d]: %v", ErrInvalidConfig, i, err)
		}
		if seen[service] {
			return nil, fmt.Errorf("%w: catalog[%d]: duplicate service %s", ErrInvalidConfig, i, service)
		}
		seen[service] = true

		price := decimal.Zero
		if item.SuggestedPrice != "" {
			price, err = decimal.NewFromString(item.SuggestedPrice)
			if err != nil {
				return nil, fmt.Errorf("%w: catalog[%d]: suggested_price %q: %v", ErrInvalidConfig, i, item.SuggestedPrice, err)
			}
		}

		label := item.Label
		if label == "" {
			label = string(service)
		}

		items = append(items, domain.CatalogItem{
			Service:        service,
			Label:          label,
			SuggestedPrice: price,
		})
	}
	return items, nil
}
