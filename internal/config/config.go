package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
// Все значения передаются в конструкторы явно, глобального состояния нет
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Razorpay      RazorpayConfig      `toml:"razorpay"`
	Booking       BookingConfig       `toml:"booking"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RazorpayConfig учетные данные платежного шлюза
type RazorpayConfig struct {
	KeyID         string `toml:"key_id"`
	KeySecret     string `toml:"key_secret"`
	WebhookSecret string `toml:"webhook_secret"`
	Currency      string `toml:"currency"`
}

// BookingConfig бизнес-настройки бронирования
type BookingConfig struct {
	PlatformFee         int64  `toml:"platform_fee"`          // комиссия платформы с бронирования
	AdvanceAmount       int64  `toml:"advance_amount"`        // фиксированный аванс для частичной оплаты
	MaxBookingsPerDay   int    `toml:"max_bookings_per_day"`  // лимит активных бронирований на пользователя/площадку/дату
	SlotHorizonDays     int    `toml:"slot_horizon_days"`     // окно предварительной генерации слотов
	RestrictedStartHour int    `toml:"restricted_start_hour"` // начало запретного окна для ручных бронирований
	RestrictedEndHour   int    `toml:"restricted_end_hour"`   // конец запретного окна (не включительно)
	Timezone            string `toml:"timezone"`
}

// Location возвращает таймзону площадок
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(b.Timezone)
}

// NotificationsConfig настройки отправки уведомлений через AMQP
type NotificationsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load загружает конфигурацию из toml файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "fb-ground-booking-service"
	}
	if cfg.Razorpay.Currency == "" {
		cfg.Razorpay.Currency = "INR"
	}
	if cfg.Booking.PlatformFee == 0 {
		cfg.Booking.PlatformFee = 3
	}
	if cfg.Booking.AdvanceAmount == 0 {
		cfg.Booking.AdvanceAmount = 99
	}
	if cfg.Booking.MaxBookingsPerDay == 0 {
		cfg.Booking.MaxBookingsPerDay = 5
	}
	if cfg.Booking.SlotHorizonDays == 0 {
		cfg.Booking.SlotHorizonDays = 14
	}
	if cfg.Booking.RestrictedStartHour == 0 && cfg.Booking.RestrictedEndHour == 0 {
		cfg.Booking.RestrictedStartHour = 2
		cfg.Booking.RestrictedEndHour = 6
	}
}

func validate(cfg *Config) error {
	if cfg.Booking.PlatformFee < 0 {
		return fmt.Errorf("config: platform_fee must be non-negative")
	}
	if cfg.Booking.AdvanceAmount < 0 {
		return fmt.Errorf("config: advance_amount must be non-negative")
	}
	if cfg.Booking.RestrictedStartHour < 0 || cfg.Booking.RestrictedStartHour > 23 ||
		cfg.Booking.RestrictedEndHour < 0 || cfg.Booking.RestrictedEndHour > 24 {
		return fmt.Errorf("config: restricted hours out of range")
	}
	if _, err := cfg.Booking.Location(); err != nil {
		return fmt.Errorf("config: invalid timezone %q: %w", cfg.Booking.Timezone, err)
	}
	return nil
}
