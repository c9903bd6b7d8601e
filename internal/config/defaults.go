package config

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Default возвращает конфигурацию по умолчанию: файловое хранилище в текущем каталоге
// и локальная блокировка
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:         StorageDriverFile,
			Dir:            ".",
			SQLitePath:     "reservations.db",
			TimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "smc_reservations",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "smc_reservations",
			Collection: "documents",
		},
		Lock: LockConfig{
			Driver:      LockDriverFile,
			RedisAddr:   "localhost:6379",
			Key:         "smc:reservations:lock",
			TTLSeconds:  10,
			WaitSeconds: 5,
		},
		Booking: BookingConfig{
			WindowDays:     domain.DefaultWindowDays,
			TopN:           domain.DefaultTopN,
			MaxRetries:     domain.DefaultMaxRetries,
			RetryBackoffMs: 20,
		},
		Auth: AuthConfig{
			BcryptCost: bcrypt.DefaultCost,
		},
		Session: SessionConfig{
			File:        ".smc_session",
			MaxAgeHours: 24,
		},
		Logs: LogsConfig{
			File:  "smc-reservations.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "smc-reservations",
		},
	}
}
