package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

// Драйверы хранилища
const (
	StorageDriverFile     = "file"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

// Драйверы блокировки
const (
	LockDriverFile  = "file"
	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

const defaultLockFile = "smc.lock"

// Validate проверяет, что конфигурация непротиворечива
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile:
		if c.Storage.Dir == "" {
			return invalid("storage.dir is required for the file driver")
		}
	case StorageDriverSQLite:
		if c.Storage.SQLitePath == "" {
			return invalid("storage.sqlite_path is required for the sqlite driver")
		}
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return invalid("database.host and database.dbname are required for the postgres driver")
		}
	case StorageDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return invalid("mongo.uri, mongo.database and mongo.collection are required for the mongo driver")
		}
	default:
		return invalid("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Storage.TimeoutSeconds <= 0 {
		return invalid("storage.timeout_seconds must be positive")
	}

	switch c.Lock.Driver {
	case LockDriverFile:
		if c.Lock.File == "" && c.Storage.Dir == "" {
			return invalid("lock.file or storage.dir is required for the file lock driver")
		}
	case LockDriverLocal:
	case LockDriverRedis:
		if c.Lock.RedisAddr == "" || c.Lock.Key == "" {
			return invalid("lock.redis_addr and lock.key are required for the redis driver")
		}
		if c.Lock.TTLSeconds <= 0 {
			return invalid("lock.ttl_seconds must be positive")
		}
	default:
		return invalid("unknown lock.driver %q", c.Lock.Driver)
	}

	if c.Booking.WindowDays < domain.MinWindowDays || c.Booking.WindowDays > domain.MaxWindowDays {
		return invalid("booking.window_days must be in [%d, %d]", domain.MinWindowDays, domain.MaxWindowDays)
	}
	if c.Booking.TopN < domain.MinTopN {
		return invalid("booking.top_n must be at least %d", domain.MinTopN)
	}
	if c.Booking.MaxRetries < 1 {
		return invalid("booking.max_retries must be at least 1")
	}
	if c.Booking.RetryBackoffMs < 0 {
		return invalid("booking.retry_backoff_ms cannot be negative")
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return invalid("auth.bcrypt_cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.Session.File == "" {
		return invalid("session.file is required")
	}
	if c.Session.MaxAgeHours <= 0 {
		return invalid("session.max_age_hours must be positive")
	}

	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		return invalid("logs.level: %v", err)
	}

	if c.Metrics.Enabled && c.Metrics.ServiceName == "" {
		return invalid("metrics.service_name is required when metrics are enabled")
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
