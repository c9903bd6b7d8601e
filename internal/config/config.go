package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultPath путь к конфигурации, если SMC_CONFIG не задан
	DefaultPath = "config.toml"
	// PathEnv переменная окружения с путем к конфигурации
	PathEnv = "SMC_CONFIG"
	// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
	EnvPrefix = "SMC_"
)

// Config конфигурация приложения
type Config struct {
	Storage  StorageConfig  `toml:"storage" envPrefix:"STORAGE_"`
	Database DatabaseConfig `toml:"database" envPrefix:"DATABASE_"`
	Mongo    MongoConfig    `toml:"mongo" envPrefix:"MONGO_"`
	Lock     LockConfig     `toml:"lock" envPrefix:"LOCK_"`
	Booking  BookingConfig  `toml:"booking" envPrefix:"BOOKING_"`
	Auth     AuthConfig     `toml:"auth" envPrefix:"AUTH_"`
	Session  SessionConfig  `toml:"session" envPrefix:"SESSION_"`
	Logs     LogsConfig     `toml:"logs" envPrefix:"LOGS_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
}

// StorageConfig выбор хранилища документов
type StorageConfig struct {
	Driver         string `toml:"driver" env:"DRIVER"` // file | sqlite | postgres | mongo
	Dir            string `toml:"dir" env:"DIR"`
	SQLitePath     string `toml:"sqlite_path" env:"SQLITE_PATH"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// Timeout таймаут подключения к хранилищу
func (s StorageConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	User            string `toml:"user" env:"USER"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"DBNAME"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// MongoConfig параметры подключения к MongoDB
type MongoConfig struct {
	URI        string `toml:"uri" env:"URI"`
	Database   string `toml:"database" env:"DATABASE"`
	Collection string `toml:"collection" env:"COLLECTION"`
}

// LockConfig блокировка, сериализующая изменения
type LockConfig struct {
	Driver        string `toml:"driver" env:"DRIVER"` // file | local | redis
	File          string `toml:"file" env:"FILE"`     // пусто - <storage.dir>/smc.lock
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB"`
	Key           string `toml:"key" env:"KEY"`
	TTLSeconds    int    `toml:"ttl_seconds" env:"TTL_SECONDS"`
	WaitSeconds   int    `toml:"wait_seconds" env:"WAIT_SECONDS"`
}

// TTL время жизни блокировки в Redis
func (l LockConfig) TTL() time.Duration {
	return time.Duration(l.TTLSeconds) * time.Second
}

// Wait сколько ждать освобождения блокировки
func (l LockConfig) Wait() time.Duration {
	return time.Duration(l.WaitSeconds) * time.Second
}

// LockFile путь к файлу блокировки для драйвера file
func (c *Config) LockFile() string {
	if c.Lock.File != "" {
		return c.Lock.File
	}
	return filepath.Join(c.Storage.Dir, defaultLockFile)
}

// BookingConfig параметры бронирования и отчетов
type BookingConfig struct {
	WindowDays     int `toml:"window_days" env:"WINDOW_DAYS"`
	TopN           int `toml:"top_n" env:"TOP_N"`
	MaxRetries     int `toml:"max_retries" env:"MAX_RETRIES"`
	RetryBackoffMs int `toml:"retry_backoff_ms" env:"RETRY_BACKOFF_MS"`
}

// RetryBackoff пауза между повторами транзакции
func (b BookingConfig) RetryBackoff() time.Duration {
	return time.Duration(b.RetryBackoffMs) * time.Millisecond
}

// AuthConfig параметры хеширования паролей
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// SessionConfig файл сессии CLI
type SessionConfig struct {
	File        string `toml:"file" env:"FILE"`
	HashKey     string `toml:"hash_key" env:"HASH_KEY"`   // base64, пусто - ключи в <file>.key
	BlockKey    string `toml:"block_key" env:"BLOCK_KEY"` // base64
	MaxAgeHours int    `toml:"max_age_hours" env:"MAX_AGE_HOURS"`
}

// MaxAge срок жизни входа
func (s SessionConfig) MaxAge() time.Duration {
	return time.Duration(s.MaxAgeHours) * time.Hour
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

// MetricsConfig параметры метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
	Textfile    string `toml:"textfile" env:"TEXTFILE"`
}

// PathFromEnv возвращает путь к файлу конфигурации
func PathFromEnv() string {
	if path := os.Getenv(PathEnv); path != "" {
		return path
	}
	return DefaultPath
}

// LoadDotEnv загружает переменные из .env. Отсутствующий файл не ошибка,
// уже заданные переменные окружения не перезаписываются.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDotEnv, path, err)
	}
	return nil
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML-файл (если он есть),
// затем переменные окружения SMC_*.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFile, path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
