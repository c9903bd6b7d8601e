package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"
	"github.com/m04kA/SMC-ReservationService/pkg/filelock"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/redislock"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// openStore открывает хранилище документов, выбранное storage.driver.
// Возвращает функцию освобождения ресурсов.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (document.Store, func(), error) {
	nop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		store, err := document.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nop, err
		}
		log.Info("Using file storage (dir=%s)", cfg.Storage.Dir)
		return store, nop, nil

	case config.StorageDriverSQLite:
		db, err := document.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nop, err
		}
		store, err := document.NewSQLStore(ctx, db, psqlbuilder.DialectSQLite)
		if err != nil {
			_ = db.Close()
			return nil, nop, err
		}
		log.Info("Using SQLite storage (path=%s)", cfg.Storage.SQLitePath)
		return store, func() { _ = db.Close() }, nil

	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nop, fmt.Errorf("failed to open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nop, fmt.Errorf("failed to ping database: %w", err)
		}

		store, err := document.NewSQLStore(ctx, db, psqlbuilder.DialectPostgres)
		if err != nil {
			_ = db.Close()
			return nil, nop, err
		}
		log.Info("Using PostgreSQL storage (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		return store, func() { _ = db.Close() }, nil

	case config.StorageDriverMongo:
		client, err := document.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nop, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		log.Info("Using MongoDB storage (db=%s, collection=%s)", cfg.Mongo.Database, cfg.Mongo.Collection)
		return document.NewMongoStore(coll), func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, nop, fmt.Errorf("%w: %s", document.ErrUnsupportedDriver, cfg.Storage.Driver)
	}
}

// newLocker возвращает блокировку, сериализующую изменения.
// Драйверы file и redis действуют между процессами, local - только внутри одного процесса.
func newLocker(cfg *config.Config, log *logger.Logger) (txmanager.Locker, func(), error) {
	switch cfg.Lock.Driver {
	case config.LockDriverFile:
		log.Info("Using file lock (path=%s, wait=%s)", cfg.LockFile(), cfg.Lock.Wait())
		return filelock.New(cfg.LockFile(), cfg.Lock.Wait()), func() {}, nil

	case config.LockDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		log.Info("Using Redis lock (addr=%s, key=%s, ttl=%s)", cfg.Lock.RedisAddr, cfg.Lock.Key, cfg.Lock.TTL())
		return redislock.New(client, cfg.Lock.Key, cfg.Lock.TTL(), cfg.Lock.Wait()), func() { _ = client.Close() }, nil

	case config.LockDriverLocal:
		if cfg.Storage.Driver == config.StorageDriverFile {
			log.Warn("Local lock serializes transactions of this process only, concurrent processes fall back to version checks")
		}
		return txmanager.NewLocalLocker(), func() {}, nil

	default:
		return nil, func() {}, fmt.Errorf("unsupported lock driver %q", cfg.Lock.Driver)
	}
}
