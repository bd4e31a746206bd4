package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Database соединение с хранилищем расписания
type Database struct {
	DB      *sqlx.DB
	Dialect string // диалект goose: sqlite3 или postgres

	pool *pgxpool.Pool // только для postgres
}

// OpenDatabase открывает хранилище по конфигу: sqlite файл или пул postgres
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DSN, logger)
	case config.DriverSQLite, "":
		return openSQLite(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func openSQLite(ctx context.Context, path string, logger *zap.Logger) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	logger.Info("Database opened",
		zap.String("driver", config.DriverSQLite),
		zap.String("path", path))

	return &Database{DB: db, Dialect: "sqlite3"}, nil
}

func openPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	// Репозитории работают через database/sql, поэтому создаём *sql.DB поверх пула
	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")

	logger.Info("Database opened",
		zap.String("driver", config.DriverPostgres),
		zap.Int32("max_conns", pool.Config().MaxConns))

	return &Database{DB: db, Dialect: "postgres", pool: pool}, nil
}

// Close закрывает соединения
func (d *Database) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}
