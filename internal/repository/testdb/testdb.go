// Package testdb поднимает мигрированную sqlite базу для тестов
package testdb

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/Freeeeeet/tutor_bot/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// Open создаёт sqlite файл во временном каталоге теста и применяет миграции
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tutor_bot.db")
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqliteMigrations, err := fs.Sub(migrations.FS, "sqlite")
	require.NoError(t, err)

	// Provider вместо глобального состояния goose: тесты пакетов идут параллельно
	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, sqliteMigrations)
	require.NoError(t, err)

	_, err = provider.Up(context.Background())
	require.NoError(t, err)

	return db
}
