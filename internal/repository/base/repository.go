package base

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository базовый репозиторий с общими методами.
// Запросы пишутся с плейсхолдерами "?" и переписываются под драйвер через Rebind.
type Repository struct {
	db *sqlx.DB
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Get выполняет запрос и сканирует одну строку в dest
func (r *Repository) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return r.db.GetContext(ctx, dest, r.db.Rebind(query), args...)
}

// Select выполняет запрос и сканирует все строки в dest (указатель на слайс)
func (r *Repository) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...)
}

// InsertReturningID выполняет INSERT ... RETURNING id и возвращает id новой строки
func (r *Repository) InsertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
