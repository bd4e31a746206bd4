package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/config"
	"github.com/Freeeeeet/tutor_bot/internal/repository"
	"github.com/Freeeeeet/tutor_bot/internal/repository/base"
	"github.com/Freeeeeet/tutor_bot/internal/service"
	"go.uber.org/zap"
)

// OpenStore открывает базу, применяет миграции и собирает сервис расписания.
// Вызывающий закрывает Database после завершения работы.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*service.ScheduleService, *Database, error) {
	db, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := NewMigrator(db.DB.DB, db.Dialect, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Run(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := base.NewRepository(db.DB)
	scheduleService := service.NewScheduleService(
		repository.NewStudentRepository(repo, logger),
		repository.NewLessonRepository(repo, logger),
		logger,
	)

	return scheduleService, db, nil
}
