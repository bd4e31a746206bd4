package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/Freeeeeet/tutor_bot/internal/repository/base"
	"go.uber.org/zap"
)

type LessonRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewLessonRepository(repo *base.Repository, logger *zap.Logger) *LessonRepository {
	return &LessonRepository{
		Repository: repo,
		logger:     logger,
	}
}

// Create добавляет занятие в расписание.
// Существование студента проверяет только внешний ключ.
func (r *LessonRepository) Create(ctx context.Context, slot *model.LessonSlot) error {
	id, err := r.InsertReturningID(ctx,
		`INSERT INTO schedule (student_id, weekday, time, subject) VALUES (?, ?, ?, ?) RETURNING id`,
		slot.StudentID, int(slot.Weekday), slot.Time, string(slot.Subject))
	if err != nil {
		r.logger.Error("Failed to insert lesson into DB",
			zap.Int64("student_id", slot.StudentID),
			zap.Int("weekday", int(slot.Weekday)),
			zap.String("time", slot.Time),
			zap.Error(err))
		return fmt.Errorf("create lesson slot: %w", err)
	}
	slot.ID = id

	r.logger.Info("Lesson inserted successfully",
		zap.Int64("lesson_id", slot.ID),
		zap.Int64("student_id", slot.StudentID),
		zap.Int("weekday", int(slot.Weekday)),
		zap.String("time", slot.Time),
		zap.String("subject", string(slot.Subject)))

	return nil
}

// ListByWeekday возвращает занятия дня с именами студентов в порядке добавления
func (r *LessonRepository) ListByWeekday(ctx context.Context, weekday model.Weekday) ([]model.ScheduledLesson, error) {
	query := `
		SELECT students.name AS student_name, schedule.subject, schedule.time
		FROM schedule
		JOIN students ON schedule.student_id = students.id
		WHERE schedule.weekday = ?
		ORDER BY schedule.id
	`

	var lessons []model.ScheduledLesson
	if err := r.Select(ctx, &lessons, query, int(weekday)); err != nil {
		return nil, fmt.Errorf("list lessons for weekday %d: %w", weekday, err)
	}
	return lessons, nil
}
