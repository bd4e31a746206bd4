package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/Freeeeeet/tutor_bot/internal/repository/base"
	"go.uber.org/zap"
)

type StudentRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewStudentRepository(repo *base.Repository, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{
		Repository: repo,
		logger:     logger,
	}
}

// Create добавляет студента, уникальность имени не проверяется
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	id, err := r.InsertReturningID(ctx,
		`INSERT INTO students (name, grade) VALUES (?, ?) RETURNING id`,
		student.Name, student.Grade)
	if err != nil {
		r.logger.Error("Failed to insert student into DB",
			zap.String("name", student.Name),
			zap.Error(err))
		return fmt.Errorf("create student: %w", err)
	}
	student.ID = id

	r.logger.Info("Student inserted successfully",
		zap.Int64("student_id", student.ID),
		zap.String("name", student.Name),
		zap.String("grade", student.Grade))

	return nil
}

// List возвращает всех студентов в порядке добавления
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	var students []*model.Student
	if err := r.Select(ctx, &students, `SELECT id, name, grade FROM students ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindIDByName ищет студента по имени. При дубликатах возвращает первого добавленного.
// Второе значение false, если студента с таким именем нет.
func (r *StudentRepository) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := r.Get(ctx, &id, `SELECT id FROM students WHERE name = ? ORDER BY id LIMIT 1`, name)
	if err != nil {
		if base.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find student by name: %w", err)
	}
	return id, true, nil
}
