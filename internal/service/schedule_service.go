package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/Freeeeeet/tutor_bot/internal/repository"
	"go.uber.org/zap"
)

// ScheduleService хранилище студентов и расписания занятий
type ScheduleService struct {
	studentRepo *repository.StudentRepository
	lessonRepo  *repository.LessonRepository
	logger      *zap.Logger
}

func NewScheduleService(
	studentRepo *repository.StudentRepository,
	lessonRepo *repository.LessonRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		studentRepo: studentRepo,
		lessonRepo:  lessonRepo,
		logger:      logger,
	}
}

// CreateStudent регистрирует нового студента
func (s *ScheduleService) CreateStudent(ctx context.Context, name, grade string) (*model.Student, error) {
	if name == "" || grade == "" {
		return nil, fmt.Errorf("create student: name and grade must not be empty")
	}

	student := &model.Student{Name: name, Grade: grade}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student registered",
		zap.Int64("student_id", student.ID),
		zap.String("name", name))

	return student, nil
}

// ListStudents возвращает всех студентов в порядке регистрации
func (s *ScheduleService) ListStudents(ctx context.Context) ([]*model.Student, error) {
	return s.studentRepo.List(ctx)
}

// FindStudentIDByName ищет id студента по имени, при дубликатах - первого
func (s *ScheduleService) FindStudentIDByName(ctx context.Context, name string) (int64, bool, error) {
	return s.studentRepo.FindIDByName(ctx, name)
}

// CreateLessonSlot добавляет занятие студента в недельное расписание
func (s *ScheduleService) CreateLessonSlot(ctx context.Context, studentID int64, weekday model.Weekday, time string, subject model.Subject) (*model.LessonSlot, error) {
	if !weekday.Valid() {
		return nil, fmt.Errorf("create lesson slot: invalid weekday %d", weekday)
	}
	if !model.IsLessonTime(time) {
		return nil, fmt.Errorf("create lesson slot: invalid time %q", time)
	}
	if !subject.Valid() {
		return nil, fmt.Errorf("create lesson slot: unknown subject %q", subject)
	}

	slot := &model.LessonSlot{
		StudentID: studentID,
		Weekday:   weekday,
		Time:      time,
		Subject:   subject,
	}
	if err := s.lessonRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Lesson scheduled",
		zap.Int64("lesson_id", slot.ID),
		zap.Int64("student_id", studentID),
		zap.Int("weekday", int(weekday)),
		zap.String("time", time),
		zap.String("subject", string(subject)))

	return slot, nil
}

// ListLessonsForWeekday возвращает занятия дня недели
func (s *ScheduleService) ListLessonsForWeekday(ctx context.Context, weekday model.Weekday) ([]model.ScheduledLesson, error) {
	return s.lessonRepo.ListByWeekday(ctx, weekday)
}
