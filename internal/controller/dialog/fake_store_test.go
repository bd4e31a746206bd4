package dialog

import (
	"context"
	"errors"

	"github.com/Freeeeeet/tutor_bot/internal/model"
)

var errStorage = errors.New("disk I/O error")

type createStudentCall struct {
	name, grade string
}

// fakeStore хранилище в памяти с записью вызовов
type fakeStore struct {
	students []*model.Student
	lessons  []*model.LessonSlot

	createStudentCalls []createStudentCall
	failWith           error
}

func (s *fakeStore) CreateStudent(_ context.Context, name, grade string) (*model.Student, error) {
	s.createStudentCalls = append(s.createStudentCalls, createStudentCall{name: name, grade: grade})
	if s.failWith != nil {
		return nil, s.failWith
	}
	student := &model.Student{ID: int64(len(s.students) + 1), Name: name, Grade: grade}
	s.students = append(s.students, student)
	return student, nil
}

func (s *fakeStore) ListStudents(context.Context) ([]*model.Student, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.students, nil
}

func (s *fakeStore) FindStudentIDByName(_ context.Context, name string) (int64, bool, error) {
	if s.failWith != nil {
		return 0, false, s.failWith
	}
	for _, student := range s.students {
		if student.Name == name {
			return student.ID, true, nil
		}
	}
	return 0, false, nil
}

func (s *fakeStore) CreateLessonSlot(_ context.Context, studentID int64, weekday model.Weekday, time string, subject model.Subject) (*model.LessonSlot, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	slot := &model.LessonSlot{
		ID:        int64(len(s.lessons) + 1),
		StudentID: studentID,
		Weekday:   weekday,
		Time:      time,
		Subject:   subject,
	}
	s.lessons = append(s.lessons, slot)
	return slot, nil
}

func (s *fakeStore) ListLessonsForWeekday(_ context.Context, weekday model.Weekday) ([]model.ScheduledLesson, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var lessons []model.ScheduledLesson
	for _, slot := range s.lessons {
		if slot.Weekday != weekday {
			continue
		}
		for _, student := range s.students {
			if student.ID == slot.StudentID {
				lessons = append(lessons, model.ScheduledLesson{
					StudentName: student.Name,
					Subject:     slot.Subject,
					Time:        slot.Time,
				})
			}
		}
	}
	return lessons, nil
}
