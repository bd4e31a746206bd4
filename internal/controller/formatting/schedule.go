package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/model"
)

const (
	EmptyStudentsText = "Список студентов пуст."
	NoLessonsText     = "Нет занятий"
)

// FormatStudents форматирует список студентов: по строке "Имя - Класс"
func FormatStudents(students []*model.Student) string {
	if len(students) == 0 {
		return EmptyStudentsText
	}

	lines := make([]string, 0, len(students))
	for _, student := range students {
		lines = append(lines, fmt.Sprintf("%s - %s", student.Name, student.Grade))
	}
	return strings.Join(lines, "\n")
}

// FormatLesson форматирует занятие: "Anna - Математика в 14:00"
func FormatLesson(lesson model.ScheduledLesson) string {
	return fmt.Sprintf("%s - %s в %s", lesson.StudentName, SubjectName(lesson.Subject), lesson.Time)
}

// FormatDay форматирует день расписания: заголовок с датой и занятия
func FormatDay(date time.Time, lessons []model.ScheduledLesson) string {
	var sb strings.Builder
	sb.WriteString(FormatDayTitle(date))
	sb.WriteString("\n")

	if len(lessons) == 0 {
		sb.WriteString(NoLessonsText)
		return sb.String()
	}

	for i, lesson := range lessons {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(FormatLesson(lesson))
	}
	return sb.String()
}

// FormatWeek форматирует расписание недели, начиная с понедельника weekStart.
// days[i] - занятия i-го дня недели.
func FormatWeek(weekStart time.Time, days [model.DaysInWeek][]model.ScheduledLesson) string {
	var sb strings.Builder
	for i := 0; i < model.DaysInWeek; i++ {
		sb.WriteString(FormatDay(weekStart.AddDate(0, 0, i), days[i]))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FormatDigest форматирует утреннюю сводку занятий на день
func FormatDigest(date time.Time, lessons []model.ScheduledLesson) string {
	return "📅 Занятия на сегодня\n\n" + FormatDay(date, lessons)
}
