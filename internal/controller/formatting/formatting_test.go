package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	// 2026-10-22 - четверг
	thursday := time.Date(2026, time.October, 22, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), WeekStart(thursday))

	monday := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday))

	sunday := time.Date(2026, time.October, 25, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(sunday))
}

func TestFormatDayTitle(t *testing.T) {
	date := time.Date(2026, time.October, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Среда, 21 октября 2026", FormatDayTitle(date))
}

func TestFormatStudents(t *testing.T) {
	assert.Equal(t, EmptyStudentsText, FormatStudents(nil))

	text := FormatStudents([]*model.Student{
		{Name: "Anna", Grade: "10"},
		{Name: "Boris", Grade: "7"},
	})
	assert.Equal(t, "Anna - 10\nBoris - 7", text)
}

func TestFormatWeek(t *testing.T) {
	weekStart := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	var days [model.DaysInWeek][]model.ScheduledLesson
	days[model.Wednesday] = []model.ScheduledLesson{
		{StudentName: "Anna", Subject: model.SubjectMathematics, Time: "14:00"},
		{StudentName: "Boris", Subject: model.SubjectPhysics, Time: "16:30"},
	}

	text := FormatWeek(weekStart, days)
	blocks := strings.Split(strings.TrimSpace(text), "\n\n")
	require.Len(t, blocks, model.DaysInWeek)

	assert.Equal(t, "Понедельник, 19 октября 2026\n"+NoLessonsText, blocks[0])
	assert.Equal(t, "Среда, 21 октября 2026\nAnna - Математика в 14:00\nBoris - Физика в 16:30", blocks[2])
	assert.Equal(t, "Воскресенье, 25 октября 2026\n"+NoLessonsText, blocks[6])
}

func TestFormatMaterials(t *testing.T) {
	text := FormatMaterials([]Link{
		{Title: "Задачи & решения", URL: "https://example.com/?a=1&b=2"},
	}, "@tutor")

	assert.Contains(t, text, `1. <a href="https://example.com/?a=1&amp;b=2">Задачи &amp; решения</a>`)
	assert.True(t, strings.HasSuffix(text, "@tutor"))
}

func TestSubjectName(t *testing.T) {
	assert.Equal(t, "Информатика", SubjectName(model.SubjectComputerScience))
	assert.Equal(t, "Chemistry", SubjectName(model.Subject("Chemistry")))
}
