package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/controller/state"
	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tutorID = int64(1001)

// 2026-10-21 - среда
var fixedNow = time.Date(2026, time.October, 21, 15, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, store *fakeStore, opts ...ControllerOption) (*Controller, *state.Manager) {
	t.Helper()
	states := state.NewManager()
	opts = append([]ControllerOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewController(store, states, zaptest.NewLogger(t), opts...), states
}

func handle(t *testing.T, c *Controller, userID int64, ev Event) Reply {
	t.Helper()
	reply, err := c.Handle(context.Background(), userID, ev)
	require.NoError(t, err)
	return reply
}

func selectAll(t *testing.T, c *Controller, userID int64, weekday, lessonTime string, subject model.Subject) {
	t.Helper()
	handle(t, c, userID, CommandEvent{Command: CommandAddSchedule})
	handle(t, c, userID, SelectionEvent{Kind: SelectionWeekday, Value: weekday})
	handle(t, c, userID, SelectionEvent{Kind: SelectionTime, Value: lessonTime})
	handle(t, c, userID, SelectionEvent{Kind: SelectionSubject, Value: string(subject)})
}

func TestStartShowsMainMenu(t *testing.T) {
	c, states := newTestController(t, &fakeStore{})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandStart})

	assert.True(t, reply.MainMenu)
	assert.Equal(t, greetingText, reply.Text)
	assert.True(t, states.Get(tutorID).IsEmpty())
}

func TestRegisterStudent(t *testing.T) {
	store := &fakeStore{}
	c, states := newTestController(t, store)

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
	assert.Equal(t, studentInfoPromptText, reply.Text)
	assert.Equal(t, state.ActionAwaitingStudentInfo, states.Get(tutorID).Pending)

	reply = handle(t, c, tutorID, TextEvent{Text: "Anna 10"})
	assert.Equal(t, "Студент Anna добавлен.", reply.Text)
	assert.Equal(t, []createStudentCall{{name: "Anna", grade: "10"}}, store.createStudentCalls)
	assert.Equal(t, state.ActionNone, states.Get(tutorID).Pending)

	reply = handle(t, c, tutorID, CommandEvent{Command: CommandShowStudents})
	assert.Equal(t, "Anna - 10", reply.Text)
}

func TestRegisterStudentTokensAreExact(t *testing.T) {
	inputs := map[string]createStudentCall{
		"Anna 10":          {name: "Anna", grade: "10"},
		"  Boris\t7Б  ":    {name: "Boris", grade: "7Б"},
		"Вера\n11":         {name: "Вера", grade: "11"},
		"Gleb    9-А":      {name: "Gleb", grade: "9-А"},
		"Ёлкина 5":         {name: "Ёлкина", grade: "5"},
		"O'Neil 8":         {name: "O'Neil", grade: "8"},
		"Студент-1 первый": {name: "Студент-1", grade: "первый"},
	}

	for input, want := range inputs {
		t.Run(input, func(t *testing.T) {
			store := &fakeStore{}
			c, states := newTestController(t, store)

			handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
			handle(t, c, tutorID, TextEvent{Text: input})

			assert.Equal(t, []createStudentCall{want}, store.createStudentCalls)
			assert.Equal(t, state.ActionNone, states.Get(tutorID).Pending)
		})
	}
}

func TestRegisterStudentWrongTokenCount(t *testing.T) {
	for _, input := range []string{"", "   ", "Anna", "Anna Petrova 10", "a b c d"} {
		t.Run(input, func(t *testing.T) {
			store := &fakeStore{}
			c, states := newTestController(t, store)

			handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
			reply := handle(t, c, tutorID, TextEvent{Text: input})

			assert.Equal(t, "Пожалуйста, используйте формат: Имя Класс", reply.Text)
			assert.Empty(t, store.createStudentCalls, "no store mutation on a parse failure")
			assert.Equal(t, state.ActionNone, states.Get(tutorID).Pending, "pending action is cleared")

			// Повторный текст больше не воспринимается как данные студента
			reply = handle(t, c, tutorID, TextEvent{Text: "Anna 10"})
			assert.True(t, reply.IsEmpty())
			assert.Empty(t, store.createStudentCalls)
		})
	}
}

func TestRegisterStudentStorageFailure(t *testing.T) {
	store := &fakeStore{failWith: errStorage}
	c, _ := newTestController(t, store)

	handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
	_, err := c.Handle(context.Background(), tutorID, TextEvent{Text: "Anna 10"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errStorage))
}

func TestTextWithoutPendingActionIsIgnored(t *testing.T) {
	store := &fakeStore{}
	c, _ := newTestController(t, store)

	reply := handle(t, c, tutorID, TextEvent{Text: "hello"})

	assert.True(t, reply.IsEmpty())
	assert.Empty(t, store.createStudentCalls)
}

func TestAddScheduleSelectors(t *testing.T) {
	c, states := newTestController(t, &fakeStore{})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandAddSchedule})
	require.Len(t, reply.Options, 7)
	assert.Equal(t, "Понедельник", reply.Options[0].Label)
	assert.Equal(t, "0", reply.Options[0].Value)
	assert.Equal(t, state.ActionAwaitingLessonStudentName, states.Get(tutorID).Pending)

	reply = handle(t, c, tutorID, SelectionEvent{Kind: SelectionWeekday, Value: "2"})
	assert.Equal(t, "Выбранный день: Среда. Выберите время занятия:", reply.Text)
	require.Len(t, reply.Options, 26)
	assert.Equal(t, "08:00", reply.Options[0].Value)
	assert.Equal(t, "20:30", reply.Options[25].Value)

	reply = handle(t, c, tutorID, SelectionEvent{Kind: SelectionTime, Value: "14:00"})
	assert.Equal(t, "Выбранное время: 14:00. Выберите предмет:", reply.Text)
	require.Len(t, reply.Options, 3)

	reply = handle(t, c, tutorID, SelectionEvent{Kind: SelectionSubject, Value: string(model.SubjectMathematics)})
	assert.Equal(t, "Выбранный предмет: Математика. Введите имя студента:", reply.Text)
	assert.Empty(t, reply.Options)

	current := states.Get(tutorID)
	weekday, _ := current.Weekday.Get()
	lessonTime, _ := current.Time.Get()
	subject, _ := current.Subject.Get()
	assert.Equal(t, model.Wednesday, weekday)
	assert.Equal(t, "14:00", lessonTime)
	assert.Equal(t, model.SubjectMathematics, subject)
}

func TestScheduleLessonForRegisteredStudent(t *testing.T) {
	store := &fakeStore{}
	c, states := newTestController(t, store)

	handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
	handle(t, c, tutorID, TextEvent{Text: "Anna 10"})

	selectAll(t, c, tutorID, "2", "14:00", model.SubjectMathematics)
	reply := handle(t, c, tutorID, TextEvent{Text: "Anna"})

	require.Len(t, store.lessons, 1)
	assert.Equal(t, model.Wednesday, store.lessons[0].Weekday)
	assert.Equal(t, "14:00", store.lessons[0].Time)
	assert.Equal(t, model.SubjectMathematics, store.lessons[0].Subject)
	assert.Equal(t, "Расписание для Anna на Среда в 14:00 по предмету Математика добавлено.", reply.Text)
	assert.Equal(t, state.ActionNone, states.Get(tutorID).Pending)
}

func TestScheduleLessonUnknownStudent(t *testing.T) {
	store := &fakeStore{}
	c, states := newTestController(t, store)

	handle(t, c, tutorID, CommandEvent{Command: CommandRegisterStudent})
	handle(t, c, tutorID, TextEvent{Text: "Anna 10"})

	selectAll(t, c, tutorID, "2", "14:00", model.SubjectMathematics)
	reply := handle(t, c, tutorID, TextEvent{Text: "Ghost"})

	assert.Equal(t, "Студент не найден.", reply.Text)
	assert.Empty(t, store.lessons)
	assert.Equal(t, state.ActionNone, states.Get(tutorID).Pending)
}

func TestScheduleLessonMissingSelections(t *testing.T) {
	weekday := SelectionEvent{Kind: SelectionWeekday, Value: "2"}
	lessonTime := SelectionEvent{Kind: SelectionTime, Value: "14:00"}
	subject := SelectionEvent{Kind: SelectionSubject, Value: string(model.SubjectPhysics)}

	cases := []struct {
		name       string
		selections []SelectionEvent
		want       string
	}{
		{"nothing", nil, "Сначала выберите день недели."},
		{"time only", []SelectionEvent{lessonTime}, "Сначала выберите день недели."},
		{"subject only", []SelectionEvent{subject}, "Сначала выберите день недели."},
		{"time and subject", []SelectionEvent{lessonTime, subject}, "Сначала выберите день недели."},
		{"weekday only", []SelectionEvent{weekday}, "Сначала выберите время."},
		{"weekday and subject", []SelectionEvent{weekday, subject}, "Сначала выберите время."},
		{"weekday and time", []SelectionEvent{weekday, lessonTime}, "Сначала выберите предмет."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{students: []*model.Student{{ID: 1, Name: "Anna", Grade: "10"}}}
			c, states := newTestController(t, store)

			handle(t, c, tutorID, CommandEvent{Command: CommandAddSchedule})
			for _, sel := range tc.selections {
				handle(t, c, tutorID, sel)
			}
			before := states.Get(tutorID)

			reply := handle(t, c, tutorID, TextEvent{Text: "Anna"})

			assert.Equal(t, tc.want, reply.Text)
			assert.Empty(t, store.lessons)
			assert.Equal(t, before, states.Get(tutorID), "context is left intact for a retry")
			assert.Equal(t, state.ActionAwaitingLessonStudentName, states.Get(tutorID).Pending)
		})
	}
}

func TestScheduleLessonRetryAfterMissingTime(t *testing.T) {
	store := &fakeStore{students: []*model.Student{{ID: 1, Name: "Anna", Grade: "10"}}}
	c, states := newTestController(t, store)

	handle(t, c, tutorID, CommandEvent{Command: CommandAddSchedule})
	handle(t, c, tutorID, SelectionEvent{Kind: SelectionWeekday, Value: "2"})

	reply := handle(t, c, tutorID, TextEvent{Text: "Anna"})
	assert.Equal(t, "Сначала выберите время.", reply.Text)
	assert.True(t, states.Get(tutorID).Weekday.IsSet(), "weekday remains set for retry")

	handle(t, c, tutorID, SelectionEvent{Kind: SelectionTime, Value: "14:00"})
	handle(t, c, tutorID, SelectionEvent{Kind: SelectionSubject, Value: string(model.SubjectMathematics)})
	handle(t, c, tutorID, TextEvent{Text: "Anna"})

	require.Len(t, store.lessons, 1)
	assert.Equal(t, model.Wednesday, store.lessons[0].Weekday)
}

func TestSelectionsLeakIntoNextAttempt(t *testing.T) {
	store := &fakeStore{students: []*model.Student{{ID: 1, Name: "Anna", Grade: "10"}}}
	c, _ := newTestController(t, store)

	selectAll(t, c, tutorID, "4", "09:00", model.SubjectComputerScience)
	handle(t, c, tutorID, TextEvent{Text: "Anna"})

	// Новая попытка без выбора: используются выборы прошлой попытки
	handle(t, c, tutorID, CommandEvent{Command: CommandAddSchedule})
	handle(t, c, tutorID, TextEvent{Text: "Anna"})

	require.Len(t, store.lessons, 2)
	assert.Equal(t, store.lessons[0].Weekday, store.lessons[1].Weekday)
	assert.Equal(t, store.lessons[0].Time, store.lessons[1].Time)
	assert.Equal(t, store.lessons[0].Subject, store.lessons[1].Subject)
}

func TestCancelClearsSelections(t *testing.T) {
	c, states := newTestController(t, &fakeStore{})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandCancel})
	assert.Equal(t, nothingToCancelText, reply.Text)

	selectAll(t, c, tutorID, "1", "10:00", model.SubjectPhysics)
	reply = handle(t, c, tutorID, CommandEvent{Command: CommandCancel})
	assert.Equal(t, cancelledText, reply.Text)
	assert.True(t, states.Get(tutorID).IsEmpty())
}

func TestSelectionsAreScopedPerUser(t *testing.T) {
	store := &fakeStore{students: []*model.Student{{ID: 1, Name: "Anna", Grade: "10"}}}
	c, states := newTestController(t, store)
	const otherTutor = int64(2002)

	handle(t, c, tutorID, CommandEvent{Command: CommandAddSchedule})
	handle(t, c, otherTutor, CommandEvent{Command: CommandAddSchedule})
	handle(t, c, tutorID, SelectionEvent{Kind: SelectionWeekday, Value: "0"})
	handle(t, c, otherTutor, SelectionEvent{Kind: SelectionWeekday, Value: "6"})
	handle(t, c, otherTutor, SelectionEvent{Kind: SelectionTime, Value: "20:30"})
	handle(t, c, tutorID, SelectionEvent{Kind: SelectionTime, Value: "08:00"})

	first, _ := states.Get(tutorID).Weekday.Get()
	second, _ := states.Get(otherTutor).Weekday.Get()
	firstTime, _ := states.Get(tutorID).Time.Get()
	secondTime, _ := states.Get(otherTutor).Time.Get()

	assert.Equal(t, model.Monday, first)
	assert.Equal(t, model.Sunday, second)
	assert.Equal(t, "08:00", firstTime)
	assert.Equal(t, "20:30", secondTime)
}

func TestUnknownSelections(t *testing.T) {
	c, states := newTestController(t, &fakeStore{})

	for _, sel := range []SelectionEvent{
		{Kind: SelectionWeekday, Value: "7"},
		{Kind: SelectionWeekday, Value: "monday"},
		{Kind: SelectionTime, Value: "21:00"},
		{Kind: SelectionSubject, Value: "Chemistry"},
		{Kind: SelectionKind(42), Value: "x"},
	} {
		_, err := c.Handle(context.Background(), tutorID, sel)
		assert.ErrorIs(t, err, ErrUnknownSelection)
	}
	assert.True(t, states.Get(tutorID).IsEmpty())
}

func TestShowStudentsEmpty(t *testing.T) {
	c, _ := newTestController(t, &fakeStore{})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandShowStudents})
	assert.Equal(t, formatting.EmptyStudentsText, reply.Text)
}

type stubRenderer struct {
	image []byte
	err   error

	weekStart time.Time
	days      [model.DaysInWeek][]model.ScheduledLesson
}

func (r *stubRenderer) Render(weekStart time.Time, days [model.DaysInWeek][]model.ScheduledLesson, _ time.Time) ([]byte, error) {
	r.weekStart = weekStart
	r.days = days
	return r.image, r.err
}

func TestShowSchedule(t *testing.T) {
	store := &fakeStore{students: []*model.Student{{ID: 1, Name: "Anna", Grade: "10"}}}
	renderer := &stubRenderer{image: []byte("png")}
	c, _ := newTestController(t, store, WithWeekRenderer(renderer))

	selectAll(t, c, tutorID, "2", "14:00", model.SubjectMathematics)
	handle(t, c, tutorID, TextEvent{Text: "Anna"})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandShowSchedule})

	assert.Contains(t, reply.Text, "Понедельник, 19 октября 2026\nНет занятий")
	assert.Contains(t, reply.Text, "Среда, 21 октября 2026\nAnna - Математика в 14:00")
	assert.Equal(t, 7, strings.Count(reply.Text, "2026\n"))
	assert.Equal(t, []byte("png"), reply.Photo)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), renderer.weekStart)
	assert.Len(t, renderer.days[model.Wednesday], 1)
}

func TestShowScheduleRenderFailureFallsBackToText(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("no font")}
	c, _ := newTestController(t, &fakeStore{}, WithWeekRenderer(renderer))

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandShowSchedule})

	assert.Nil(t, reply.Photo)
	assert.Equal(t, 7, strings.Count(reply.Text, formatting.NoLessonsText))
}

func TestShowScheduleStorageFailure(t *testing.T) {
	c, _ := newTestController(t, &fakeStore{failWith: errStorage})

	_, err := c.Handle(context.Background(), tutorID, CommandEvent{Command: CommandShowSchedule})
	assert.ErrorIs(t, err, errStorage)
}

func TestShowMaterials(t *testing.T) {
	c, states := newTestController(t, &fakeStore{}, WithMaterials("Дополнительные материалы:\n\n1. <a href=\"https://example.com\">Сайт</a>"))
	states.SetPending(tutorID, state.ActionAwaitingStudentInfo)

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandShowMaterials})

	assert.True(t, reply.HTML)
	assert.Contains(t, reply.Text, "https://example.com")
	assert.Equal(t, state.ActionAwaitingStudentInfo, states.Get(tutorID).Pending, "read-only commands keep state")
}

func TestShowMaterialsDefault(t *testing.T) {
	c, _ := newTestController(t, &fakeStore{})

	reply := handle(t, c, tutorID, CommandEvent{Command: CommandShowMaterials})

	assert.True(t, reply.HTML)
	assert.Contains(t, reply.Text, "https://drive.google.com")
	assert.True(t, strings.HasSuffix(reply.Text, "По всем вопросам обращайтесь к преподавателю @Lock1ng1"))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Сначала выберите предмет.", ErrorMessage(&MissingSelectionError{Kind: SelectionSubject}))
	assert.Equal(t, "❌ Произошла ошибка. Попробуйте позже.", ErrorMessage(errStorage))
}
