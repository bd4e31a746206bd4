package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/controller/state"
	"github.com/Freeeeeet/tutor_bot/internal/model"
	"go.uber.org/zap"
)

// Store хранилище студентов и расписания
type Store interface {
	CreateStudent(ctx context.Context, name, grade string) (*model.Student, error)
	ListStudents(ctx context.Context) ([]*model.Student, error)
	FindStudentIDByName(ctx context.Context, name string) (int64, bool, error)
	CreateLessonSlot(ctx context.Context, studentID int64, weekday model.Weekday, time string, subject model.Subject) (*model.LessonSlot, error)
	ListLessonsForWeekday(ctx context.Context, weekday model.Weekday) ([]model.ScheduledLesson, error)
}

// WeekRenderer рисует картинку с расписанием недели
type WeekRenderer interface {
	Render(weekStart time.Time, days [model.DaysInWeek][]model.ScheduledLesson, now time.Time) ([]byte, error)
}

const (
	greetingText          = "Привет! Я бот-репетитор. Выберите действие:"
	studentInfoPromptText = "Введите данные студента в формате: Имя Класс"
	weekdayPromptText     = "Выберите день недели"
	nothingToCancelText   = "❌ Нет активных операций для отмены."
	cancelledText         = "✅ Операция отменена."
	timeOptionsPerRow     = 4
	weekdayOptionsPerRow  = 2
	subjectOptionsPerRow  = 1
)

// Controller ведёт пошаговые диалоги регистрации студентов и добавления занятий
type Controller struct {
	store     Store
	states    *state.Manager
	logger    *zap.Logger
	renderer  WeekRenderer
	materials string
	now       func() time.Time
}

// ControllerOption настраивает Controller
type ControllerOption func(c *Controller)

// WithClock задаёт источник текущего времени (для расчёта недели)
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithWeekRenderer включает отправку картинки с расписанием недели
func WithWeekRenderer(r WeekRenderer) ControllerOption {
	return func(c *Controller) { c.renderer = r }
}

// WithMaterials задаёт HTML текст раздела дополнительных материалов
func WithMaterials(text string) ControllerOption {
	return func(c *Controller) { c.materials = text }
}

// NewController создаёт контроллер диалогов
func NewController(store Store, states *state.Manager, logger *zap.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:     store,
		states:    states,
		logger:    logger,
		materials: formatting.FormatMaterials(formatting.DefaultMaterialLinks(), formatting.DefaultMaterialsContact),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle обрабатывает событие пользователя и возвращает ответ.
// Ошибка возвращается только при сбое хранилища.
func (c *Controller) Handle(ctx context.Context, userID int64, ev Event) (Reply, error) {
	switch e := ev.(type) {
	case CommandEvent:
		return c.handleCommand(ctx, userID, e.Command)
	case TextEvent:
		return c.handleText(ctx, userID, e.Text)
	case SelectionEvent:
		return c.handleSelection(userID, e)
	default:
		return Reply{}, fmt.Errorf("unsupported event %T", ev)
	}
}

func (c *Controller) handleCommand(ctx context.Context, userID int64, cmd Command) (Reply, error) {
	c.logger.Debug("Command received",
		zap.Int64("telegram_id", userID),
		zap.Stringer("command", cmd))

	switch cmd {
	case CommandStart:
		return Reply{Text: greetingText, MainMenu: true}, nil
	case CommandRegisterStudent:
		c.states.SetPending(userID, state.ActionAwaitingStudentInfo)
		return Reply{Text: studentInfoPromptText}, nil
	case CommandShowStudents:
		return c.showStudents(ctx)
	case CommandAddSchedule:
		// Выборы предыдущей попытки не сбрасываются: их перезапишут клавиатуры
		c.states.SetPending(userID, state.ActionAwaitingLessonStudentName)
		return Reply{Text: weekdayPromptText, Options: WeekdayOptions(), Columns: weekdayOptionsPerRow}, nil
	case CommandShowSchedule:
		return c.showSchedule(ctx)
	case CommandShowMaterials:
		return Reply{Text: c.materials, HTML: true}, nil
	case CommandCancel:
		if c.states.Get(userID).IsEmpty() {
			return Reply{Text: nothingToCancelText}, nil
		}
		c.states.Clear(userID)
		return Reply{Text: cancelledText}, nil
	default:
		return Reply{}, fmt.Errorf("unsupported command %d", cmd)
	}
}

func (c *Controller) handleText(ctx context.Context, userID int64, text string) (Reply, error) {
	current := c.states.Get(userID)

	c.logger.Debug("Text received",
		zap.Int64("telegram_id", userID),
		zap.Stringer("pending", current.Pending))

	switch current.Pending {
	case state.ActionAwaitingStudentInfo:
		return c.registerStudent(ctx, userID, text)
	case state.ActionAwaitingLessonStudentName:
		return c.scheduleLesson(ctx, userID, current, text)
	default:
		// Нет активного диалога, текст игнорируется
		return Reply{}, nil
	}
}

// ParseStudentInfo разбирает "Имя Класс": ровно два слова через пробельные символы
func ParseStudentInfo(text string) (name, grade string, err error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", "", ErrInvalidStudentInfo
	}
	return fields[0], fields[1], nil
}

func (c *Controller) registerStudent(ctx context.Context, userID int64, text string) (Reply, error) {
	name, grade, err := ParseStudentInfo(text)
	if err != nil {
		// Ожидание ввода снимается и при ошибке формата: для повтора нужна команда заново
		c.states.SetPending(userID, state.ActionNone)
		c.logger.Info("Invalid student info",
			zap.Int64("telegram_id", userID),
			zap.Error(err))
		return Reply{Text: ErrorMessage(err)}, nil
	}

	if _, err := c.store.CreateStudent(ctx, name, grade); err != nil {
		return Reply{}, fmt.Errorf("register student: %w", err)
	}

	c.states.SetPending(userID, state.ActionNone)
	return Reply{Text: fmt.Sprintf("Студент %s добавлен.", name)}, nil
}

// requireSelections проверяет выборы в порядке: день, время, предмет
func requireSelections(current state.Context) (model.Weekday, string, model.Subject, error) {
	weekday, ok := current.Weekday.Get()
	if !ok {
		return 0, "", "", &MissingSelectionError{Kind: SelectionWeekday}
	}
	lessonTime, ok := current.Time.Get()
	if !ok {
		return 0, "", "", &MissingSelectionError{Kind: SelectionTime}
	}
	subject, ok := current.Subject.Get()
	if !ok {
		return 0, "", "", &MissingSelectionError{Kind: SelectionSubject}
	}
	return weekday, lessonTime, subject, nil
}

func (c *Controller) scheduleLesson(ctx context.Context, userID int64, current state.Context, name string) (Reply, error) {
	weekday, lessonTime, subject, err := requireSelections(current)
	if err != nil {
		// Контекст не трогаем: после выбора недостающего можно ввести имя ещё раз
		c.logger.Info("Lesson selection incomplete",
			zap.Int64("telegram_id", userID),
			zap.Error(err))
		return Reply{Text: ErrorMessage(err)}, nil
	}

	studentID, found, err := c.store.FindStudentIDByName(ctx, name)
	if err != nil {
		return Reply{}, fmt.Errorf("find student: %w", err)
	}

	if !found {
		c.states.SetPending(userID, state.ActionNone)
		c.logger.Info("Student for lesson not found",
			zap.Int64("telegram_id", userID),
			zap.String("name", name))
		return Reply{Text: ErrorMessage(ErrStudentNotFound)}, nil
	}

	if _, err := c.store.CreateLessonSlot(ctx, studentID, weekday, lessonTime, subject); err != nil {
		return Reply{}, fmt.Errorf("schedule lesson: %w", err)
	}

	// Выборы остаются в контексте и попадут в следующую попытку, если их не перевыбрать
	c.states.SetPending(userID, state.ActionNone)

	return Reply{Text: fmt.Sprintf("Расписание для %s на %s в %s по предмету %s добавлено.",
		name, formatting.WeekdayName(weekday), lessonTime, formatting.SubjectName(subject))}, nil
}

func (c *Controller) handleSelection(userID int64, sel SelectionEvent) (Reply, error) {
	switch sel.Kind {
	case SelectionWeekday:
		weekday, err := model.ParseWeekday(sel.Value)
		if err != nil {
			return Reply{}, fmt.Errorf("%w: %v", ErrUnknownSelection, err)
		}
		c.states.Update(userID, func(dc *state.Context) { dc.Weekday = state.Some(weekday) })
		return Reply{
			Text:    fmt.Sprintf("Выбранный день: %s. Выберите время занятия:", formatting.WeekdayName(weekday)),
			Options: TimeOptions(),
			Columns: timeOptionsPerRow,
		}, nil

	case SelectionTime:
		if !model.IsLessonTime(sel.Value) {
			return Reply{}, fmt.Errorf("%w: time %q", ErrUnknownSelection, sel.Value)
		}
		c.states.Update(userID, func(dc *state.Context) { dc.Time = state.Some(sel.Value) })
		return Reply{
			Text:    fmt.Sprintf("Выбранное время: %s. Выберите предмет:", sel.Value),
			Options: SubjectOptions(),
			Columns: subjectOptionsPerRow,
		}, nil

	case SelectionSubject:
		subject := model.Subject(sel.Value)
		if !subject.Valid() {
			return Reply{}, fmt.Errorf("%w: subject %q", ErrUnknownSelection, sel.Value)
		}
		c.states.Update(userID, func(dc *state.Context) { dc.Subject = state.Some(subject) })
		return Reply{
			Text: fmt.Sprintf("Выбранный предмет: %s. Введите имя студента:", formatting.SubjectName(subject)),
		}, nil

	default:
		return Reply{}, fmt.Errorf("%w: kind %d", ErrUnknownSelection, sel.Kind)
	}
}

func (c *Controller) showStudents(ctx context.Context) (Reply, error) {
	students, err := c.store.ListStudents(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("list students: %w", err)
	}
	return Reply{Text: formatting.FormatStudents(students)}, nil
}

// WeekLessons загружает занятия всех дней недели
func WeekLessons(ctx context.Context, store Store) ([model.DaysInWeek][]model.ScheduledLesson, error) {
	var days [model.DaysInWeek][]model.ScheduledLesson
	for i := range days {
		lessons, err := store.ListLessonsForWeekday(ctx, model.Weekday(i))
		if err != nil {
			return days, fmt.Errorf("list lessons for weekday %d: %w", i, err)
		}
		days[i] = lessons
	}
	return days, nil
}

func (c *Controller) showSchedule(ctx context.Context) (Reply, error) {
	now := c.now()
	weekStart := formatting.WeekStart(now)

	days, err := WeekLessons(ctx, c.store)
	if err != nil {
		return Reply{}, err
	}

	reply := Reply{Text: formatting.FormatWeek(weekStart, days)}

	if c.renderer != nil {
		image, err := c.renderer.Render(weekStart, days, now)
		if err != nil {
			// Без картинки отправляем только текст
			c.logger.Warn("Failed to render week image", zap.Error(err))
		} else {
			reply.Photo = image
		}
	}

	return reply, nil
}

// WeekdayOptions варианты выбора дня недели, начиная с понедельника
func WeekdayOptions() []Option {
	options := make([]Option, 0, model.DaysInWeek)
	for i := 0; i < model.DaysInWeek; i++ {
		options = append(options, Option{
			Label: formatting.WeekdayName(model.Weekday(i)),
			Kind:  SelectionWeekday,
			Value: fmt.Sprint(i),
		})
	}
	return options
}

// TimeOptions варианты времени занятия: каждые полчаса с 08:00 до 20:30
func TimeOptions() []Option {
	times := model.LessonTimes()
	options := make([]Option, 0, len(times))
	for _, t := range times {
		options = append(options, Option{Label: t, Kind: SelectionTime, Value: t})
	}
	return options
}

// SubjectOptions варианты предмета
func SubjectOptions() []Option {
	options := make([]Option, 0, len(model.Subjects))
	for _, s := range model.Subjects {
		options = append(options, Option{Label: formatting.SubjectName(s), Kind: SelectionSubject, Value: string(s)})
	}
	return options
}
