package state

import "github.com/Freeeeeet/tutor_bot/internal/model"

// PendingAction действие, которое ожидает текстового ввода от пользователя
type PendingAction int

const (
	ActionNone                      PendingAction = iota // Нет активного действия
	ActionAwaitingStudentInfo                            // Ждём "Имя Класс"
	ActionAwaitingLessonStudentName                      // Ждём имя студента для занятия
)

func (a PendingAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAwaitingStudentInfo:
		return "awaiting_student_info"
	case ActionAwaitingLessonStudentName:
		return "awaiting_lesson_student_name"
	default:
		return "unknown"
	}
}

// Optional значение, которое может отсутствовать
type Optional[T any] struct {
	value T
	set   bool
}

// Some возвращает заполненное значение
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get возвращает значение и признак наличия
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet проверяет наличие значения
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Context временные данные диалога пользователя.
// Выборы дня, времени и предмета заполняются по мере прохождения клавиатур.
type Context struct {
	Pending PendingAction
	Weekday Optional[model.Weekday]
	Time    Optional[string]
	Subject Optional[model.Subject]
}

// IsEmpty проверяет что в контексте нет ни действия, ни выборов
func (c Context) IsEmpty() bool {
	return c.Pending == ActionNone && !c.Weekday.IsSet() && !c.Time.IsSet() && !c.Subject.IsSet()
}
