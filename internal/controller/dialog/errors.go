package dialog

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStudentInfo = errors.New("student info must be exactly two words: name and grade")
	ErrStudentNotFound    = errors.New("student not found")
	ErrUnknownSelection   = errors.New("unknown selection")
)

// MissingSelectionError не выбран день, время или предмет перед вводом имени
type MissingSelectionError struct {
	Kind SelectionKind
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("%s is not selected", e.Kind)
}

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var missing *MissingSelectionError
	switch {
	case errors.As(err, &missing):
		switch missing.Kind {
		case SelectionWeekday:
			return "Сначала выберите день недели."
		case SelectionTime:
			return "Сначала выберите время."
		case SelectionSubject:
			return "Сначала выберите предмет."
		}
	case errors.Is(err, ErrInvalidStudentInfo):
		return "Пожалуйста, используйте формат: Имя Класс"
	case errors.Is(err, ErrStudentNotFound):
		return "Студент не найден."
	case errors.Is(err, ErrUnknownSelection):
		return "❌ Неизвестная команда"
	}
	return "❌ Произошла ошибка. Попробуйте позже."
}
