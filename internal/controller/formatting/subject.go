package formatting

import "github.com/Freeeeeet/tutor_bot/internal/model"

// SubjectName возвращает название предмета для пользователя
func SubjectName(subject model.Subject) string {
	switch subject {
	case model.SubjectComputerScience:
		return "Информатика"
	case model.SubjectMathematics:
		return "Математика"
	case model.SubjectPhysics:
		return "Физика"
	default:
		return string(subject)
	}
}
