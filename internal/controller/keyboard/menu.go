package keyboard

import "github.com/go-telegram/bot/models"

// Кнопки главного меню
const (
	MenuAddStudent   = "Добавить студента"
	MenuShowStudents = "Показать студентов"
	MenuAddSchedule  = "Добавить расписание"
	MenuShowSchedule = "Показать расписание"
	MenuMaterials    = "Дополнительные материалы"
)

// MainMenu постоянная reply клавиатура главного меню
func MainMenu() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: MenuAddStudent}, {Text: MenuShowStudents}},
			{{Text: MenuAddSchedule}, {Text: MenuShowSchedule}},
			{{Text: MenuMaterials}},
		},
		ResizeKeyboard: true,
	}
}
