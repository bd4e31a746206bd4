package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/model"
)

var weekdayNames = [model.DaysInWeek]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

var weekdayShortNames = [model.DaysInWeek]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// месяцы в родительном падеже: "19 октября"
var monthGenitive = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

var monthNames = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

// WeekdayName возвращает название дня недели на русском (0 = понедельник)
func WeekdayName(weekday model.Weekday) string {
	if !weekday.Valid() {
		return "Неизвестно"
	}
	return weekdayNames[weekday]
}

// WeekdayShortName возвращает краткое название дня недели
func WeekdayShortName(weekday model.Weekday) string {
	if !weekday.Valid() {
		return "?"
	}
	return weekdayShortNames[weekday]
}

// MonthName возвращает название месяца на русском
func MonthName(month time.Month) string {
	return monthNames[month]
}

// FormatDate форматирует дату: "19 октября 2026"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthGenitive[t.Month()], t.Year())
}

// FormatDayTitle форматирует заголовок дня: "Понедельник, 19 октября 2026"
func FormatDayTitle(t time.Time) string {
	return WeekdayName(model.WeekdayOf(t)) + ", " + FormatDate(t)
}

// WeekStart возвращает начало дня ближайшего понедельника, не позже t
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(model.WeekdayOf(day)))
}
