package model

import (
	"fmt"
	"strconv"
	"time"
)

// Weekday день недели, 0 = понедельник
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek количество дней недели
const DaysInWeek = 7

// Valid проверяет что день недели в диапазоне [0,6]
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// WeekdayOf возвращает день недели даты (понедельник = 0)
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % DaysInWeek)
}

// ParseWeekday разбирает день недели из строки "0".."6"
func ParseWeekday(s string) (Weekday, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse weekday %q: %w", s, err)
	}
	w := Weekday(n)
	if !w.Valid() {
		return 0, fmt.Errorf("weekday %d out of range", n)
	}
	return w, nil
}

// Subject предмет занятия
type Subject string

const (
	SubjectComputerScience Subject = "Computer Science"
	SubjectMathematics     Subject = "Mathematics"
	SubjectPhysics         Subject = "Physics"
)

// Subjects фиксированный список предметов в порядке отображения
var Subjects = []Subject{
	SubjectComputerScience,
	SubjectMathematics,
	SubjectPhysics,
}

// Valid проверяет что предмет входит в фиксированный список
func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

// Время занятий: каждые полчаса с 08:00 до 20:30 включительно
const (
	FirstLessonHour = 8
	LastLessonHour  = 20
)

// LessonTimes возвращает все допустимые времена начала занятия (26 значений)
func LessonTimes() []string {
	times := make([]string, 0, (LastLessonHour-FirstLessonHour+1)*2)
	for hour := FirstLessonHour; hour <= LastLessonHour; hour++ {
		for _, minute := range []int{0, 30} {
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// IsLessonTime проверяет что строка - одно из допустимых времён
func IsLessonTime(s string) bool {
	for _, t := range LessonTimes() {
		if t == s {
			return true
		}
	}
	return false
}

type LessonSlot struct {
	ID        int64   `json:"id" db:"id"`
	StudentID int64   `json:"student_id" db:"student_id"`
	Weekday   Weekday `json:"weekday" db:"weekday"`
	Time      string  `json:"time" db:"time"` // HH:MM
	Subject   Subject `json:"subject" db:"subject"`
}

// ScheduledLesson занятие дня вместе с именем студента (результат JOIN)
type ScheduledLesson struct {
	StudentName string  `json:"student_name" db:"student_name"`
	Subject     Subject `json:"subject" db:"subject"`
	Time        string  `json:"time" db:"time"`
}
