package model

type Student struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Grade string `json:"grade" db:"grade"` // класс, свободный текст
}
