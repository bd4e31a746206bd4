package dialog

// Command команда пользователя, распознанная адаптером транспорта
type Command int

const (
	CommandStart Command = iota + 1
	CommandRegisterStudent
	CommandShowStudents
	CommandAddSchedule
	CommandShowSchedule
	CommandShowMaterials
	CommandCancel
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandRegisterStudent:
		return "register_student"
	case CommandShowStudents:
		return "show_students"
	case CommandAddSchedule:
		return "add_schedule"
	case CommandShowSchedule:
		return "show_schedule"
	case CommandShowMaterials:
		return "show_materials"
	case CommandCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// SelectionKind вид выбора из клавиатуры
type SelectionKind int

const (
	SelectionWeekday SelectionKind = iota + 1
	SelectionTime
	SelectionSubject
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionWeekday:
		return "weekday"
	case SelectionTime:
		return "time"
	case SelectionSubject:
		return "subject"
	default:
		return "unknown"
	}
}

// Event входящее событие от пользователя
type Event interface {
	event()
}

// CommandEvent нажатие кнопки меню или slash-команда
type CommandEvent struct {
	Command Command
}

// TextEvent произвольный текст
type TextEvent struct {
	Text string
}

// SelectionEvent выбор варианта из inline клавиатуры
type SelectionEvent struct {
	Kind  SelectionKind
	Value string
}

func (CommandEvent) event()   {}
func (TextEvent) event()      {}
func (SelectionEvent) event() {}

// Option вариант выбора в исходящем сообщении
type Option struct {
	Label string
	Kind  SelectionKind
	Value string
}

// Reply исходящее сообщение.
// Пустой Reply означает, что отвечать не нужно.
type Reply struct {
	Text     string
	HTML     bool     // текст размечен HTML, ссылки без превью
	Options  []Option // варианты выбора (inline клавиатура)
	Columns  int      // количество кнопок в ряду
	MainMenu bool     // прикрепить главное меню
	Photo    []byte   // PNG, отправляется перед текстом
}

// IsEmpty проверяет что отвечать нечего
func (r Reply) IsEmpty() bool {
	return r.Text == "" && len(r.Photo) == 0
}
