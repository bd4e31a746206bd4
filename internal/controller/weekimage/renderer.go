package weekimage

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	lessonMinutes    = 60
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	firstRowHour     = model.FirstLessonHour
	lastRowHour      = model.LastLessonHour + 1
	rowsPerHour      = 2
	maxNameRunes     = 16
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	lessonFontSize     = 15.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	lessonTextColor   = color.RGBA{20, 24, 28, 230}
	lessonShadowColor = color.RGBA{0, 0, 0, 20}
	legendItemColor   = color.RGBA{70, 74, 78, 220}

	subjectColors = map[model.Subject]color.RGBA{
		model.SubjectComputerScience: {133, 193, 85, 220},
		model.SubjectMathematics:     {255, 182, 193, 255},
		model.SubjectPhysics:         {135, 180, 230, 230},
	}
	defaultLessonColor = color.RGBA{220, 220, 220, 200}
)

// FontStyle стиль шрифта
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

// Renderer рисует PNG с расписанием недели: колонки Пн-Вс, строки по полчаса с 08:00 до 21:00
type Renderer struct {
	once  sync.Once
	fonts map[FontStyle]*opentype.Font
	err   error
}

// NewRenderer создаёт рендерер картинки недели
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) parseFonts() {
	r.fonts = make(map[FontStyle]*opentype.Font, 2)
	for style, data := range map[FontStyle][]byte{FontRegular: goregular.TTF, FontBold: gobold.TTF} {
		parsed, err := opentype.Parse(data)
		if err != nil {
			r.err = fmt.Errorf("parse font: %w", err)
			return
		}
		r.fonts[style] = parsed
	}
}

// setFont устанавливает шрифт нужного размера, при ошибке использует basicfont
func (r *Renderer) setFont(dc *gg.Context, size float64, style FontStyle) {
	if f, ok := r.fonts[style]; ok {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// Render рисует неделю, начинающуюся с понедельника weekStart.
// days[i] - занятия i-го дня, now используется для подсветки сегодняшнего дня.
func (r *Renderer) Render(weekStart time.Time, days [model.DaysInWeek][]model.ScheduledLesson, now time.Time) ([]byte, error) {
	r.once.Do(r.parseFonts)
	if r.err != nil {
		return nil, r.err
	}

	weekStart = formatting.WeekStart(weekStart)
	today := normalizeToDay(now.In(weekStart.Location()))
	todayIndex := dayIndex(weekStart, today)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / model.DaysInWeek
	dayHeight := imageHeight - headerHeight
	rows := (lastRowHour - firstRowHour) * rowsPerHour
	cellHeight := float64(dayHeight) / float64(rows)

	r.drawHeader(dc, weekStart)
	r.drawHourLabels(dc, cellHeight)

	for i := 0; i < model.DaysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, i == todayIndex)
		r.drawDayHeader(dc, weekStart.AddDate(0, 0, i), x, y, dayWidth)
		drawRowLines(dc, x, y, dayWidth, rows, cellHeight)

		for _, block := range layoutDay(days[i]) {
			r.drawLesson(dc, block, x, y, dayWidth, cellHeight)
		}
	}

	if todayIndex >= 0 {
		drawCurrentTimeLine(dc, now.In(weekStart.Location()), cellHeight, dayWidth)
	}
	r.drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// dayIndex возвращает номер дня недели date относительно weekStart или -1, если date вне недели.
// Сравниваются календарные даты: при переходе на летнее время в сутках 23 или 25 часов.
func dayIndex(weekStart, date time.Time) int {
	for i := 0; i < model.DaysInWeek; i++ {
		if isSameDay(weekStart.AddDate(0, 0, i), date) {
			return i
		}
	}
	return -1
}

// isSameDay проверяет, являются ли две даты одним днем
func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// drawHeader рисует заголовок с названием месяца
func (r *Renderer) drawHeader(dc *gg.Context, weekStart time.Time) {
	weekEnd := weekStart.AddDate(0, 0, model.DaysInWeek-1)

	title := formatting.MonthName(weekStart.Month())
	if weekEnd.Month() != weekStart.Month() {
		title += " - " + formatting.MonthName(weekEnd.Month())
	}

	r.setFont(dc, titleFontSize, FontBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func (r *Renderer) drawHourLabels(dc *gg.Context, cellHeight float64) {
	r.setFont(dc, hourLabelFontSize, FontRegular)
	dc.SetColor(hourLabelColor)

	for hour := firstRowHour; hour <= lastRowHour; hour++ {
		y := float64(headerHeight) + float64((hour-firstRowHour)*rowsPerHour)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func (r *Renderer) drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	r.setFont(dc, dayFontSize, FontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(formatting.WeekdayShortName(model.WeekdayOf(date)), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawRowLines рисует горизонтальные линии, жирнее на целых часах
func drawRowLines(dc *gg.Context, x, y float64, dayWidth, rows int, cellHeight float64) {
	dc.SetColor(hourLineColor)
	for i := 0; i <= rows; i++ {
		if i%rowsPerHour == 0 {
			dc.SetLineWidth(0.6)
		} else {
			dc.SetLineWidth(0.2)
		}
		ry := y + float64(i)*cellHeight
		dc.DrawLine(x, ry, x+float64(dayWidth), ry)
		dc.Stroke()
	}
}

// lessonOffset возвращает смещение занятия от первой строки в часах
func lessonOffset(lessonTime string) (float64, error) {
	hh, mm, ok := strings.Cut(lessonTime, ":")
	if !ok {
		return 0, fmt.Errorf("invalid lesson time %q", lessonTime)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid lesson hour %q: %w", lessonTime, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid lesson minute %q: %w", lessonTime, err)
	}
	return float64(hour-firstRowHour) + float64(minute)/60.0, nil
}

// lessonBlock положение занятия в колонке дня
type lessonBlock struct {
	lesson model.ScheduledLesson
	start  float64 // часы от первой строки
	hours  float64 // высота блока в часах
	lane   int     // номер занятия среди начинающихся в то же время
	lanes  int
}

// layoutDay раскладывает занятия дня. Блок длится час, но обрезается до начала следующего занятия.
// Занятия с одинаковым временем делят ширину колонки.
func layoutDay(lessons []model.ScheduledLesson) []lessonBlock {
	blocks := make([]lessonBlock, 0, len(lessons))
	for _, lesson := range lessons {
		start, err := lessonOffset(lesson.Time)
		if err != nil || start < 0 {
			continue
		}
		blocks = append(blocks, lessonBlock{lesson: lesson, start: start, hours: float64(lessonMinutes) / 60.0})
	}

	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })

	for groupStart := 0; groupStart < len(blocks); {
		groupEnd := groupStart
		for groupEnd < len(blocks) && blocks[groupEnd].start == blocks[groupStart].start {
			groupEnd++
		}

		hours := blocks[groupStart].hours
		if groupEnd < len(blocks) {
			hours = min(hours, blocks[groupEnd].start-blocks[groupStart].start)
		}

		for i := groupStart; i < groupEnd; i++ {
			blocks[i].hours = hours
			blocks[i].lane = i - groupStart
			blocks[i].lanes = groupEnd - groupStart
		}
		groupStart = groupEnd
	}

	return blocks
}

// drawLesson рисует блок занятия: время, имя студента и предмет (если помещается)
func (r *Renderer) drawLesson(dc *gg.Context, block lessonBlock, x, y float64, dayWidth int, cellHeight float64) {
	lesson := block.lesson
	hourHeight := cellHeight * rowsPerHour
	laneWidth := (float64(dayWidth) - float64(dayPaddingX*2)) / float64(block.lanes)

	blockY := y + block.start*hourHeight + 2
	blockHeight := block.hours*hourHeight - 4
	blockWidth := laneWidth - 2
	blockX := x + float64(dayPaddingX) + float64(block.lane)*laneWidth

	fill, ok := subjectColors[lesson.Subject]
	if !ok {
		fill = defaultLessonColor
	}

	// Тень
	dc.SetColor(lessonShadowColor)
	dc.DrawRoundedRectangle(blockX+shadowOffset, blockY+shadowOffset, blockWidth, blockHeight, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(blockX, blockY, blockWidth, blockHeight, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(blockX, blockY, blockWidth, blockHeight, slotBorderRadius)
	dc.Stroke()

	r.setFont(dc, lessonFontSize, FontBold)
	dc.SetColor(lessonTextColor)
	dc.DrawStringAnchored(lesson.Time+" "+truncate(lesson.StudentName), blockX+6, blockY+lessonFontSize, 0, 0)

	if blockHeight >= lessonFontSize*2+6 {
		r.setFont(dc, lessonFontSize-2, FontRegular)
		dc.DrawStringAnchored(formatting.SubjectName(lesson.Subject), blockX+6, blockY+lessonFontSize*2+2, 0, 0)
	}
}

// truncate обрезает длинные имена по символам, а не по байтам
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxNameRunes {
		return s
	}
	return string(runes[:maxNameRunes-1]) + "…"
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, cellHeight float64, dayWidth int) {
	current := float64(now.Hour()) + float64(now.Minute())/60.0
	if current < firstRowHour || current > lastRowHour {
		return
	}

	lineY := float64(headerHeight) + (current-firstRowHour)*cellHeight*rowsPerHour
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), lineY, float64(leftLabelsWidth+model.DaysInWeek*dayWidth), lineY)
	dc.Stroke()
}

// drawLegend рисует легенду предметов справа
func (r *Renderer) drawLegend(dc *gg.Context, dayWidth int) {
	const (
		boxW = 20.0
		boxH = 14.0
	)
	x := float64(leftLabelsWidth + model.DaysInWeek*dayWidth + 10)
	y := float64(imageHeight) - 100.0

	for _, subject := range model.Subjects {
		dc.SetColor(subjectColors[subject])
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		r.setFont(dc, legendItemFontSize, FontRegular)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(formatting.SubjectName(subject), x+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}
