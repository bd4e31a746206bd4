package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/config"
	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// LessonSource источник занятий дня
type LessonSource interface {
	ListLessonsForWeekday(ctx context.Context, weekday model.Weekday) ([]model.ScheduledLesson, error)
}

// MessageSender отправка сообщений в Telegram (реализуется *bot.Bot)
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Scheduler управляет фоновыми задачами: раз в день отправляет сводку занятий на сегодня
type Scheduler struct {
	lessons  LessonSource
	sender   MessageSender
	chatID   int64
	hour     int
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(lessons LessonSource, sender MessageSender, cfg config.DigestConfig, location *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		lessons:  lessons,
		sender:   sender,
		chatID:   cfg.ChatID,
		hour:     cfg.LocalHour(),
		location: location,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Enabled задан ли чат для сводки
func (s *Scheduler) Enabled() bool {
	return s.chatID != 0
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if !s.Enabled() {
		s.logger.Info("Daily digest disabled: DIGEST_CHAT_ID is not set")
		return
	}

	s.logger.Info("Starting background scheduler",
		zap.Int64("chat_id", s.chatID),
		zap.Int("hour", s.hour))

	go s.runDigestTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// NextRun возвращает ближайший момент отправки сводки строго после now
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// runDigestTask ждёт наступления часа сводки и отправляет её, затем ждёт следующего дня
func (s *Scheduler) runDigestTask(ctx context.Context) {
	for {
		wait := s.NextRun(s.now()).Sub(s.now())
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			if err := s.SendDigest(ctx); err != nil {
				s.logger.Error("Failed to send daily digest", zap.Error(err))
			}
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Daily digest task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Daily digest task cancelled")
			return
		}
	}
}

// SendDigest отправляет занятия текущего дня в чат сводки
func (s *Scheduler) SendDigest(ctx context.Context) error {
	today := s.now().In(s.location)

	lessons, err := s.lessons.ListLessonsForWeekday(ctx, model.WeekdayOf(today))
	if err != nil {
		return fmt.Errorf("list today's lessons: %w", err)
	}

	if _, err := s.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   formatting.FormatDigest(today, lessons),
	}); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	s.logger.Info("Daily digest sent",
		zap.Int64("chat_id", s.chatID),
		zap.Int("lessons", len(lessons)))
	return nil
}
