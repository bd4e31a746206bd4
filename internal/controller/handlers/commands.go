package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/Freeeeeet/tutor_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Slash-команды бота
const (
	CmdStart       = "/start"
	CmdAddStudent  = "/addstudent"
	CmdStudents    = "/students"
	CmdAddSchedule = "/addschedule"
	CmdSchedule    = "/schedule"
	CmdMaterials   = "/materials"
	CmdCancel      = "/cancel"
)

// commandsByText команды по тексту кнопки главного меню или slash-команде
var commandsByText = map[string]dialog.Command{
	CmdStart:       dialog.CommandStart,
	CmdAddStudent:  dialog.CommandRegisterStudent,
	CmdStudents:    dialog.CommandShowStudents,
	CmdAddSchedule: dialog.CommandAddSchedule,
	CmdSchedule:    dialog.CommandShowSchedule,
	CmdMaterials:   dialog.CommandShowMaterials,
	CmdCancel:      dialog.CommandCancel,

	keyboard.MenuAddStudent:   dialog.CommandRegisterStudent,
	keyboard.MenuShowStudents: dialog.CommandShowStudents,
	keyboard.MenuAddSchedule:  dialog.CommandAddSchedule,
	keyboard.MenuShowSchedule: dialog.CommandShowSchedule,
	keyboard.MenuMaterials:    dialog.CommandShowMaterials,
}

// ParseMessage превращает текст сообщения в событие диалога.
// Кнопки меню и команды распознаются точно, "/cmd@bot_name" тоже считается командой.
func ParseMessage(text string) dialog.Event {
	key := strings.TrimSpace(text)
	if strings.HasPrefix(key, "/") {
		key, _, _ = strings.Cut(key, "@")
	}
	if cmd, ok := commandsByText[key]; ok {
		return dialog.CommandEvent{Command: cmd}
	}
	return dialog.TextEvent{Text: text}
}

// HandleMessage обрабатывает текстовые сообщения: команды, кнопки меню и ввод в диалогах
func (h *Handlers) HandleMessage(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	// Стикеры, фото и голосовые приходят без текста и не должны продвигать диалог
	if update.Message.Text == "" {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	logger := LoggerFromContext(ctx, h.logger)

	reply, err := h.dialog.Handle(ctx, telegramID, ParseMessage(update.Message.Text))
	if err != nil {
		logger.Error("Failed to handle message",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendMessage(ctx, chatID, dialog.ErrorMessage(err))
		return
	}

	h.sendReply(ctx, chatID, reply)
}
