package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Префиксы callback data: weekday:2, time:14:00, subject:Mathematics
const (
	PrefixWeekday = "weekday"
	PrefixTime    = "time"
	PrefixSubject = "subject"
)

var prefixByKind = map[dialog.SelectionKind]string{
	dialog.SelectionWeekday: PrefixWeekday,
	dialog.SelectionTime:    PrefixTime,
	dialog.SelectionSubject: PrefixSubject,
}

var kindByPrefix = map[string]dialog.SelectionKind{
	PrefixWeekday: dialog.SelectionWeekday,
	PrefixTime:    dialog.SelectionTime,
	PrefixSubject: dialog.SelectionSubject,
}

// EncodeSelection собирает callback data для варианта выбора
func EncodeSelection(option dialog.Option) string {
	return prefixByKind[option.Kind] + ":" + option.Value
}

// DecodeSelection разбирает callback data.
// Значение может само содержать ':' (время), поэтому режем только по первому.
func DecodeSelection(data string) (dialog.SelectionEvent, error) {
	prefix, value, ok := strings.Cut(data, ":")
	if !ok {
		return dialog.SelectionEvent{}, fmt.Errorf("%w: callback data %q", dialog.ErrUnknownSelection, data)
	}
	kind, ok := kindByPrefix[prefix]
	if !ok {
		return dialog.SelectionEvent{}, fmt.Errorf("%w: callback prefix %q", dialog.ErrUnknownSelection, prefix)
	}
	return dialog.SelectionEvent{Kind: kind, Value: value}, nil
}

// HandleCallbackQuery обрабатывает нажатия на inline кнопки выбора дня, времени и предмета
func (h *Handlers) HandleCallbackQuery(ctx context.Context, _ *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	telegramID := callback.From.ID
	logger := LoggerFromContext(ctx, h.logger)

	logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", telegramID))

	selection, err := DecodeSelection(callback.Data)
	if err != nil {
		logger.Warn("Unknown callback", zap.String("data", callback.Data), zap.Error(err))
		h.answerCallback(ctx, callback.ID, dialog.ErrorMessage(err), true)
		return
	}

	reply, err := h.dialog.Handle(ctx, telegramID, selection)
	if err != nil {
		logger.Error("Failed to handle selection",
			zap.Int64("telegram_id", telegramID),
			zap.Stringer("kind", selection.Kind),
			zap.Error(err))
		h.answerCallback(ctx, callback.ID, dialog.ErrorMessage(err), true)
		return
	}

	h.answerCallback(ctx, callback.ID, "", false)

	message := callback.Message.Message
	if message == nil {
		// Исходное сообщение недоступно, отвечаем новым
		h.sendReply(ctx, telegramID, reply)
		return
	}

	h.editReply(ctx, message.Chat.ID, message.ID, reply)
}
