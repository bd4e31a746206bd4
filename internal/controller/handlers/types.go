package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Sender методы Telegram Bot API, которые использует адаптер (реализуется *bot.Bot)
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Dialog контроллер диалогов, не зависящий от транспорта
type Dialog interface {
	Handle(ctx context.Context, userID int64, ev dialog.Event) (dialog.Reply, error)
}

// Handlers переводит обновления Telegram в события диалога и отправляет ответы
type Handlers struct {
	dialog Dialog
	sender Sender
	logger *zap.Logger
}

// NewHandlers создаёт новый обработчик обновлений
func NewHandlers(d Dialog, sender Sender, logger *zap.Logger) *Handlers {
	return &Handlers{
		dialog: d,
		sender: sender,
		logger: logger,
	}
}
