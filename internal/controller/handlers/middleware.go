package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type loggerKey struct{}

// LoggerFromContext возвращает логгер запроса с request_id или fallback
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return fallback
}

// updateKind возвращает тип обновления и id отправителя
func updateKind(update *models.Update) (string, int64) {
	switch {
	case update.Message != nil:
		var userID int64
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		return "message", userID
	case update.CallbackQuery != nil:
		return "callback_query", update.CallbackQuery.From.ID
	default:
		return "other", 0
	}
}

// LoggingMiddleware присваивает обновлению request_id, логирует длительность обработки
// и перехватывает панику, чтобы одно обновление не роняло процесс
func LoggingMiddleware(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			kind, userID := updateKind(update)
			reqLogger := logger.With(
				zap.String("request_id", uuid.NewString()),
				zap.Int64("update_id", update.ID),
			)
			started := time.Now()

			defer func() {
				if r := recover(); r != nil {
					reqLogger.Error("Panic while handling update",
						zap.String("kind", kind),
						zap.Int64("telegram_id", userID),
						zap.Any("panic", r),
						zap.Stack("stack"))
				}
			}()

			next(context.WithValue(ctx, loggerKey{}, reqLogger), b, update)

			reqLogger.Debug("Update handled",
				zap.String("kind", kind),
				zap.Int64("telegram_id", userID),
				zap.Duration("duration", time.Since(started)))
		}
	}
}
