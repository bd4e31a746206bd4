package controller

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

// NewBotController создаёт контроллер бота поверх диалогов
func NewBotController(botInstance *bot.Bot, d handlers.Dialog, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(d, botInstance, logger),
		logger:   logger,
	}
}

// BotOptions опции bot.New: middleware логирования и обработчик по умолчанию
func BotOptions(logger *zap.Logger) []bot.Option {
	return []bot.Option{
		bot.WithMiddlewares(handlers.LoggingMiddleware(logger)),
		bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, update *models.Update) {
			logger.Debug("Unhandled update", zap.Int64("update_id", update.ID))
		}),
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды, кнопки меню и ввод в диалогах разбираются одним обработчиком
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// BotCommands список команд в меню бота
func BotCommands() []models.BotCommand {
	return []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "addstudent", Description: "➕ Добавить студента"},
		{Command: "students", Description: "👥 Показать студентов"},
		{Command: "addschedule", Description: "🗓 Добавить расписание"},
		{Command: "schedule", Description: "📅 Показать расписание"},
		{Command: "materials", Description: "📚 Дополнительные материалы"},
		{Command: "cancel", Description: "❌ Отменить текущую операцию"},
	}
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: BotCommands(),
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return fmt.Errorf("set bot commands: %w", err)
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
