package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/app"
	"github.com/Freeeeeet/tutor_bot/internal/config"
	"github.com/Freeeeeet/tutor_bot/internal/controller"
	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/controller/state"
	"github.com/Freeeeeet/tutor_bot/internal/controller/weekimage"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.TelegramToken == "" {
		return errMissingToken
	}

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting tutor bot",
		zap.String("environment", cfg.Environment),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("timezone", location.String()),
		zap.Int("token_length", len(cfg.TelegramToken)))

	store, db, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []dialog.ControllerOption{
		dialog.WithClock(func() time.Time { return time.Now().In(location) }),
		dialog.WithMaterials(formatting.FormatMaterials(materialLinks(cfg.Materials), cfg.Materials.Contact)),
	}
	if cfg.ScheduleImageEnabled() {
		opts = append(opts, dialog.WithWeekRenderer(weekimage.NewRenderer()))
	}
	dialogs := dialog.NewController(store, state.NewManager(), logger, opts...)

	b, err := bot.New(cfg.TelegramToken, controller.BotOptions(logger)...)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(b, dialogs, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(store, b, cfg.Digest, location, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		return err
	}

	logger.Info("Tutor bot stopped")
	return nil
}

var errMissingToken = errors.New("TELEGRAM_TOKEN is required")

// materialLinks переводит ссылки из конфига в формат раздела материалов
func materialLinks(cfg config.MaterialsConfig) []formatting.Link {
	links := make([]formatting.Link, 0, len(cfg.Links))
	for _, m := range cfg.Links {
		links = append(links, formatting.Link{Title: m.Title, URL: m.URL})
	}
	return links
}
