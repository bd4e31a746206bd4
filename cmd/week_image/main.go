package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/app"
	"github.com/Freeeeeet/tutor_bot/internal/config"
	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/Freeeeeet/tutor_bot/internal/controller/weekimage"
	"go.uber.org/zap"
)

// Рисует картинку текущей недели из настроенного хранилища
func main() {
	output := flag.String("o", "week.png", "файл для сохранения PNG")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Printf("Ошибка создания логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := render(context.Background(), cfg, *output, logger); err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}
}

func render(ctx context.Context, cfg *config.Config, output string, logger *zap.Logger) error {
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	store, db, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	days, err := dialog.WeekLessons(ctx, store)
	if err != nil {
		return err
	}

	now := time.Now().In(location)
	weekStart := formatting.WeekStart(now)

	imageData, err := weekimage.NewRenderer().Render(weekStart, days, now)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, imageData, 0644); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}

	lessons := 0
	for _, day := range days {
		lessons += len(day)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", output)
	fmt.Printf("📅 Период: %s - %s\n", weekStart.Format("02.01.2006"), weekStart.AddDate(0, 0, 6).Format("02.01.2006"))
	fmt.Printf("📊 Занятий: %d\n", lessons)
	return nil
}
