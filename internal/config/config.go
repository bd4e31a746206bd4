package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_bot/internal/controller/formatting"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultConfigPath = "config.yaml"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver" envconfig:"DB_DRIVER"`
	Path   string `yaml:"path" envconfig:"DB_PATH"` // файл sqlite
	DSN    string `yaml:"dsn" envconfig:"DB_DSN"`   // строка подключения postgres
}

type DigestConfig struct {
	ChatID int64 `yaml:"chat_id" envconfig:"DIGEST_CHAT_ID"` // 0 - дайджест выключен
	Hour   *int  `yaml:"hour" envconfig:"DIGEST_HOUR"`       // nil - час по умолчанию, 0 - полночь
}

// DefaultDigestHour час сводки, если он не задан
const DefaultDigestHour = 8

// LocalHour возвращает час отправки сводки
func (d DigestConfig) LocalHour() int {
	if d.Hour == nil {
		return DefaultDigestHour
	}
	return *d.Hour
}

// Material ссылка из раздела "Дополнительные материалы"
type Material struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type MaterialsConfig struct {
	Links   []Material `yaml:"links"`
	Contact string     `yaml:"contact"`
}

type Config struct {
	TelegramToken string          `yaml:"telegram_token" envconfig:"TELEGRAM_TOKEN"`
	Environment   string          `yaml:"env" envconfig:"ENV"`
	LogLevel      string          `yaml:"log_level" envconfig:"LOG_LEVEL"` // debug, info, warn, error
	Timezone      string          `yaml:"timezone" envconfig:"TIMEZONE"`
	ScheduleImage *bool           `yaml:"schedule_image" envconfig:"SCHEDULE_IMAGE"`
	Database      DatabaseConfig  `yaml:"database"`
	Digest        DigestConfig    `yaml:"digest"`
	Materials     MaterialsConfig `yaml:"materials"`
}

// Load загружает конфигурацию: .env, затем YAML файл (если есть), затем переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	return LoadFile(path)
}

// LoadFile читает YAML файл по пути path и применяет поверх него переменные окружения.
// Отсутствующий файл не является ошибкой.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize устанавливает дефолтные значения и проверяет обязательные поля
func (c *Config) normalize() error {
	if c.Environment == "" {
		c.Environment = "development"
	}

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "", "sqlite3", DriverSQLite:
		c.Database.Driver = DriverSQLite
		if c.Database.Path == "" {
			c.Database.Path = "tutor_bot.db"
		}
	case "postgresql", DriverPostgres:
		c.Database.Driver = DriverPostgres
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.ScheduleImage == nil {
		enabled := true
		c.ScheduleImage = &enabled
	}

	if hour := c.Digest.LocalHour(); hour < 0 || hour > 23 {
		return fmt.Errorf("digest hour must be in [0,23], got %d", hour)
	}

	// Раздел материалов не задан: берём ссылки и контакт по умолчанию
	if len(c.Materials.Links) == 0 {
		for _, link := range formatting.DefaultMaterialLinks() {
			c.Materials.Links = append(c.Materials.Links, Material{Title: link.Title, URL: link.URL})
		}
		if c.Materials.Contact == "" {
			c.Materials.Contact = formatting.DefaultMaterialsContact
		}
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location возвращает часовой пояс для расчёта "сегодня"
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ScheduleImageEnabled включена ли отправка картинки с расписанием недели
func (c *Config) ScheduleImageEnabled() bool {
	return c.ScheduleImage != nil && *c.ScheduleImage
}
