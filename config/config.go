package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once at startup,
// validated, and passed into every component; nothing mutates it afterwards.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	BaseURL           string `mapstructure:"BASE_URL"`

	// Owner and schedule template.
	OwnerName           string `mapstructure:"OWNER_NAME"`
	OwnerEmail          string `mapstructure:"OWNER_EMAIL"`
	Timezone            string `mapstructure:"TIMEZONE"`
	SlotDurationMinutes int    `mapstructure:"SLOT_DURATION"`
	WorkingHoursStart   int    `mapstructure:"WORKING_HOURS_START"`
	WorkingHoursEnd     int    `mapstructure:"WORKING_HOURS_END"`
	WorkingDaysRaw      string `mapstructure:"WORKING_DAYS"`
	BufferBeforeMinutes int    `mapstructure:"BUFFER_BEFORE"`
	BufferAfterMinutes  int    `mapstructure:"BUFFER_AFTER"`
	MinNoticeHours      int    `mapstructure:"MIN_NOTICE_HOURS"`
	MaxDaysAhead        int    `mapstructure:"MAX_DAYS_AHEAD"`

	// Google Calendar provider.
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Telegram notification channel. Notification is disabled when either
	// value is empty.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `mapstructure:"TELEGRAM_CHAT_ID"`

	// Redis configuration for the booking commit lock. Empty addr means the
	// lock stays in-process.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	workingDays []int
	location    *time.Location
}

// Load reads config.yaml (if present) and environment variables, applies
// defaults, and validates the result. A malformed schedule template is a
// startup error; the availability engine never re-checks it per call.
func Load() (*Config, error) {
	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	// Set default values.
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("OWNER_NAME", "Owner")
	v.SetDefault("OWNER_EMAIL", "")
	v.SetDefault("TIMEZONE", "Europe/Moscow")
	v.SetDefault("SLOT_DURATION", 30)
	v.SetDefault("WORKING_HOURS_START", 10)
	v.SetDefault("WORKING_HOURS_END", 19)
	v.SetDefault("WORKING_DAYS", "1,2,3,4,5")
	v.SetDefault("BUFFER_BEFORE", 0)
	v.SetDefault("BUFFER_AFTER", 15)
	v.SetDefault("MIN_NOTICE_HOURS", 2)
	v.SetDefault("MAX_DAYS_AHEAD", 14)
	v.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// New builds a Config from explicit values, running the same parsing and
// validation as Load. Useful when the caller already has the values in hand.
func New(c Config) (*Config, error) {
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// finalize parses the derived fields and validates the schedule template.
func (c *Config) finalize() error {
	days, err := parseWorkingDays(c.WorkingDaysRaw)
	if err != nil {
		return err
	}
	c.workingDays = days

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("SLOT_DURATION must be positive, got %d", c.SlotDurationMinutes)
	}
	if c.WorkingHoursStart < 0 || c.WorkingHoursStart > 24 {
		return fmt.Errorf("WORKING_HOURS_START out of range: %d", c.WorkingHoursStart)
	}
	if c.WorkingHoursEnd < 0 || c.WorkingHoursEnd > 24 {
		return fmt.Errorf("WORKING_HOURS_END out of range: %d", c.WorkingHoursEnd)
	}
	if c.BufferBeforeMinutes < 0 || c.BufferAfterMinutes < 0 {
		return fmt.Errorf("buffers must not be negative")
	}
	if c.MinNoticeHours < 0 {
		return fmt.Errorf("MIN_NOTICE_HOURS must not be negative, got %d", c.MinNoticeHours)
	}
	if c.MaxDaysAhead <= 0 {
		return fmt.Errorf("MAX_DAYS_AHEAD must be positive, got %d", c.MaxDaysAhead)
	}
	return nil
}

// parseWorkingDays parses a comma-separated list of weekday numbers
// (1=Monday .. 7=Sunday).
func parseWorkingDays(raw string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid WORKING_DAYS entry %q", part)
		}
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("WORKING_DAYS entry %d out of range 1..7", d)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("WORKING_DAYS must name at least one day")
	}
	return days, nil
}

// Location returns the owner's display/iteration time zone.
func (c *Config) Location() *time.Location {
	return c.location
}

// WorkingDays returns the configured weekday numbers (1=Monday .. 7=Sunday).
func (c *Config) WorkingDays() []int {
	return c.workingDays
}

// IsWorkingDay reports whether day (1=Monday .. 7=Sunday) is bookable.
func (c *Config) IsWorkingDay(day int) bool {
	for _, d := range c.workingDays {
		if d == day {
			return true
		}
	}
	return false
}

// SlotDuration returns the meeting length as a duration.
func (c *Config) SlotDuration() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

// BufferBefore returns the margin subtracted from a busy interval's start.
func (c *Config) BufferBefore() time.Duration {
	return time.Duration(c.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the margin added to a busy interval's end.
func (c *Config) BufferAfter() time.Duration {
	return time.Duration(c.BufferAfterMinutes) * time.Minute
}

// MinNotice returns the minimum lead time between "now" and a bookable slot.
func (c *Config) MinNotice() time.Duration {
	return time.Duration(c.MinNoticeHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
