package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is read once at startup. Every value a component needs is threaded
// through constructors; no package reads the environment on its own.
type Config struct {
	AppEnv string
	Port   string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	// Civil timezone for all schedule math. The service never relies on the
	// host timezone; every date is interpreted in this location.
	Timezone string

	// Schedule policy knobs.
	AdvanceNoticeDays int
	ProbationMonths   int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "workschedule")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("TIMEZONE", "Asia/Seoul")
	v.SetDefault("ADVANCE_NOTICE_DAYS", 3)
	v.SetDefault("PROBATION_MONTHS", 3)
	v.SetDefault("READ_TIMEOUT", "5s")
	v.SetDefault("WRITE_TIMEOUT", "10s")
	v.SetDefault("IDLE_TIMEOUT", "60s")

	cfg := &Config{
		AppEnv:            v.GetString("APP_ENV"),
		Port:              v.GetString("PORT"),
		DBHost:            v.GetString("DB_HOST"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBPort:            v.GetString("DB_PORT"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		KafkaBroker:       v.GetString("KAFKA_BROKER"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Timezone:          v.GetString("TIMEZONE"),
		AdvanceNoticeDays: v.GetInt("ADVANCE_NOTICE_DAYS"),
		ProbationMonths:   v.GetInt("PROBATION_MONTHS"),
		ReadTimeout:       v.GetDuration("READ_TIMEOUT"),
		WriteTimeout:      v.GetDuration("WRITE_TIMEOUT"),
		IdleTimeout:       v.GetDuration("IDLE_TIMEOUT"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdvanceNoticeDays < 0 {
		return nil, fmt.Errorf("ADVANCE_NOTICE_DAYS must not be negative")
	}

	return cfg, nil
}

// Location resolves the configured civil timezone, falling back to a fixed
// UTC+9 zone when the tz database is unavailable in the runtime image.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}
