package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"posrelay/internal/adapters/out/sse"
	"posrelay/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	AMQPURL      string
	AMQPExchange string

	KeepAliveInterval time.Duration
	StaticDir         string
	LogLevel          string
}

// UsePostgres reports whether orders are stored in PostgreSQL instead of memory.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EchoLogLevel maps LOG_LEVEL to the gommon level used by echo's own logger.
func (c Config) EchoLogLevel() log.Lvl {
	switch c.SlogLevel() {
	case slog.LevelDebug:
		return log.DEBUG
	case slog.LevelWarn:
		return log.WARN
	case slog.LevelError:
		return log.ERROR
	default:
		return log.INFO
	}
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	keepAlive, err := parseInterval(getEnv("KEEPALIVE_INTERVAL", ""))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:               getEnv("HTTP_PORT", getEnv("PORT", "3000")),
		DBHost:                 getEnv("DB_HOST", ""),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", ""),
		DBPassword:             getEnv("DB_PASSWORD", ""),
		DBName:                 getEnv("DB_NAME", ""),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		KafkaHost:              getEnv("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		AMQPURL:                getEnv("AMQP_URL", ""),
		AMQPExchange:           getEnv("AMQP_EXCHANGE", ""),
		KeepAliveInterval:      keepAlive,
		StaticDir:              getEnv("STATIC_DIR", "public"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// parseInterval accepts a Go duration ("25s") or a whole number of seconds.
func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return sse.DefaultKeepAliveInterval, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		secs, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, errs.NewValueIsInvalidErrorWithCause("KEEPALIVE_INTERVAL", err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d < time.Second {
		return 0, errs.NewValueIsOutOfRangeError("KEEPALIVE_INTERVAL", s, time.Second, "unbounded")
	}
	return d, nil
}
