package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress         = "localhost:8080"
	defaultMigrationsDir      = "internal/db/migrations"
	defaultRedisURL           = "redis://localhost:6379/0"
	defaultPaymentMethodsFile = "data/payment-credentials.json"
	defaultJWTExpire          = 24 * time.Hour
	defaultLoginAttempts      = 10
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN"`

	RedisURL           string `env:"REDIS_URL"`
	PaymentMethodsFile string `env:"PAYMENT_METHODS_FILE"`

	// AdminAPIKey пустой ключ открывает админские роуты без проверки.
	AdminAPIKey        string   `env:"ADMIN_API_KEY"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"   envDefault:"paydesk.events"`

	// GatewayURL адрес внешнего платежного шлюза. Если не задан, платежи проводятся симулятором.
	GatewayURL string `env:"GATEWAY_URL"`

	LoginAttemptsPerMinute int    `env:"LOGIN_ATTEMPTS_PER_MINUTE"`
	GinMode                string `env:"GIN_MODE" envDefault:"debug"`
}

// IsRelease true для продакшн окружения.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// LoadConfig собирает конфиг из переменных окружения (в том числе из .env файла, если он есть)
// и флагов args. Переменные окружения приоритетнее флагов.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	if conf.JWTExpiresIn <= 0 {
		return nil, errors.New("jwt expiration must be positive")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	flagSet := flag.NewFlagSet("paydesk", flag.ContinueOnError)

	flagSet.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	flagSet.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flagSet.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	flagSet.StringVar(&flagConfig.JWTSecret, "j", "", "JWT secret key")
	flagSet.DurationVar(&flagConfig.JWTExpiresIn, "jwt-expire", defaultJWTExpire, "JWT token lifetime")
	flagSet.StringVar(&flagConfig.RedisURL, "r", defaultRedisURL, "Redis URL")
	flagSet.StringVar(&flagConfig.PaymentMethodsFile, "p", defaultPaymentMethodsFile, "Payment methods json file")
	flagSet.StringVar(&flagConfig.GatewayURL, "g", "", "Payment gateway base URL")
	flagSet.IntVar(&flagConfig.LoginAttemptsPerMinute, "login-rate", defaultLoginAttempts,
		"Max login attempts per minute for a username")

	var origins, brokers string
	flagSet.StringVar(&origins, "cors", "", "Comma separated CORS allowed origins")
	flagSet.StringVar(&brokers, "kafka", "", "Comma separated kafka brokers")

	if err := flagSet.Parse(args); err != nil {
		return err //nolint:wrapcheck
	}
	flagConfig.CORSAllowedOrigins = splitList(origins)
	flagConfig.KafkaBrokers = splitList(brokers)
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:             defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:            defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:          defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTSecret:              defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret),
		JWTExpiresIn:           defaultIfZero(envConfig.JWTExpiresIn, flagsConfig.JWTExpiresIn),
		RedisURL:               defaultIfBlank(envConfig.RedisURL, flagsConfig.RedisURL),
		PaymentMethodsFile:     defaultIfBlank(envConfig.PaymentMethodsFile, flagsConfig.PaymentMethodsFile),
		AdminAPIKey:            envConfig.AdminAPIKey,
		CORSAllowedOrigins:     defaultIfEmpty(envConfig.CORSAllowedOrigins, flagsConfig.CORSAllowedOrigins),
		KafkaBrokers:           defaultIfEmpty(envConfig.KafkaBrokers, flagsConfig.KafkaBrokers),
		KafkaTopic:             envConfig.KafkaTopic,
		GatewayURL:             defaultIfBlank(envConfig.GatewayURL, flagsConfig.GatewayURL),
		LoginAttemptsPerMinute: defaultIfZero(envConfig.LoginAttemptsPerMinute, flagsConfig.LoginAttemptsPerMinute),
		GinMode:                envConfig.GinMode,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultIfZero[T int | time.Duration](value, defaultValue T) T {
	if value == 0 {
		return defaultValue
	}
	return value
}

func defaultIfEmpty(value, defaultValue []string) []string {
	if len(value) == 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
