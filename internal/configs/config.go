package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"flathunter-service/internal/constants"

	"github.com/joho/godotenv"
)

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL     string
	Enabled bool
}

// StoreConfig хранит конфигурацию хранилища объявлений
type StoreConfig struct {
	Driver      string
	Path        string // файл bolt
	DatabaseURL string
	RedisURL    string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// FetcherConfig - чем загружать страницы
type FetcherConfig struct {
	Kind           string
	ChromePath     string
	RequestTimeout time.Duration
	Parallelism    int
}

type TelegramConfig struct {
	BotToken string
}

type GoogleMapsConfig struct {
	APIKey string
}

type HTTPConfig struct {
	Port           string
	Enabled        bool
	AllowedOrigins []string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName        string
	HuntConfigPath string
	HuntInterval   time.Duration

	Store        StoreConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
	Fetcher      FetcherConfig
	Telegram     TelegramConfig
	GoogleMaps   GoogleMapsConfig
	HTTP         HTTPConfig

	Hunt *HuntConfig
}

// LoadConfig загружает конфигурацию из переменных окружения и файла охоты.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		// .env не обязателен, переменные могут прийти из окружения контейнера
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "flathunter-service")
	cfg.HuntConfigPath = getEnvAsString("HUNT_CONFIG_PATH", "config.yaml")
	cfg.HuntInterval = getEnvAsDuration("HUNT_INTERVAL", 10*time.Minute)
	if cfg.HuntInterval <= 0 {
		return nil, fmt.Errorf("HUNT_INTERVAL must be positive, got %s", cfg.HuntInterval)
	}

	cfg.Store.Driver = getEnvAsString("STORE_DRIVER", constants.StoreDriverBolt)
	switch cfg.Store.Driver {
	case constants.StoreDriverBolt:
		cfg.Store.Path = getEnvAsString("STORE_PATH", "processed_ids.db")
	case constants.StoreDriverPostgres:
		cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for STORE_DRIVER=postgres")
		}
	case constants.StoreDriverRedis:
		cfg.Store.RedisURL = os.Getenv("REDIS_URL")
		if cfg.Store.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required for STORE_DRIVER=redis")
		}
	case constants.StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	// Читаем конфигурацию для RabbitMQ
	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.Fetcher.Kind = getEnvAsString("FETCHER", constants.FetcherColly)
	if cfg.Fetcher.Kind != constants.FetcherColly && cfg.Fetcher.Kind != constants.FetcherChrome {
		return nil, fmt.Errorf("unknown FETCHER %q", cfg.Fetcher.Kind)
	}
	cfg.Fetcher.ChromePath = getEnvAsString("CHROME_BIN", "")
	cfg.Fetcher.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout)
	cfg.Fetcher.Parallelism = getEnvAsInt("FETCH_PARALLELISM", 1)

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.GoogleMaps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.HTTP.Enabled = getEnvAsBool("HTTP_ENABLED", true)
	cfg.HTTP.Port = getEnvAsString("HTTP_PORT", "8080")
	cfg.HTTP.AllowedOrigins = strings.Split(getEnvAsString("HTTP_ALLOWED_ORIGINS", "http://localhost:5173"), ",")

	cfg.Hunt, err = LoadHuntConfig(cfg.HuntConfigPath)
	if err != nil {
		return nil, err
	}

	if len(cfg.Hunt.Telegram.ReceiverIDs) > 0 && cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required when receivers are configured")
	}
	if len(cfg.Hunt.Durations) > 0 && cfg.GoogleMaps.APIKey == "" {
		log.Println("WARNING: durations are configured, but GOOGLE_MAPS_API_KEY is not set. Travel durations are disabled.")
	}

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDuration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDuration
}
