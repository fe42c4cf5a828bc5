package utils

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Theatre  TheatreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Broker   BrokerConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	Storage string // "postgres" or "memory"
}

type TheatreConfig struct {
	Rows int
	Cols int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SeatingKey string
	SeatingTTL time.Duration
}

type BrokerConfig struct {
	URL              string
	TicketQueue      string
	DispatchInterval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "ticket-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORAGE", "postgres")
	viper.SetDefault("THEATRE_ROWS", 10)
	viper.SetDefault("THEATRE_COLS", 10)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SEATING_CACHE_KEY", "seating:snapshot")
	viper.SetDefault("SEATING_CACHE_TTL", "30s")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("TICKET_QUEUE", "tickets.issued")
	viper.SetDefault("DISPATCH_INTERVAL", "5s")

	// .env is optional, plain environment variables work on their own
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			Storage: viper.GetString("STORAGE"),
		},
		Theatre: TheatreConfig{
			Rows: viper.GetInt("THEATRE_ROWS"),
			Cols: viper.GetInt("THEATRE_COLS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			SeatingKey: viper.GetString("SEATING_CACHE_KEY"),
			SeatingTTL: viper.GetDuration("SEATING_CACHE_TTL"),
		},
		Broker: BrokerConfig{
			URL:              viper.GetString("RABBITMQ_URL"),
			TicketQueue:      viper.GetString("TICKET_QUEUE"),
			DispatchInterval: viper.GetDuration("DISPATCH_INTERVAL"),
		},
	}

	return config, nil
}
