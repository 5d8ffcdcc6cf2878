package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	MQ       MQConfig
	Outbox   OutboxConfig
	Timeout  TimeoutConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	MigrationsPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type MQConfig struct {
	URL      string
	Exchange string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

type TimeoutConfig struct {
	Directory  time.Duration
	Repository time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "taskturf")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MQ_EXCHANGE", "taskturf.bookings")
	viper.SetDefault("OUTBOX_POLL_SECONDS", 5)
	viper.SetDefault("OUTBOX_BATCH_SIZE", 50)
	viper.SetDefault("DIRECTORY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("REPOSITORY_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		MQ: MQConfig{
			URL:      viper.GetString("MQ_URL"),
			Exchange: viper.GetString("MQ_EXCHANGE"),
		},
		Outbox: OutboxConfig{
			PollInterval: time.Duration(viper.GetInt("OUTBOX_POLL_SECONDS")) * time.Second,
			BatchSize:    viper.GetInt("OUTBOX_BATCH_SIZE"),
		},
		Timeout: TimeoutConfig{
			Directory:  time.Duration(viper.GetInt("DIRECTORY_TIMEOUT_SECONDS")) * time.Second,
			Repository: time.Duration(viper.GetInt("REPOSITORY_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	return config, nil
}
