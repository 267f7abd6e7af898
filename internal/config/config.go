package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Database struct {
		DSN          string        `mapstructure:"dsn"`
		QueryTimeout time.Duration `mapstructure:"queryTimeout"`
	} `mapstructure:"database"`
	Kafka struct {
		Brokers      []string      `mapstructure:"brokers"`
		GroupID      string        `mapstructure:"groupId"`
		WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	} `mapstructure:"kafka"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	API struct {
		BaseURL string `mapstructure:"baseUrl"`
	} `mapstructure:"api"`
}

// LoadConfig loads configuration from the yaml file and the environment.
func LoadConfig(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// A missing .env file is fine outside production.
		_ = godotenv.Load(path)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("database.queryTimeout", 10*time.Second)
	viper.SetDefault("kafka.writeTimeout", 10*time.Second)
	viper.SetDefault("kafka.groupId", "contact-details-search-sync")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, everything can come from env.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
