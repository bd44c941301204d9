package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config представляет структуру конфигурации для приложения.
type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"app"`
	Database struct {
		DSN      string `mapstructure:"dsn"`
		MaxConns int32  `mapstructure:"max_conns"`
		MinConns int32  `mapstructure:"min_conns"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	G2Pay struct {
		CheckoutURL string `mapstructure:"checkout_url"`
		MerchantKey string `mapstructure:"merchant_key"`
		Password    string `mapstructure:"password"`
		BearerToken string `mapstructure:"bearer_token"`
	} `mapstructure:"g2pay"`
	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
}

// LoadConfig загружает конфигурацию из файла config.yaml, .env и переменных
// окружения. Переменные окружения имеют приоритет: APP_BASE_URL
// перекрывает app.base_url из файла.
func LoadConfig(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// .env опционален: локально удобен, в контейнере его обычно нет
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:3000")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("g2pay.checkout_url", "https://engine.g2pay.io")
	v.SetDefault("g2pay.merchant_key", "")
	v.SetDefault("g2pay.password", "")
	v.SetDefault("g2pay.bearer_token", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Файл конфигурации опционален, все значения могут прийти из окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
