package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Remote business API (catalog, bookings, food boxes).
	APIURL string `mapstructure:"API_URL"`

	// Google Distance Matrix.
	GoogleAPIKey   string `mapstructure:"GOOGLE_API_KEY"`
	DistanceOrigin string `mapstructure:"DISTANCE_ORIGIN"`

	// Redis configuration.
	RedisAddr       string  `mapstructure:"REDIS_ADDR"`
	RedisPassword   string  `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB  int     `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB    int     `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskDB     int     `mapstructure:"REDIS_TASK_DB"`
	SessionTTLMins  int     `mapstructure:"SESSION_TTL_MINUTES"`
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	DatabaseURL     string  `mapstructure:"DATABASE_URL"`
	DatabaseName    string  `mapstructure:"DATABASE_NAME"`
	StripeKey       string  `mapstructure:"STRIPE_KEY"`
	StripeSuccess   string  `mapstructure:"STRIPE_SUCCESS_URL"`
	StripeCancel    string  `mapstructure:"STRIPE_CANCEL_URL"`
	KafkaBrokers    string  `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic      string  `mapstructure:"KAFKA_TOPIC"`
	MealDeliveryFee float64 `mapstructure:"MEAL_DELIVERY_FEE"`

	// Days before the event the deposit balance reminder fires.
	BalanceReminderDays int `mapstructure:"BALANCE_REMINDER_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("API_URL", "http://localhost:5000/api/v1")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("DISTANCE_ORIGIN", "SE28 8LL, Thamesmead")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "walegrills")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_SUCCESS_URL", "http://localhost:3000/bookings?paid=1")
	viper.SetDefault("STRIPE_CANCEL_URL", "http://localhost:3000/bookings")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "checkout-events")
	viper.SetDefault("MEAL_DELIVERY_FEE", 0)
	viper.SetDefault("BALANCE_REMINDER_DAYS", 3)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// KafkaBrokerList splits KAFKA_BROKERS on commas. Empty means events are not published.
func KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(AppConfig.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
