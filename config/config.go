package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// LLM configuration.
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`

	// Agent loop tuning.
	AgentMaxToolRounds   int `mapstructure:"AGENT_MAX_TOOL_ROUNDS"`
	AgentHistoryWindow   int `mapstructure:"AGENT_HISTORY_WINDOW"`
	DefaultVirtualTables int `mapstructure:"DEFAULT_VIRTUAL_TABLES"`

	// Twilio WhatsApp transport.
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`

	// Meta Cloud API WhatsApp transport.
	MetaAccessToken   string `mapstructure:"META_ACCESS_TOKEN"`
	MetaPhoneNumberID string `mapstructure:"META_PHONE_NUMBER_ID"`
	MetaVerifyToken   string `mapstructure:"META_VERIFY_TOKEN"`
	MetaAppSecret     string `mapstructure:"META_APP_SECRET"`
	MetaAPIBaseURL    string `mapstructure:"META_API_BASE_URL"`

	// Reservation reminders.
	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderTemplateName string `mapstructure:"REMINDER_TEMPLATE_NAME"`
}

var AppConfig Config

func LoadConfig() {
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AGENT_MAX_TOOL_ROUNDS", 3)
	viper.SetDefault("AGENT_HISTORY_WINDOW", 10)
	viper.SetDefault("DEFAULT_VIRTUAL_TABLES", 5)
	viper.SetDefault("META_API_BASE_URL", "https://graph.facebook.com/v19.0")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 120)
	viper.SetDefault("REMINDER_TEMPLATE_NAME", "reservation_reminder")

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
