package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Session store configuration.
	SessionBackend    string `mapstructure:"SESSION_BACKEND"` // "redis" or "memory"
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	MaxHistoryLength  int    `mapstructure:"MAX_HISTORY_LENGTH"`

	// Search configuration.
	MaxResultsPerSearch int    `mapstructure:"MAX_RESULTS_PER_SEARCH"`
	POICollection       string `mapstructure:"POI_COLLECTION"`

	// Scoring configuration. SCORING_WEIGHTS is a JSON-encoded mapping of
	// signal key to weight; empty means built-in defaults.
	ScoringWeights        string  `mapstructure:"SCORING_WEIGHTS"`
	DistanceReferenceKM   float64 `mapstructure:"DISTANCE_REFERENCE_KM"`
	FreshnessHalfLifeDays float64 `mapstructure:"FRESHNESS_HALFLIFE_DAYS"`
	PopularitySaturation  float64 `mapstructure:"POPULARITY_SATURATION"`

	// Per-signal enable flags.
	EnableSemantic       bool `mapstructure:"SCORING_ENABLE_SEMANTIC"`
	EnableRating         bool `mapstructure:"SCORING_ENABLE_RATING"`
	EnableDistance       bool `mapstructure:"SCORING_ENABLE_DISTANCE"`
	EnableFreshness      bool `mapstructure:"SCORING_ENABLE_FRESHNESS"`
	EnablePopularity     bool `mapstructure:"SCORING_ENABLE_POPULARITY"`
	EnableDietary        bool `mapstructure:"SCORING_ENABLE_DIETARY"`
	EnableCategory       bool `mapstructure:"SCORING_ENABLE_CATEGORY"`
	EnableGeneralIntent  bool `mapstructure:"SCORING_ENABLE_GENERAL_INTENT"`

	// Embedding provider: "openai" or "gemini".
	EmbeddingProvider string `mapstructure:"EMBEDDING_PROVIDER"`
	OpenAIAPIKey      string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	EmbeddingModel    string `mapstructure:"EMBEDDING_MODEL"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "placewise")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SESSION_BACKEND", "redis")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("MAX_HISTORY_LENGTH", 50)
	viper.SetDefault("MAX_RESULTS_PER_SEARCH", 10)
	viper.SetDefault("POI_COLLECTION", "pois")
	viper.SetDefault("SCORING_WEIGHTS", "")
	viper.SetDefault("DISTANCE_REFERENCE_KM", 5.0)
	viper.SetDefault("FRESHNESS_HALFLIFE_DAYS", 180.0)
	viper.SetDefault("POPULARITY_SATURATION", 1000.0)
	viper.SetDefault("SCORING_ENABLE_SEMANTIC", true)
	viper.SetDefault("SCORING_ENABLE_RATING", true)
	viper.SetDefault("SCORING_ENABLE_DISTANCE", true)
	viper.SetDefault("SCORING_ENABLE_FRESHNESS", true)
	viper.SetDefault("SCORING_ENABLE_POPULARITY", true)
	viper.SetDefault("SCORING_ENABLE_DIETARY", true)
	viper.SetDefault("SCORING_ENABLE_CATEGORY", true)
	viper.SetDefault("SCORING_ENABLE_GENERAL_INTENT", true)
	viper.SetDefault("EMBEDDING_PROVIDER", "openai")
	viper.SetDefault("EMBEDDING_MODEL", "")

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
