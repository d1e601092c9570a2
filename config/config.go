package config

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration. The cache and the task queue live in separate DBs.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	CacheEnabled    bool          `mapstructure:"CACHE_ENABLED"`
	CacheTTL        time.Duration `mapstructure:"CACHE_TTL"`
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`

	// Matching engine.
	MatchWorkers       int     `mapstructure:"MATCH_WORKERS"`
	RecommendedLimit   int     `mapstructure:"RECOMMENDED_LIMIT"`
	ExperienceCeiling  float64 `mapstructure:"EXPERIENCE_CEILING"`
	WeightInstrument   float64 `mapstructure:"WEIGHT_INSTRUMENT"`
	WeightAvailability float64 `mapstructure:"WEIGHT_AVAILABILITY"`
	WeightExperience   float64 `mapstructure:"WEIGHT_EXPERIENCE"`
	WeightRating       float64 `mapstructure:"WEIGHT_RATING"`
	WeightBudget       float64 `mapstructure:"WEIGHT_BUDGET"`
}

var AppConfig Config

var defaults = map[string]any{
	"APP_PORT":             "8080",
	"ENV":                  "development",
	"LOG_LEVEL":            "info",
	"MAX_REQUESTS_PER_MIN": 100,
	"DATABASE_URL":         "mongodb://localhost:27017",
	"DATABASE_NAME":        "gigmatch",
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_CACHE_DB":       0,
	"REDIS_QUEUE_DB":       1,
	"CACHE_ENABLED":        true,
	"CACHE_TTL":            "10m",
	"REFRESH_INTERVAL":     "15m",
	"MATCH_WORKERS":        8,
	"RECOMMENDED_LIMIT":    10,
	"EXPERIENCE_CEILING":   10.0,
	"WEIGHT_INSTRUMENT":    0.30,
	"WEIGHT_AVAILABILITY":  0.25,
	"WEIGHT_EXPERIENCE":    0.15,
	"WEIGHT_RATING":        0.20,
	"WEIGHT_BUDGET":        0.10,
}

// Load reads config.yaml (from "." or "./config") and the environment into a
// fresh Config. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and aborts the process on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Validate rejects settings the matching engine cannot run with.
func (c Config) Validate() error {
	if c.MatchWorkers <= 0 {
		return fmt.Errorf("MATCH_WORKERS must be positive, got %d", c.MatchWorkers)
	}
	if c.RecommendedLimit <= 0 {
		return fmt.Errorf("RECOMMENDED_LIMIT must be positive, got %d", c.RecommendedLimit)
	}
	if c.ExperienceCeiling <= 0 {
		return fmt.Errorf("EXPERIENCE_CEILING must be positive, got %v", c.ExperienceCeiling)
	}
	weights := []float64{c.WeightInstrument, c.WeightAvailability, c.WeightExperience, c.WeightRating, c.WeightBudget}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("score weights must be non-negative")
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("score weights must sum to 1, got %.4f", sum)
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return strings.EqualFold(GetEnv(), "production")
}
