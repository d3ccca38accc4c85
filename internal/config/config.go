package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	LeetCode LeetCodeConfig  `mapstructure:"leetcode"`
	Daily    DailyFeedConfig `mapstructure:"daily"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	CORS     CORSConfig      `mapstructure:"cors"`

	// Runtime flags set from the command line, not the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LeetCodeConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	DailyTTL time.Duration `mapstructure:"daily_cache_minutes"`
	QueryTTL time.Duration `mapstructure:"query_cache_minutes"`
}

// DailyFeedConfig caps the three groups of the today feed.
type DailyFeedConfig struct {
	PathCap   int `mapstructure:"path_cap"`
	ReviewCap int `mapstructure:"review_cap"`
	DailyCap  int `mapstructure:"daily_cap"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LEETTRACK")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")
	viper.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	viper.BindEnv("jwt.secret", "JWT_SECRET")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.port", "SERVER_PORT")

	viper.BindEnv("leetcode.endpoint", "LEETCODE_ENDPOINT")

	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.LeetCode.DailyTTL = cfg.LeetCode.DailyTTL * time.Minute
	cfg.LeetCode.QueryTTL = cfg.LeetCode.QueryTTL * time.Minute

	if cfg.Daily.PathCap <= 0 {
		cfg.Daily.PathCap = 3
	}
	if cfg.Daily.ReviewCap <= 0 {
		cfg.Daily.ReviewCap = 3
	}
	if cfg.Daily.DailyCap <= 0 {
		cfg.Daily.DailyCap = 2
	}

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}
