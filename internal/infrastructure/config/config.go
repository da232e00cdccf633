package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "parlor/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Chat      sharedConfig.ChatConfig      `mapstructure:"chat"`
	Admin     sharedConfig.AdminConfig     `mapstructure:"admin"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Assistant sharedConfig.AssistantConfig `mapstructure:"assistant"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit"`
	Knowledge sharedConfig.KnowledgeConfig `mapstructure:"knowledge"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("PARLOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine: defaults plus env overrides are a
		// complete configuration for development.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "parlor_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Chat scheduling defaults. One authoritative value per policy; every
	// deployment may override them through config or PARLOR_CHAT_* env vars.
	viper.SetDefault("chat.max_concurrent_sessions", 10)
	viper.SetDefault("chat.max_queue_size", 50)
	viper.SetDefault("chat.session_duration_minutes", 30)
	viper.SetDefault("chat.inactivity_threshold_minutes", 5)
	viper.SetDefault("chat.average_session_minutes", 10)
	viper.SetDefault("chat.max_estimated_wait_minutes", 120)
	viper.SetDefault("chat.reaper_interval_seconds", 60)

	// Admin defaults (password hash must be configured for the console to be usable)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password_hash", "")
	viper.SetDefault("admin.jwt_secret", "change-me-in-production")
	viper.SetDefault("admin.jwt_exp_minutes", 60)

	// Email defaults
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@parlor.local")
	viper.SetDefault("email.from_name", "Parlor")

	// Assistant backend defaults
	viper.SetDefault("assistant.base_url", "http://localhost:9090")
	viper.SetDefault("assistant.model", "default")
	viper.SetDefault("assistant.timeout_seconds", 30)
	viper.SetDefault("assistant.cost_per_1k_tokens", 0.002)

	// Rate limiting defaults
	viper.SetDefault("rate_limit.requests_per_minute", 60)

	// Knowledge base defaults
	viper.SetDefault("knowledge.seed_file", "./configs/knowledge.yaml")
}
