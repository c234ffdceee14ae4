package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("POSTWISE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回只包含默认值的配置，测试与本地调试使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("jwt.issuer", "Postwise")

	v.SetDefault("platform.name", "twitter")
	v.SetDefault("platform.base_url", "https://api.twitter.com/2")
	v.SetDefault("platform.batch_size", 100)
	v.SetDefault("platform.timeout_seconds", 15)
	v.SetDefault("platform.requests_per_second", 5)

	v.SetDefault("analytics.sync_cron", "0 0 3 * * *")
	v.SetDefault("analytics.window_days", 30)
	v.SetDefault("analytics.sync_batch_size", 100)
	v.SetDefault("analytics.lease_seconds", 600)
	v.SetDefault("analytics.cache_minutes", 60)
}
