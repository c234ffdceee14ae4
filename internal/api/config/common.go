package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Platform  PlatformConfig  `mapstructure:"platform"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志配置，Address 为空时只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// PlatformConfig 外部社交平台指标接口配置
type PlatformConfig struct {
	Name              string  `mapstructure:"name"`
	BaseURL           string  `mapstructure:"base_url"`
	BatchSize         int     `mapstructure:"batch_size"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// AnalyticsConfig 受众分析同步任务配置
type AnalyticsConfig struct {
	SyncCron      string `mapstructure:"sync_cron"`
	WindowDays    int    `mapstructure:"window_days"`
	SyncBatchSize int    `mapstructure:"sync_batch_size"`
	LeaseSeconds  int    `mapstructure:"lease_seconds"`
	CacheMinutes  int    `mapstructure:"cache_minutes"`
}
