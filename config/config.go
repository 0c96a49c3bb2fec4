package config

import "time"

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type AuthConfig struct {
	Secret    string `mapstructure:"secret" validate:"required"`
	ExpiryMin int    `mapstructure:"expiry_min"`
}

type RabbitMQConfig struct {
	BrokerLink   string `mapstructure:"broker_link" validate:"required"`
	ExchangeName string `mapstructure:"exchange_name" validate:"required"`
	ExchangeType string `mapstructure:"exchange_type"`
	QueueName    string `mapstructure:"queue_name" validate:"required"`
	RoutingKey   string `mapstructure:"routing_key" validate:"required"`
}

// UptimeConfig carries the knobs of the metrics engine. The reporting
// timezone is deliberately required: day buckets must never depend on the
// zone the process happens to run in.
type UptimeConfig struct {
	ReportingTimezone string             `mapstructure:"reporting_timezone" validate:"required"`
	GenesisStatus     string             `mapstructure:"genesis_status"`
	Weights           map[string]float64 `mapstructure:"weights"`
	CacheTTL          time.Duration      `mapstructure:"cache_ttl"`
	SnapshotInterval  time.Duration      `mapstructure:"snapshot_interval"`
	MaxWindowDays     int                `mapstructure:"max_window_days"`
}

type Config struct {
	Env         string          `mapstructure:"env"`
	ServiceName string          `mapstructure:"service_name"`
	Port        int             `mapstructure:"port"`
	DB          DBConfig        `mapstructure:"db"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Auth        *AuthConfig     `mapstructure:"auth" validate:"required"`
	RabbitMQ    *RabbitMQConfig `mapstructure:"rabbitmq" validate:"required"`
	Uptime      UptimeConfig    `mapstructure:"uptime"`
}
