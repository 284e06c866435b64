package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 服务配置
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Postgres PostgresConfig `yaml:"postgres" json:"postgres"`
	Redis    RedisConfig    `yaml:"redis" json:"redis"`
	Auth     AuthConfig     `yaml:"auth" json:"auth"`
	Rewards  RewardsConfig  `yaml:"rewards" json:"rewards"`
	JWT      JWTConfig      `yaml:"jwt" json:"jwt"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port int    `yaml:"port" json:"port"`
	Mode string `yaml:"mode" json:"mode"` // debug, release
}

// PostgresConfig 数据库配置
type PostgresConfig struct {
	Host            string `yaml:"host" json:"host"`
	Port            int    `yaml:"port" json:"port"`
	User            string `yaml:"user" json:"user"`
	Password        string `yaml:"password" json:"password"`
	Database        string `yaml:"database" json:"database"`
	MaxConnections  int    `yaml:"max_connections" json:"max_connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime"` // 秒
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	PoolSize int    `yaml:"pool_size" json:"pool_size"`
}

// AuthConfig 钱包登录配置
type AuthConfig struct {
	// NonceTTLSec 挑战有效期 (秒), 过期后需重新获取
	NonceTTLSec int `yaml:"nonce_ttl_sec" json:"nonce_ttl_sec"`
	// SessionTTLSec 会话有效期 (秒)
	SessionTTLSec int `yaml:"session_ttl_sec" json:"session_ttl_sec"`
	// LoginMessageTemplate 登录签名消息模板, 单个 %s 占位 nonce
	// 签名与验证必须逐字节一致, 修改会使进行中的登录失效
	LoginMessageTemplate string `yaml:"login_message_template" json:"login_message_template"`
}

// RewardsConfig 任务提交配置
type RewardsConfig struct {
	// SupportedNetworks 提交表单允许的网络标识
	SupportedNetworks []string `yaml:"supported_networks" json:"supported_networks"`
}

// JWTConfig 后台 JWT 配置
type JWTConfig struct {
	Secret      string `yaml:"secret" json:"secret"`
	ExpireHours int    `yaml:"expire_hours" json:"expire_hours"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultLoginMessageTemplate 默认登录消息模板
const DefaultLoginMessageTemplate = "Welcome to LinkPepper!\n\n" +
	"Sign this message to log in with your wallet.\n\n" +
	"Nonce: %s\n\n" +
	"This request will not trigger a blockchain transaction or cost any gas fees."

// Load 加载配置: 默认值 <- 配置文件 <- 环境变量
func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Mode: "debug",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "linkpepper",
			Password:        "linkpepper123",
			Database:        "linkpepper",
			MaxConnections:  30,
			MaxIdleConns:    10,
			ConnMaxLifetime: 3600,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 20,
		},
		Auth: AuthConfig{
			NonceTTLSec:          600,
			SessionTTLSec:        86400,
			LoginMessageTemplate: DefaultLoginMessageTemplate,
		},
		Rewards: RewardsConfig{
			SupportedNetworks: []string{"ETH", "SOL", "BNB", "POL"},
		},
		JWT: JWTConfig{
			Secret:      "change-me-in-production",
			ExpireHours: 8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadFromEnv 从环境变量覆盖配置
func loadFromEnv(cfg *Config) {
	if port := GetEnvInt("HTTP_PORT", 0); port > 0 {
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		cfg.Postgres.Host = host
	}
	if port := GetEnvInt("POSTGRES_PORT", 0); port > 0 {
		cfg.Postgres.Port = port
	}
	if user := os.Getenv("POSTGRES_USER"); user != "" {
		cfg.Postgres.User = user
	}
	if password := os.Getenv("POSTGRES_PASSWORD"); password != "" {
		cfg.Postgres.Password = password
	}
	if database := os.Getenv("POSTGRES_DATABASE"); database != "" {
		cfg.Postgres.Database = database
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if hours := GetEnvInt("JWT_EXPIRE_HOURS", 0); hours > 0 {
		cfg.JWT.ExpireHours = hours
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
}

// GetEnv 读取环境变量, 为空返回默认值
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt 读取整型环境变量
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
