package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置，方言为 sqlite 或 mysql
type DatabaseConfig struct {
	Dialect string
	// Storage sqlite 数据库文件路径
	Storage string
	// DSN mysql 连接串
	DSN string
}

// RedisConfig Redis 配置，Addr 为空表示不启用令牌缓存
type RedisConfig struct {
	Addr string
}

// RabbitMQConfig MQ 配置，URL 为空表示不投递订单事件
type RabbitMQConfig struct {
	URL string
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	// TokenCacheTTLSeconds JWT 解析结果缓存时间（秒）
	TokenCacheTTLSeconds int
	// AdminUsername / AdminPassword 启动时保证存在的管理员账号
	AdminUsername string
	AdminPassword string
}

// JWTConfig JWT 配置
type JWTConfig struct {
	Secret string
}

// CORSConfig 跨域配置
type CORSConfig struct {
	Origin string
}

// Config 应用总配置
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

// DefaultConfig 默认配置，方便快速跑起来
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Dialect: "sqlite",
			Storage: "database.sqlite",
			DSN:     "gomall:gomall123@tcp(127.0.0.1:3306)/gomall?charset=utf8mb4&parseTime=True&loc=Local",
		},
		Auth: AuthConfig{
			TokenCacheTTLSeconds: 600,
			AdminUsername:        "admin",
			AdminPassword:        "admin123",
		},
		JWT: JWTConfig{
			Secret: "gomall-secret",
		},
		CORS: CORSConfig{
			Origin: "*",
		},
	}
}

// Load 从 .env 文件与进程环境变量加载配置。
// 所有键都有默认值，零配置也能启动（sqlite + 关闭 redis/MQ）。
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	def := DefaultConfig()
	v.SetDefault("HOST", def.Server.Host)
	v.SetDefault("PORT", def.Server.Port)
	v.SetDefault("DB_DIALECT", def.Database.Dialect)
	v.SetDefault("DB_STORAGE", def.Database.Storage)
	v.SetDefault("DB_DSN", def.Database.DSN)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", def.JWT.Secret)
	v.SetDefault("CORS_ORIGIN", def.CORS.Origin)
	v.SetDefault("TOKEN_CACHE_TTL_SECONDS", def.Auth.TokenCacheTTLSeconds)
	v.SetDefault("ADMIN_USERNAME", def.Auth.AdminUsername)
	v.SetDefault("ADMIN_PASSWORD", def.Auth.AdminPassword)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: v.GetString("HOST"),
			Port: v.GetInt("PORT"),
		},
		Database: DatabaseConfig{
			Dialect: v.GetString("DB_DIALECT"),
			Storage: v.GetString("DB_STORAGE"),
			DSN:     v.GetString("DB_DSN"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("REDIS_ADDR"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Auth: AuthConfig{
			TokenCacheTTLSeconds: v.GetInt("TOKEN_CACHE_TTL_SECONDS"),
			AdminUsername:        v.GetString("ADMIN_USERNAME"),
			AdminPassword:        v.GetString("ADMIN_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			Origin: v.GetString("CORS_ORIGIN"),
		},
	}, nil
}
