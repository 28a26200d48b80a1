package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服务配置
type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LogLevel string
}

type ServerConfig struct {
	Port    string
	GinMode string
}

// ModelConfig 训练器产出的两个模型文件
type ModelConfig struct {
	ModelPath  string
	ScalerPath string
}

type DatabaseConfig struct {
	Enabled  bool
	Username string
	Password string
	Hostname string
	DBName   string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// 默认配置
var defaults = map[string]any{
	"SERVER_PORT": "8080",
	"GIN_MODE":    "release",
	"MODEL_PATH":  "model.gob",
	"SCALER_PATH": "standscaler.gob",
	"LOG_LEVEL":   "info",
	"DB_ENABLED":  false,
	"DB_USER":     "root",
	"DB_PASSWORD": "root",
	"DB_HOST":     "127.0.0.1:3306",
	"DB_NAME":     "cropadvisor",
	"JWT_SECRET":  "cropadvisor_secret_key",
	"JWT_TTL":     "168h",
}

// Load 读取 .env（可选）和环境变量
func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:    v.GetString("SERVER_PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Model: ModelConfig{
			ModelPath:  v.GetString("MODEL_PATH"),
			ScalerPath: v.GetString("SCALER_PATH"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			Username: v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Hostname: v.GetString("DB_HOST"),
			DBName:   v.GetString("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    ttl,
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}, nil
}

// Addr 监听地址
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
