package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	SMTP      SMTPConfig
	Upload    UploadConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	FrontendURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessExpiry    time.Duration
	RefreshExpiry   time.Duration
	TwoFactorExpiry time.Duration
}

type CORSConfig struct {
	Origins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

type UploadConfig struct {
	Dir string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment-only deployments run without a .env file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("ACCESS_TOKEN_TTL"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("REFRESH_TOKEN_TTL"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	origins := []string{"*"}
	if raw := viper.GetString("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	rps := viper.GetFloat64("RATE_LIMIT_RPS")
	if rps <= 0 {
		rps = 50
	}
	burst := viper.GetInt("RATE_LIMIT_BURST")
	if burst <= 0 {
		burst = 100
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret:   viper.GetString("REFRESH_TOKEN_SECRET"),
			AccessExpiry:    accessExpiry,
			RefreshExpiry:   refreshExpiry,
			TwoFactorExpiry: 5 * time.Minute,
		},
		CORS: CORSConfig{
			Origins: origins,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
		},
		Upload: UploadConfig{
			Dir: uploadDir,
		},
	}

	return config, nil
}
