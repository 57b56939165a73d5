package config

import (
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Config struct {
	OpsAddress string `env:"RUN_ADDRESS"`

	DatabaseDNS string `env:"DATABASE_URI" validate:"required"`

	TelegramToken string `env:"TELEGRAM_TOKEN" validate:"required"`

	LogLevel string `env:"LOG_LEVEL"`
}

func InitConfig() *Config {
	flags := Flags{}
	flags.Init()

	cfg := Config{
		OpsAddress:    flags.opsAddress,
		DatabaseDNS:   flags.dbDNS,
		TelegramToken: flags.token,
		LogLevel:      flags.logLevel,
	}
	cfg.parseEnv()

	return &cfg
}

func (cfg *Config) parseEnv() {
	err := env.Parse(cfg)
	if err != nil {
		logger.Log.Warn("Getting an error while parsing the configuration", zap.String("err", err.Error()))
	}
}

// Validate проверяет обязательные поля после слияния флагов и окружения
func (cfg *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(cfg)
}
