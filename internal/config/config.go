package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env             string        `yaml:"env" env-default:"local"`
	StoragePath     string        `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	HTTP            HTTPConfig    `yaml:"http"`
	TokenSecret     string        `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_ttl" env-required:"true"`
	RefreshTokenTTL time.Duration `yaml:"refresh_ttl" env-required:"true"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

func Load(path string) *Config {
	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}
