package config

import (
	"errors"

	"dataroom-service/internal/MinIO"
	"dataroom-service/pkg/database/postgres"
	"dataroom-service/pkg/database/redis"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPPort  string `env:"HTTP_PORT" env-default:"8080"`
	JWTSecret string `env:"JWT_TOKEN"`

	MaxUploadFiles int   `env:"MAX_UPLOAD_FILES" env-default:"10"`
	MaxFileSize    int64 `env:"MAX_FILE_SIZE" env-default:"10485760"`
	Postgres       postgres.Config
	Redis          redis.Config
	MinIO          MinIO.Config
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.New("cannot read dataroom config")
		}
	}
	return &cfg, nil
}
