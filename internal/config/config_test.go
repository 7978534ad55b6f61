package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dataroom-service/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_FromEnvFile(t *testing.T) {
	// Создаём временную папку с .env и переключаемся в неё
	td := t.TempDir()

	envContent := `HTTP_PORT=9090
JWT_TOKEN=very_very_secret_key
MAX_UPLOAD_FILES=5
MAX_FILE_SIZE=1048576

POSTGRES_HOST=localhost
POSTGRES_PORT=5433
POSTGRES_USER=dataroom
POSTGRES_PASSWORD=2529
POSTGRES_DB=dataroom

REDIS_HOST=localhost
REDIS_PORT=6380
REDIS_PASSWORD=
REDIS_DB=0

MINIO_ENDPOINT=localhost:9000
MINIO_BUCKET_NAME=dataroom-test
`
	if err := os.WriteFile(filepath.Join(td, ".env"), []byte(envContent), 0o644); err != nil {
		t.Fatal(err)
	}

	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "very_very_secret_key", cfg.JWTSecret)
	assert.Equal(t, 5, cfg.MaxUploadFiles)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, uint16(5433), cfg.Postgres.Port)
	assert.Equal(t, "dataroom", cfg.Postgres.Username)
	assert.Equal(t, "2529", cfg.Postgres.Password)
	assert.Equal(t, "dataroom", cfg.Postgres.Database)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.Db)

	assert.Equal(t, "localhost:9000", cfg.MinIO.MinioEndpoint)
	assert.Equal(t, "dataroom-test", cfg.MinIO.BucketName)
}

func TestLoad_Defaults(t *testing.T) {
	// Пустая временная папка без .env — конфиг собирается из env-default
	td := t.TempDir()
	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"HTTP_PORT", "JWT_TOKEN", "MAX_UPLOAD_FILES", "MAX_FILE_SIZE",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"MINIO_ENDPOINT", "MINIO_BUCKET_NAME",
	} {
		os.Unsetenv(key)
	}

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10, cfg.MaxUploadFiles)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, "dataroom", cfg.MinIO.BucketName)
}
