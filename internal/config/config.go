package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	S3       S3Config
	Gemini   GeminiConfig
	OCR      OCRConfig
	TTS      TTSConfig
	Pipeline PipelineConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	// local или s3
	Backend   string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir string `env:"STORAGE_UPLOAD_DIR" envDefault:"uploads"`
	OutputDir string `env:"STORAGE_OUTPUT_DIR" envDefault:"outputs"`
}

type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"S3_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"S3_SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"S3_BUCKET" envDefault:"documents"`
	UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
}

type GeminiConfig struct {
	APIKey         string        `env:"GEMINI_API_KEY"`
	Host           string        `env:"GEMINI_HOST" envDefault:"https://generativelanguage.googleapis.com"`
	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	FallbackModel  string        `env:"GEMINI_FALLBACK_MODEL" envDefault:"gemini-2.5-flash"`
	RequestTimeout time.Duration `env:"GEMINI_REQUEST_TIMEOUT" envDefault:"5m"`
}

type OCRConfig struct {
	// Язык Tesseract (eng, hin, kan, ...)
	Language string `env:"OCR_LANGUAGE" envDefault:"eng"`
	// Линейный масштаб растеризации страницы; 3x соответствует 216 dpi
	Scale int `env:"OCR_SCALE" envDefault:"3"`
}

type TTSConfig struct {
	Enabled bool `env:"TTS_ENABLED" envDefault:"true"`
	// Каталог для временных mp3 перед загрузкой в хранилище;
	// пустое значение — системный temp
	TempDir string `env:"TTS_TEMP_DIR" envDefault:""`
}

type PipelineConfig struct {
	// Размер пула фоновых воркеров конвейера
	Workers int `env:"PIPELINE_WORKERS" envDefault:"4"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// json или console
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
