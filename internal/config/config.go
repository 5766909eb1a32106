package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Demo keys shipped with the original deployment. Real deployments override
// them through the environment; keeping them as defaults lets the service
// start without any configuration.
const (
	defaultImgBBKey   = "9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d"
	defaultSerpApiKey = "b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2"
)

type Config struct {
	Server   ServerConfig
	ImgBB    ImgBBConfig
	SerpApi  SerpApiConfig
	History  HistoryConfig
	Storage  StorageConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Supabase SupabaseConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type ImgBBConfig struct {
	APIKey  string
	BaseURL string
}

type SerpApiConfig struct {
	APIKey  string
	BaseURL string
}

type HistoryConfig struct {
	Dir string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RabbitMQConfig struct {
	URL string
}

type SupabaseConfig struct {
	URL    string
	KEY    string
	BUCKET string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
		},
		ImgBB: ImgBBConfig{
			APIKey:  getEnv("IMGBB_API_KEY", defaultImgBBKey),
			BaseURL: getEnv("IMGBB_BASE_URL", "https://api.imgbb.com/1/upload"),
		},
		SerpApi: SerpApiConfig{
			APIKey:  getEnv("SERPAPI_API_KEY", defaultSerpApiKey),
			BaseURL: getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json"),
		},
		History: HistoryConfig{
			Dir: getEnv("HISTORY_DIR", "scan_history"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024), // 10MB
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getDuration("CACHE_TTL", 24*time.Hour),
		},
		RabbitMQ: RabbitMQConfig{
			URL: getEnv("RABBITMQ_URL", ""),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			KEY:    getEnv("SUPABASE_KEY", ""),
			BUCKET: getEnv("SUPABASE_BUCKET", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
