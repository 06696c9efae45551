package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Embedding EmbeddingConfig
	Qdrant    QdrantConfig
	Storage   StorageConfig
	Insight   InsightConfig
	AMQP      AMQPConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret string
}

type EmbeddingConfig struct {
	// Provider is "gemini" or "none"; "none" leaves the model unloaded and every pair degrades.
	Provider  string
	Model     string
	APIKey    string
	Cache     string
	BatchSize int
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadRoot  string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

type InsightConfig struct {
	DatasetPath string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	return load(true)
}

// LoadLenient skips the required-key check; used by CLI commands that touch a single subsystem.
func LoadLenient() Config {
	cfg, _ := load(false)
	return cfg
}

func load(strict bool) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret: req("JWT_ACCESS_SECRET"),
	}

	cfg.Embedding = EmbeddingConfig{
		Provider:  strings.ToLower(opt("EMBEDDING_PROVIDER")),
		Model:     opt("EMBEDDING_MODEL"),
		APIKey:    opt("GEMINI_API_KEY"),
		Cache:     strings.ToLower(opt("EMBEDDING_CACHE")),
		BatchSize: v.GetInt("EMBEDDING_BATCH_SIZE"),
	}
	if cfg.Embedding.Provider == "gemini" && cfg.Embedding.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	cfg.Qdrant = QdrantConfig{
		URL:        opt("QDRANT_URL"),
		APIKey:     opt("QDRANT_API_KEY"),
		Collection: opt("QDRANT_COLLECTION"),
	}

	cfg.Storage = StorageConfig{
		UploadRoot:  opt("UPLOAD_ROOT"),
		S3Region:    opt("S3_REGION"),
		S3Endpoint:  opt("S3_ENDPOINT"),
		S3AccessKey: opt("S3_ACCESS_KEY"),
		S3SecretKey: opt("S3_SECRET_KEY"),
	}

	cfg.Insight = InsightConfig{
		DatasetPath: opt("INSIGHT_DATASET_PATH"),
	}

	cfg.AMQP = AMQPConfig{
		URL:      opt("AMQP_URL"),
		Exchange: opt("AMQP_EXCHANGE"),
	}

	if strict && len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", 24*time.Hour)
	v.SetDefault("EMBEDDING_PROVIDER", "gemini")
	v.SetDefault("EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("EMBEDDING_CACHE", "redis")
	v.SetDefault("EMBEDDING_BATCH_SIZE", 100)
	v.SetDefault("QDRANT_URL", "http://localhost:6334")
	v.SetDefault("QDRANT_COLLECTION", "talent_match_embeddings")
	v.SetDefault("UPLOAD_ROOT", "./media")
	v.SetDefault("S3_REGION", "auto")
	v.SetDefault("INSIGHT_DATASET_PATH", "models/Employee_Upskilling_Dataset.csv")
	v.SetDefault("AMQP_EXCHANGE", "ranking_updates")
}
