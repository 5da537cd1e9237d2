package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig      `envPrefix:"LOG_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Qdrant   QdrantConfig   `envPrefix:"QDRANT_"`
	Gemini   GeminiConfig   `envPrefix:"GEMINI_"`
	Storage  StorageConfig
	Auth     AuthConfig     `envPrefix:"JWT_"`
	Upload   UploadConfig   `envPrefix:"UPLOAD_"`
	Worker   WorkerConfig   `envPrefix:"WORKER_"`
}

type ServerConfig struct {
	Port      string `env:"PORT" envDefault:"3000"`
	Env       string `env:"ENV" envDefault:"development"`
	BodyLimit int    `env:"BODY_LIMIT" envDefault:"12582912"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        string `env:"PORT" envDefault:"5432"`
	User        string `env:"USER" envDefault:"postgres"`
	Password    string `env:"PASSWORD" envDefault:"postgres"`
	DBName      string `env:"NAME" envDefault:"studymate"`
	SSLMode     string `env:"SSLMODE" envDefault:"disable"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	URL     string `env:"URL" envDefault:"redis://localhost:6379/0"`
}

type QdrantConfig struct {
	Enabled    bool   `env:"ENABLED" envDefault:"false"`
	URL        string `env:"URL" envDefault:"http://localhost:6334"`
	APIKey     string `env:"API_KEY"`
	Collection string `env:"COLLECTION" envDefault:"course_chapters"`
}

type GeminiConfig struct {
	APIKey     string `env:"API_KEY"`
	Model      string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	EmbedModel string `env:"EMBED_MODEL" envDefault:"text-embedding-004"`
	MaxRetries int    `env:"MAX_RETRIES" envDefault:"3"`
}

type StorageConfig struct {
	Driver         string        `env:"STORAGE_DRIVER" envDefault:"minio"`
	Bucket         string        `env:"STORAGE_BUCKET" envDefault:"resume-files"`
	Prefix         string        `env:"STORAGE_PREFIX" envDefault:"user-uploads"`
	MaxFileSize    int64         `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	PreviewURLTTL  time.Duration `env:"PREVIEW_URL_TTL" envDefault:"1h"`
	DownloadURLTTL time.Duration `env:"DOWNLOAD_URL_TTL" envDefault:"5m"`
	MinIO          MinIOConfig   `envPrefix:"MINIO_"`
	S3             S3Config      `envPrefix:"S3_"`
}

type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"SECRET_KEY" envDefault:"minioadmin"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type S3Config struct {
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	PathStyle bool   `env:"PATH_STYLE" envDefault:"false"`
}

type AuthConfig struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
	Issuer string `env:"ISSUER"`
}

type UploadConfig struct {
	Tick    time.Duration `env:"TICK" envDefault:"400ms"`
	FlowTTL time.Duration `env:"FLOW_TTL" envDefault:"30m"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"2m"`
}

type WorkerConfig struct {
	Concurrency int `env:"CONCURRENCY" envDefault:"3"`
	QueueSize   int `env:"QUEUE_SIZE" envDefault:"100"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetDatabaseURL is the URL form of the DSN, used by the migrator.
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
