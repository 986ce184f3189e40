package config

import (
	"doc-intake/internal/core/domain"
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the document API configuration
type Config struct {
	Env      Env
	Server   ServerConfig
	Minio    MinioConfig
	Document DocumentConfig
	Activity ActivityConfig
	NATS     NATSConfig
	Database DatabaseConfig
}

// IntakeAppConfig is the intake client configuration
type IntakeAppConfig struct {
	Env    Env
	Intake IntakeConfig
	NATS   NATSConfig
}

// ActivityAppConfig is the activity worker configuration
type ActivityAppConfig struct {
	Env      Env
	NATS     NATSConfig
	Database DatabaseConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8000"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"sih"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	PartSize   uint64 `envconfig:"MINIO_PART_SIZE" default:"10485760"` // 10MB
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type DocumentConfig struct {
	MaxUploadSize int64 `envconfig:"DOCUMENT_MAX_UPLOAD_SIZE" default:"10485760"` // 10MB
}

type ActivityConfig struct {
	Retention   time.Duration `envconfig:"ACTIVITY_RETENTION" default:"720h"`
	PruneEvery  time.Duration `envconfig:"ACTIVITY_PRUNE_EVERY" default:"1h"`
	RecentLimit int           `envconfig:"ACTIVITY_RECENT_LIMIT" default:"20"`
}

type IntakeConfig struct {
	UploadURL      string        `envconfig:"INTAKE_UPLOAD_URL" default:"http://localhost:8000/upload/"`
	RequestTimeout time.Duration `envconfig:"INTAKE_REQUEST_TIMEOUT" default:"60s"`
	MaxSizeBytes   int64         `envconfig:"INTAKE_MAX_SIZE_BYTES" default:"10485760"` // 10MB
	AllowMultiple  bool          `envconfig:"INTAKE_ALLOW_MULTIPLE" default:"true"`
	// AcceptedTypes overrides the default table, ex: "application/pdf:.pdf,image/jpeg:.jpg .jpeg"
	AcceptedTypes map[string]string `envconfig:"INTAKE_ACCEPTED_TYPES"`
	RecentLimit   int               `envconfig:"INTAKE_RECENT_LIMIT" default:"10"`
}

// NATSConfig is optional for the intake client, it is enabled when URL is set
type NATSConfig struct {
	URL          string `envconfig:"NATS_URL"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"DOCUMENTS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"documents.events"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"activity"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// Enabled reports whether a broker is configured
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

// Rule builds the acceptance rule of the intake
func (c IntakeConfig) Rule() domain.AcceptanceRule {
	rule := domain.DefaultAcceptanceRule()
	rule.MaxSizeBytes = c.MaxSizeBytes
	rule.AllowMultiple = c.AllowMultiple
	if len(c.AcceptedTypes) > 0 {
		rule.AcceptedTypes = make(map[string][]string, len(c.AcceptedTypes))
		for mediaType, exts := range c.AcceptedTypes {
			rule.AcceptedTypes[strings.ToLower(strings.TrimSpace(mediaType))] = strings.Fields(exts)
		}
	}
	return rule
}

// Process fills any struct made of the config sections from the environment
func Process(cfg any) error {
	return envconfig.Process("", cfg)
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Activity.PruneEvery <= 0 {
		return nil, errors.New("ACTIVITY_PRUNE_EVERY must be positive")
	}

	return &cfg, nil
}

func LoadIntake() (*IntakeAppConfig, error) {
	var cfg IntakeAppConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Intake.MaxSizeBytes <= 0 {
		return nil, errors.New("INTAKE_MAX_SIZE_BYTES must be positive")
	}

	return &cfg, nil
}

func LoadActivity() (*ActivityAppConfig, error) {
	var cfg ActivityAppConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if !cfg.NATS.Enabled() {
		return nil, errors.New("NATS_URL is required")
	}

	return &cfg, nil
}
