package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Blob storage backends
const (
	StorageBackendFilesystem = "filesystem"
	StorageBackendMinio      = "minio"
)

type Config struct {
	Env         Env
	Server      ServerConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Minio       MinioConfig
	Token       TokenConfig
	Auth        AuthConfig
	NATS        NATSConfig
	Maintenance MaintenanceConfig
	Log         LogConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"localhost"`
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	MaxUploadSize   int64         `envconfig:"SERVER_MAX_UPLOAD_SIZE" default:"33554432"` // 32MB
	RequestTimeout  time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
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

// DSN renders the key/value connection string lib/pq expects
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

// URL renders the connection URL golang-migrate expects
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// StorageConfig selects where blobs live. Dir replaces the plugin's files directory.
type StorageConfig struct {
	Backend string `envconfig:"STORAGE_BACKEND" default:"filesystem"`
	Dir     string `envconfig:"STORAGE_DIR" default:"./files"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"filepress"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// TokenConfig drives the download token broker.
type TokenConfig struct {
	TTL       time.Duration `envconfig:"TOKEN_TTL" default:"10s"`
	SaltMax   int64         `envconfig:"TOKEN_SALT_MAX" default:"100000"`
	CachePath string        `envconfig:"TOKEN_CACHE_PATH" default:""` // empty means in-memory
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"AUTH_JWT_SECRET"`
	JWKSURL   string        `envconfig:"AUTH_JWKS_URL"`
	Issuer    string        `envconfig:"AUTH_ISSUER"`
	Leeway    time.Duration `envconfig:"AUTH_LEEWAY" default:"5s"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"FILEPRESS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"filepress.files"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"filepress-audit"`
}

type MaintenanceConfig struct {
	Every          time.Duration `envconfig:"MAINTENANCE_EVERY" default:"1h"`
	TrashRetention time.Duration `envconfig:"MAINTENANCE_TRASH_RETENTION" default:"720h"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// AuditConfig is the subset read by the audit consumer
type AuditConfig struct {
	Env  Env
	NATS NATSConfig
	Log  LogConfig
}

// Load reads an optional .env file then the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := process(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAudit reads the audit consumer configuration
func LoadAudit() (*AuditConfig, error) {
	var cfg AuditConfig
	if err := process(&cfg); err != nil {
		return nil, err
	}

	if cfg.NATS.URL == "" {
		return nil, errors.New("NATS_URL is required")
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func process(cfg any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	return envconfig.Process("", cfg)
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageBackendFilesystem:
		if c.Storage.Dir == "" {
			return errors.New("STORAGE_DIR is required for the filesystem backend")
		}
	case StorageBackendMinio:
		if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Token.TTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Token.SaltMax <= 0 {
		return errors.New("TOKEN_SALT_MAX must be positive")
	}
	if c.Token.SaltMax >= math.MaxInt64 {
		return fmt.Errorf("TOKEN_SALT_MAX must be below %d", int64(math.MaxInt64))
	}
	if c.Maintenance.Every <= 0 {
		return errors.New("MAINTENANCE_EVERY must be positive")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
		return errors.New("one of AUTH_JWT_SECRET or AUTH_JWKS_URL is required")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the process logger from LogConfig.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
}
