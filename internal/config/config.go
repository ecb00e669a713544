package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Image   ImageConfig
	Log     LogConfig
	CORS    CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// StorageConfig holds settings for the S3-compatible object store.
// Endpoint is a bare host[:port]; the scheme comes from UseSSL.
type StorageConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	AccessKey      string        `mapstructure:"access_key"`
	SecretKey      string        `mapstructure:"secret_key"`
	Bucket         string        `mapstructure:"bucket"`
	UseSSL         bool          `mapstructure:"use_ssl"`
	Region         string        `mapstructure:"region"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Scheme returns "https" when TLS is enabled, "http" otherwise.
func (s *StorageConfig) Scheme() string {
	if s.UseSSL {
		return "https"
	}
	return "http"
}

// EndpointURL returns the endpoint with its scheme, or "" when no endpoint is set.
func (s *StorageConfig) EndpointURL() string {
	if s.Endpoint == "" {
		return ""
	}
	return s.Scheme() + "://" + s.Endpoint
}

// ImageConfig holds image pipeline settings.
type ImageConfig struct {
	DisplayLongSide   int           `mapstructure:"display_long_side"`
	ThumbnailLongSide int           `mapstructure:"thumbnail_long_side"`
	JPEGQuality       int           `mapstructure:"jpeg_quality"`
	MaxUploadMB       int64         `mapstructure:"max_upload_mb"`
	Workers           int           `mapstructure:"workers"`
	QueueTimeout      time.Duration `mapstructure:"queue_timeout"`
	CacheSize         int           `mapstructure:"cache_size"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (i *ImageConfig) MaxUploadBytes() int64 {
	return i.MaxUploadMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BLOG_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "blog")
	v.SetDefault("db.password", "blog_secret")
	v.SetDefault("db.name", "blog_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "blogmedia")

	// Storage defaults
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "blog-images")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.request_timeout", "30s")

	// Image pipeline defaults
	v.SetDefault("image.display_long_side", 1000)
	v.SetDefault("image.thumbnail_long_side", 300)
	v.SetDefault("image.jpeg_quality", 75)
	v.SetDefault("image.max_upload_mb", 20)
	v.SetDefault("image.workers", runtime.NumCPU())
	v.SetDefault("image.queue_timeout", "30s")
	v.SetDefault("image.cache_size", 512)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys. Storage keys also
	// accept the MINIO_* names used by existing deployments.
	envBindings := map[string][]string{
		"server.port":                {"BLOG_SERVER_PORT"},
		"server.read_timeout":        {"BLOG_SERVER_READ_TIMEOUT"},
		"server.write_timeout":       {"BLOG_SERVER_WRITE_TIMEOUT"},
		"server.environment":         {"BLOG_SERVER_ENVIRONMENT"},
		"db.host":                    {"BLOG_DB_HOST"},
		"db.port":                    {"BLOG_DB_PORT"},
		"db.user":                    {"BLOG_DB_USER"},
		"db.password":                {"BLOG_DB_PASSWORD"},
		"db.name":                    {"BLOG_DB_NAME"},
		"db.sslmode":                 {"BLOG_DB_SSLMODE"},
		"db.max_open":                {"BLOG_DB_MAX_OPEN"},
		"db.max_idle":                {"BLOG_DB_MAX_IDLE"},
		"jwt.secret":                 {"BLOG_JWT_SECRET"},
		"jwt.access_expiry":          {"BLOG_JWT_ACCESS_EXPIRY"},
		"jwt.refresh_expiry":         {"BLOG_JWT_REFRESH_EXPIRY"},
		"jwt.issuer":                 {"BLOG_JWT_ISSUER"},
		"storage.endpoint":           {"BLOG_STORAGE_ENDPOINT", "MINIO_ENDPOINT"},
		"storage.access_key":         {"BLOG_STORAGE_ACCESS_KEY", "MINIO_ACCESS_KEY"},
		"storage.secret_key":         {"BLOG_STORAGE_SECRET_KEY", "MINIO_SECRET_KEY"},
		"storage.bucket":             {"BLOG_STORAGE_BUCKET", "MINIO_BUCKET_NAME"},
		"storage.use_ssl":            {"BLOG_STORAGE_USE_SSL", "MINIO_USE_SSL"},
		"storage.region":             {"BLOG_STORAGE_REGION"},
		"storage.request_timeout":    {"BLOG_STORAGE_REQUEST_TIMEOUT"},
		"image.display_long_side":    {"BLOG_IMAGE_DISPLAY_LONG_SIDE"},
		"image.thumbnail_long_side":  {"BLOG_IMAGE_THUMBNAIL_LONG_SIDE"},
		"image.jpeg_quality":         {"BLOG_IMAGE_JPEG_QUALITY"},
		"image.max_upload_mb":        {"BLOG_IMAGE_MAX_UPLOAD_MB"},
		"image.workers":              {"BLOG_IMAGE_WORKERS"},
		"image.queue_timeout":        {"BLOG_IMAGE_QUEUE_TIMEOUT"},
		"image.cache_size":           {"BLOG_IMAGE_CACHE_SIZE"},
		"log.level":                  {"BLOG_LOG_LEVEL"},
		"log.format":                 {"BLOG_LOG_FORMAT"},
		"cors.allowed_origins":       {"BLOG_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// PaaS platforms set PORT. Use it if BLOG_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BLOG_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Endpoint:       strings.TrimSuffix(v.GetString("storage.endpoint"), "/"),
		AccessKey:      v.GetString("storage.access_key"),
		SecretKey:      v.GetString("storage.secret_key"),
		Bucket:         v.GetString("storage.bucket"),
		UseSSL:         v.GetBool("storage.use_ssl"),
		Region:         v.GetString("storage.region"),
		RequestTimeout: v.GetDuration("storage.request_timeout"),
	}
	cfg.Image = ImageConfig{
		DisplayLongSide:   v.GetInt("image.display_long_side"),
		ThumbnailLongSide: v.GetInt("image.thumbnail_long_side"),
		JPEGQuality:       v.GetInt("image.jpeg_quality"),
		MaxUploadMB:       v.GetInt64("image.max_upload_mb"),
		Workers:           v.GetInt("image.workers"),
		QueueTimeout:      v.GetDuration("image.queue_timeout"),
		CacheSize:         v.GetInt("image.cache_size"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket is required"))
	}
	if c.Storage.RequestTimeout <= 0 {
		errs = append(errs, errors.New("storage.request_timeout must be positive"))
	}
	if c.Image.DisplayLongSide <= 0 || c.Image.ThumbnailLongSide <= 0 {
		errs = append(errs, errors.New("image long sides must be positive"))
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("image.jpeg_quality must be within 1..100, got %d", c.Image.JPEGQuality))
	}
	if c.Image.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("image.max_upload_mb must be positive"))
	}
	if c.Image.Workers <= 0 {
		errs = append(errs, errors.New("image.workers must be positive"))
	}
	if c.Image.CacheSize <= 0 {
		errs = append(errs, errors.New("image.cache_size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
