package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API     APIConfig
	Console ConsoleConfig
	Upload  UploadConfig
	Log     LogConfig
	MockAPI MockAPIConfig
}

// APIConfig points the console at the platform's admin REST API.
// Either a ready token or a credential pair must be supplied; with
// both present the token wins.
type APIConfig struct {
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Token        string
	Email        string
	Password     string
}

// ConsoleConfig tunes list-view behaviour.
type ConsoleConfig struct {
	PageSize       int
	SearchDebounce time.Duration
	BannerTimeout  time.Duration
	ExportDir      string
}

// UploadConfig bounds client-side file checks before an upload is
// attempted. Images and videos carry separate limits.
type UploadConfig struct {
	MaxImageBytes int64
	MaxVideoBytes int64
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// MockAPIConfig configures the local development fixture server.
type MockAPIConfig struct {
	Port           int
	AllowedOrigins []string
	Seed           int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL:      strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		ReadTimeout:  v.GetDuration("API_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("API_WRITE_TIMEOUT"),
		Token:        v.GetString("API_TOKEN"),
		Email:        v.GetString("API_EMAIL"),
		Password:     v.GetString("API_PASSWORD"),
	}

	cfg.Console = ConsoleConfig{
		PageSize:       v.GetInt("CONSOLE_PAGE_SIZE"),
		SearchDebounce: v.GetDuration("CONSOLE_SEARCH_DEBOUNCE"),
		BannerTimeout:  v.GetDuration("CONSOLE_BANNER_TIMEOUT"),
		ExportDir:      v.GetString("CONSOLE_EXPORT_DIR"),
	}

	cfg.Upload = UploadConfig{
		MaxImageBytes: v.GetInt64("UPLOAD_MAX_IMAGE_BYTES"),
		MaxVideoBytes: v.GetInt64("UPLOAD_MAX_VIDEO_BYTES"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
		File:   v.GetString("LOG_FILE"),
	}

	cfg.MockAPI = MockAPIConfig{
		Port:           v.GetInt("MOCKAPI_PORT"),
		AllowedOrigins: v.GetStringSlice("MOCKAPI_ALLOWED_ORIGINS"),
		Seed:           v.GetInt64("MOCKAPI_SEED"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_READ_TIMEOUT", "10s")
	v.SetDefault("API_WRITE_TIMEOUT", "30s")

	v.SetDefault("CONSOLE_PAGE_SIZE", 10)
	v.SetDefault("CONSOLE_SEARCH_DEBOUNCE", "500ms")
	v.SetDefault("CONSOLE_BANNER_TIMEOUT", "3s")
	v.SetDefault("CONSOLE_EXPORT_DIR", ".")

	// Images cap at 5MB, videos at 10MB.
	v.SetDefault("UPLOAD_MAX_IMAGE_BYTES", int64(5<<20))
	v.SetDefault("UPLOAD_MAX_VIDEO_BYTES", int64(10<<20))

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "admin-console.log")

	v.SetDefault("MOCKAPI_PORT", 8080)
	v.SetDefault("MOCKAPI_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("MOCKAPI_SEED", int64(42))
}
