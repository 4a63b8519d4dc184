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

// Mirror backends.
const (
	MirrorFilesystem = "filesystem"
	MirrorRedis      = "redis"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Config struct {
	Env string

	API    APIConfig
	Mirror MirrorConfig
	Redis  RedisConfig
	Log    LogConfig
	UI     UIConfig
	Export ExportConfig
}

// APIConfig points the gateway at the backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MirrorConfig selects and locates the local mirror store backend.
type MirrorConfig struct {
	Backend string
	Dir     string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// UIConfig holds the per-screen view defaults.
type UIConfig struct {
	PageSize int
	Theme    string
}

// ExportConfig locates report export output.
type ExportConfig struct {
	Dir string
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
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 10*time.Second),
	}

	cfg.Mirror = MirrorConfig{
		Backend: v.GetString("MIRROR_BACKEND"),
		Dir:     v.GetString("MIRROR_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.UI = UIConfig{
		PageSize: v.GetInt("PAGE_SIZE"),
		Theme:    v.GetString("THEME"),
	}
	if cfg.UI.PageSize < 1 {
		cfg.UI.PageSize = 5
	}
	if cfg.UI.Theme != ThemeDark {
		cfg.UI.Theme = ThemeLight
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8070/api")
	v.SetDefault("API_TIMEOUT", "10s")

	v.SetDefault("MIRROR_BACKEND", MirrorFilesystem)
	v.SetDefault("MIRROR_DIR", "./.mirror")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("PAGE_SIZE", 5)
	v.SetDefault("THEME", ThemeLight)

	v.SetDefault("EXPORT_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
