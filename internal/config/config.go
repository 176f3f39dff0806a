package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `json:"server" yaml:"server"`
	Database    DatabaseConfig    `json:"database" yaml:"database"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging"`
	Redis       RedisConfig       `json:"redis" yaml:"redis"`
	Release     ReleaseConfig     `json:"release" yaml:"release"`
	Language    LanguageConfig    `json:"language" yaml:"language"`
	Avatar      AvatarConfig      `json:"avatar" yaml:"avatar"`
	Comprofiler ComprofilerConfig `json:"comprofiler" yaml:"comprofiler"`
}

type ServerConfig struct {
	BindAddr string `json:"bindAddr" yaml:"bindAddr"`
}

type DatabaseConfig struct {
	Driver   string `json:"driver" yaml:"driver"` // postgres | pgx | sqlite
	DSN      string `json:"dsn" yaml:"dsn"`       // overrides the fields below when set
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbname" yaml:"dbname"`
	SSLMode  string `json:"sslmode" yaml:"sslmode"`
	Prefix   string `json:"prefix" yaml:"prefix"` // CMS table prefix, e.g. "jos_"
}

// GetDSN returns the data source name for the configured driver.
func (c *DatabaseConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == "sqlite" {
		return c.DBName
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	TTL      string `json:"ttl" yaml:"ttl"` // e.g. "10m"
}

// ReleaseConfig describes the running forum build.
type ReleaseConfig struct {
	Version        string `json:"version" yaml:"version"`
	Date           string `json:"date" yaml:"date"`
	Name           string `json:"name" yaml:"name"`
	CopyrightYears string `json:"copyrightYears" yaml:"copyrightYears"`
}

type LanguageConfig struct {
	Tag  string `json:"tag" yaml:"tag"`
	File string `json:"file" yaml:"file"` // empty means the embedded en-GB strings
}

type AvatarConfig struct {
	Backend           string `json:"backend" yaml:"backend"` // comprofiler | none
	TemplatePath      string `json:"templatePath" yaml:"templatePath"`
	ThumbnailMaxWidth int    `json:"thumbnailMaxWidth" yaml:"thumbnailMaxWidth"`
	DefaultSize       int    `json:"defaultSize" yaml:"defaultSize"`
}

type ComprofilerConfig struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
	Timeout string `json:"timeout" yaml:"timeout"`
	Token   string `json:"token" yaml:"token"`
}

// Load builds the configuration from environment defaults, then overlays the
// optional file at configFile.
func Load(configFile string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			BindAddr: getEnv("SERVER_BIND_ADDR", "0.0.0.0:8080"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "joomla"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Prefix:   getEnv("DB_PREFIX", "jos_"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnv("REDIS_TTL", "10m"),
		},
		Release: ReleaseConfig{
			Version:        getEnv("FORUM_VERSION", "6.0.0-DEV"),
			Date:           getEnv("FORUM_VERSION_DATE", "2022-01-01"),
			Name:           getEnv("FORUM_VERSION_NAME", "Git Repository"),
			CopyrightYears: getEnv("FORUM_COPYRIGHT_YEARS", "2008 - 2020"),
		},
		Language: LanguageConfig{
			Tag:  getEnv("LANGUAGE_TAG", "en-GB"),
			File: getEnv("LANGUAGE_FILE", ""),
		},
		Avatar: AvatarConfig{
			Backend:           getEnv("AVATAR_BACKEND", "comprofiler"),
			TemplatePath:      getEnv("AVATAR_TEMPLATE_PATH", "components/com_comprofiler/plugin/templates/default/"),
			ThumbnailMaxWidth: getEnvInt("AVATAR_THUMBNAIL_MAX_WIDTH", 144),
			DefaultSize:       getEnvInt("AVATAR_DEFAULT_SIZE", 144),
		},
		Comprofiler: ComprofilerConfig{
			BaseURL: getEnv("COMPROFILER_BASE_URL", "http://localhost:8090/api/v1"),
			Timeout: getEnv("COMPROFILER_TIMEOUT", "5s"),
			Token:   getEnv("COMPROFILER_TOKEN", ""),
		},
	}

	if configFile != "" {
		if err := loadFromFile(cfg, configFile); err != nil {
			log.Error().Err(err).Str("file", configFile).Msg("failed to load config file")
			return nil, err
		}
	}

	// fill reasonable defaults when fields omitted in file
	if cfg.Server.BindAddr == "" {
		cfg.Server.BindAddr = "0.0.0.0:8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Redis.TTL == "" {
		cfg.Redis.TTL = "10m"
	}
	if cfg.Language.Tag == "" {
		cfg.Language.Tag = "en-GB"
	}
	if cfg.Release.CopyrightYears == "" {
		cfg.Release.CopyrightYears = "2008 - 2020"
	}
	if cfg.Avatar.Backend == "" {
		cfg.Avatar.Backend = "comprofiler"
	}
	if cfg.Avatar.ThumbnailMaxWidth == 0 {
		cfg.Avatar.ThumbnailMaxWidth = 144
	}
	if cfg.Avatar.DefaultSize == 0 {
		cfg.Avatar.DefaultSize = 144
	}
	if cfg.Avatar.TemplatePath != "" && !strings.HasSuffix(cfg.Avatar.TemplatePath, "/") {
		cfg.Avatar.TemplatePath += "/"
	}
	if cfg.Comprofiler.Timeout == "" {
		cfg.Comprofiler.Timeout = "5s"
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
