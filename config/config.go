package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"hotel-booking/utils"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type DatabaseConfig struct {
	// URL takes precedence over the individual fields. Accepts a
	// mysql:// URL or a raw go-sql-driver DSN.
	URL  string `yaml:"url"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Name string `yaml:"name"`
	Seed bool   `yaml:"seed"`
	// Debug logs every statement instead of only slow ones.
	Debug bool `yaml:"debug"`
}

type Config struct {
	Port          string         `yaml:"port"`
	MetricsPort   string         `yaml:"metrics_port"`
	Storage       string         `yaml:"storage"`
	Database      DatabaseConfig `yaml:"database"`
	CorsOrigins   []string       `yaml:"cors_origins"`
	MaxStayNights int            `yaml:"max_stay_nights"`
	Timezone      string         `yaml:"timezone"`
	LogLevel      string         `yaml:"log_level"`
	GinMode       string         `yaml:"gin_mode"`

	location *time.Location
}

func Default() *Config {
	return &Config{
		Port:        "8080",
		MetricsPort: "9090",
		Storage:     StorageMySQL,
		Database: DatabaseConfig{
			User: "root",
			Host: "127.0.0.1",
			Port: "3306",
			Name: "hotel_db",
			Seed: true,
		},
		MaxStayNights: 90,
		Timezone:      "Local",
		LogLevel:      "info",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// HOTEL_CONFIG_FILE, then environment variables (a .env file is read
// first when present; a missing one is fine, an unreadable one is not).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if path := utils.EnvOrDefault("HOTEL_CONFIG_FILE", ""); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = utils.EnvOrDefault("PORT", c.Port)
	c.MetricsPort = utils.EnvOrDefault("METRICS_PORT", c.MetricsPort)
	c.Storage = strings.ToLower(utils.EnvOrDefault("STORAGE_DRIVER", c.Storage))
	c.Timezone = utils.EnvOrDefault("TIMEZONE", c.Timezone)
	c.LogLevel = utils.EnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.GinMode = utils.EnvOrDefault("GIN_MODE", c.GinMode)

	c.Database.URL = utils.EnvOrDefault("MYSQL_URL", utils.EnvOrDefault("DATABASE_URL", c.Database.URL))
	c.Database.User = utils.EnvOrDefault("DB_USER", c.Database.User)
	c.Database.Pass = utils.EnvOrDefault("DB_PASS", c.Database.Pass)
	c.Database.Host = utils.EnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = utils.EnvOrDefault("DB_PORT", c.Database.Port)
	c.Database.Name = utils.EnvOrDefault("DB_NAME", c.Database.Name)

	if raw := utils.EnvOrDefault("CORS_ORIGINS", ""); raw != "" {
		c.CorsOrigins = splitList(raw)
	}
	if raw := utils.EnvOrDefault("DB_SEED", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: DB_SEED: %w", err)
		}
		c.Database.Seed = v
	}
	if raw := utils.EnvOrDefault("DB_DEBUG", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: DB_DEBUG: %w", err)
		}
		c.Database.Debug = v
	}
	if raw := utils.EnvOrDefault("MAX_STAY_NIGHTS", ""); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: MAX_STAY_NIGHTS: %w", err)
		}
		c.MaxStayNights = v
	}
	return nil
}

// Verify filters out evident errors and resolves the timezone.
func (c *Config) Verify() error {
	switch c.Storage {
	case StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage)
	}
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	if c.MaxStayNights <= 0 {
		return fmt.Errorf("config: max stay must be positive, got %d", c.MaxStayNights)
	}
	if c.Storage == StorageMySQL && c.Database.URL == "" && c.Database.Name == "" {
		return fmt.Errorf("config: database name is required")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location is the timezone that decides what "today" is for bookings.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Origins returns the allowed CORS origins, "*" when none are set.
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(c.CorsOrigins))
	for _, o := range c.CorsOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
