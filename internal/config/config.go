package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Backend    BackendConfig    `yaml:"backend"`
	HTTP       HTTPConfig       `yaml:"http"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportConfig     `yaml:"exports"`
	Google     GoogleConfig     `yaml:"google"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Tickets    TicketsConfig    `yaml:"tickets"`
	Chat       ChatConfig       `yaml:"chat"`
	I18n       I18nConfig       `yaml:"i18n"`
	Session    SessionConfig    `yaml:"session"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	Timezone    string `yaml:"timezone"`
}

// BackendConfig points at the FastAPI backend the console renders.
type BackendConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	EventsLimit      int           `yaml:"events_limit"`
	EventsCacheTTL   time.Duration `yaml:"events_cache_ttl"`
	ProfileCacheTTL  time.Duration `yaml:"profile_cache_ttl"`
	LoginPath        string        `yaml:"login_path"`
	AccessDeniedPath string        `yaml:"access_denied_path"`
}

type HTTPConfig struct {
	Port         int    `yaml:"port"`
	CookieSecure bool   `yaml:"cookie_secure"`
	CookieDomain string `yaml:"cookie_domain"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type DatabaseConfig struct {
	Path   string       `yaml:"path"`
	Backup BackupConfig `yaml:"backup"`
}

type BackupConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Interval      time.Duration `yaml:"interval"`
	StoragePath   string        `yaml:"storage_path"`
	RetentionDays int           `yaml:"retention_days"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type GoogleConfig struct {
	GoogleCredentialsFile string `yaml:"credentials_file"`
	TicketsSpreadSheetID  string `yaml:"tickets_spreadsheet_id"`
}

// Enabled reports whether the Sheets mirror has everything it needs.
func (g GoogleConfig) Enabled() bool {
	return g.GoogleCredentialsFile != "" && g.TicketsSpreadSheetID != ""
}

type TelegramConfig struct {
	BotToken     string  `yaml:"bot_token"`
	Debug        bool    `yaml:"debug"`
	Operators    []int64 `yaml:"operators"`
	BackendToken string  `yaml:"backend_token"`
	RateLimit    int     `yaml:"rate_limit_messages"`
	RateWindow   int     `yaml:"rate_limit_window"`
}

type TicketsConfig struct {
	PageSize int `yaml:"page_size"`
}

type ChatConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type I18nConfig struct {
	DefaultLanguage string   `yaml:"default_language"`
	Supported       []string `yaml:"supported"`
}

type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional outside of local development
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base_url %q is not an absolute URL", c.Backend.BaseURL)
	}

	if c.Tickets.PageSize <= 0 {
		return errors.New("tickets page_size must be positive")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid app timezone: %w", err)
	}

	return ValidateLanguages(c.I18n.DefaultLanguage, c.I18n.Supported)
}

func ValidateLanguages(def string, supported []string) error {
	seen := make(map[string]bool)
	for _, lang := range supported {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			return errors.New("empty language code in i18n.supported")
		}
		if seen[lang] {
			return fmt.Errorf("duplicate language code: %s", lang)
		}
		seen[lang] = true
	}
	if !seen[def] {
		return fmt.Errorf("default language %q is not in i18n.supported", def)
	}
	return nil
}

// Location returns the zone used for date buckets and naive backend timestamps.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "ems-console"
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Backend.EventsLimit == 0 {
		c.Backend.EventsLimit = models.DefaultEventsLimit
	}
	if c.Backend.EventsCacheTTL == 0 {
		c.Backend.EventsCacheTTL = 5 * time.Minute
	}
	if c.Backend.ProfileCacheTTL == 0 {
		c.Backend.ProfileCacheTTL = time.Minute
	}
	if c.Backend.LoginPath == "" {
		c.Backend.LoginPath = "/admin/login"
	}
	if c.Backend.AccessDeniedPath == "" {
		c.Backend.AccessDeniedPath = "/"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/console.db"
	}
	if c.Database.Backup.Interval == 0 {
		c.Database.Backup.Interval = 24 * time.Hour
	}
	if c.Database.Backup.StoragePath == "" {
		c.Database.Backup.StoragePath = "backups"
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Tickets.PageSize == 0 {
		c.Tickets.PageSize = models.DefaultPageSize
	}
	if c.Chat.RPS == 0 {
		c.Chat.RPS = 1
	}
	if c.Chat.Burst == 0 {
		c.Chat.Burst = 5
	}
	if c.I18n.DefaultLanguage == "" {
		c.I18n.DefaultLanguage = "en"
	}
	if len(c.I18n.Supported) == 0 {
		c.I18n.Supported = []string{"en", "si"}
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = time.Duration(models.DefaultSessionTTL) * time.Second
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "ems_session"
	}
	if c.Telegram.RateLimit == 0 {
		c.Telegram.RateLimit = models.RateLimitMessages
	}
	if c.Telegram.RateWindow == 0 {
		c.Telegram.RateWindow = models.RateLimitWindow
	}
}
