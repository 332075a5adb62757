package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	HTTP    HTTPConfig
	Scraper ScraperConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Output  OutputConfig
	Log     LogConfig
}

// HTTPConfig contains upstream client settings
type HTTPConfig struct {
	APIBaseURL     string
	HTMLBaseURL    string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
	BackoffBase    time.Duration
	RequestsPerSec int
}

// ScraperConfig contains batch scraping settings
type ScraperConfig struct {
	Workers int
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	URL string
}

// CacheConfig contains payload caching behavior settings
type CacheConfig struct {
	Enabled bool
	Version string
	Env     string
	TTLs    CacheTTLConfig
}

// CacheTTLConfig defines TTL durations for payload families (in seconds)
type CacheTTLConfig struct {
	Feed   int // gamecenter and landing JSON
	Report int // RO/PL/TH/TV HTML reports
	League int // schedule and standings JSON
}

// OutputConfig contains CSV export settings
type OutputConfig struct {
	Dir string
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string
}

var globalConfig *Config

// Load reads configuration from the specified file or environment variables.
// If configPath is empty, it defaults to "conf.toml" in the current directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("conf")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hockey")
		v.AddConfigPath("/etc/hockey")
	}

	v.SetDefault("http.api_base_url", "https://api-web.nhle.com/v1")
	v.SetDefault("http.html_base_url", "https://www.nhl.com/scores/htmlreports")
	v.SetDefault("http.connect_timeout", 3)
	v.SetDefault("http.read_timeout", 10)
	v.SetDefault("http.max_retries", 7)
	v.SetDefault("http.backoff_base", 2)
	v.SetDefault("http.requests_per_sec", 5)

	v.SetDefault("scraper.workers", 4)

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.version", "v1")
	v.SetDefault("cache.env", "dev")
	v.SetDefault("cache.ttls.feed", 900)
	v.SetDefault("cache.ttls.report", 86400)
	v.SetDefault("cache.ttls.league", 3600)

	v.SetDefault("output.dir", "data")
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()
	v.BindEnv("redis.url", "REDIS_URL")
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("cache.version", "CACHE_VERSION")
	v.BindEnv("scraper.workers", "SCRAPER_WORKERS")
	v.BindEnv("output.dir", "OUTPUT_DIR")
	v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		fmt.Fprintf(os.Stderr, "No config file found, using defaults and environment variables\n")
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			APIBaseURL:     v.GetString("http.api_base_url"),
			HTMLBaseURL:    v.GetString("http.html_base_url"),
			ConnectTimeout: time.Duration(v.GetInt("http.connect_timeout")) * time.Second,
			ReadTimeout:    time.Duration(v.GetInt("http.read_timeout")) * time.Second,
			MaxRetries:     v.GetInt("http.max_retries"),
			BackoffBase:    time.Duration(v.GetInt("http.backoff_base")) * time.Second,
			RequestsPerSec: v.GetInt("http.requests_per_sec"),
		},
		Scraper: ScraperConfig{
			Workers: v.GetInt("scraper.workers"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Version: v.GetString("cache.version"),
			Env:     v.GetString("cache.env"),
			TTLs: CacheTTLConfig{
				Feed:   v.GetInt("cache.ttls.feed"),
				Report: v.GetInt("cache.ttls.report"),
				League: v.GetInt("cache.ttls.league"),
			},
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded; call config.Load() first")
	}
	return globalConfig
}

// MustLoad loads configuration or panics
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
