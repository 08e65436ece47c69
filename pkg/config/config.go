// Package config holds runtime settings for the catalog server and the terminal browser.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/paging"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const maxDebounce = 10 * time.Second

type Config struct {
	CatalogUrl     string `yaml:"catalog_url"`
	ListenAddress  string `yaml:"listen_address"`
	DebugAddress   string `yaml:"debug_address"`
	PageSize       int    `yaml:"page_size"`
	DebounceMs     int    `yaml:"debounce_ms"`
	FetchTimeoutMs int    `yaml:"fetch_timeout_ms"`
	Locale         string `yaml:"locale"`
	RabbitUrl      string `yaml:"rabbit_url"`
	LogLevel       string `yaml:"log_level"`
	NodeName       string `yaml:"node_name"`
}

func DefaultConfig() *Config {
	return &Config{
		CatalogUrl:    catalog.DefaultCatalogUrl,
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		PageSize:      paging.DefaultPageSize,
		DebounceMs:    int(common.DefaultDebounce / time.Millisecond),
		Locale:        "en",
		LogLevel:      "info",
	}
}

// LoadDotEnv loads .env style files into the environment. Missing files are skipped
// and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file and applies environment overrides.
// A missing file or an empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(name string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}
	setInt := func(name string, target *int) error {
		v := os.Getenv(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", name, err)
		}
		*target = n
		return nil
	}

	setString("CATALOG_URL", &c.CatalogUrl)
	setString("LISTEN_ADDRESS", &c.ListenAddress)
	setString("DEBUG_ADDRESS", &c.DebugAddress)
	setString("LOCALE", &c.Locale)
	setString("RABBIT_URL", &c.RabbitUrl)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("NODE_NAME", &c.NodeName)

	return errors.Join(
		setInt("PAGE_SIZE", &c.PageSize),
		setInt("DEBOUNCE_MS", &c.DebounceMs),
		setInt("FETCH_TIMEOUT_MS", &c.FetchTimeoutMs),
	)
}

func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.CatalogUrl); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("catalog_url must be an absolute url, got %q", c.CatalogUrl))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page_size must be >= 1"))
	}
	if c.DebounceMs < 0 || c.Debounce() > maxDebounce {
		errs = append(errs, fmt.Errorf("debounce_ms must be between 0 and %d", maxDebounce.Milliseconds()))
	}
	if c.FetchTimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("fetch_timeout_ms must be >= 0"))
	}
	if _, err := language.Parse(c.Locale); c.Locale != "" && err != nil {
		errs = append(errs, fmt.Errorf("locale must be a BCP 47 tag: %w", err))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level must be a zap level: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// FetchTimeout is zero when the catalog request has no deadline of its own.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// Country is the lower case region of the locale, attached to tracking events.
func (c *Config) Country() string {
	region, _ := language.Make(c.Locale).Region()
	return strings.ToLower(region.String())
}

func (c *Config) HasRabbit() bool {
	return c.RabbitUrl != ""
}
