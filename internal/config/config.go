package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const EnvPrefix = "PORTFOLIO"

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type Config struct {
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	ContentDir      string        `mapstructure:"content_dir"`
	ImagesDir       string        `mapstructure:"images_dir"`
	Watch           bool          `mapstructure:"watch"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Metrics         Metrics       `mapstructure:"metrics"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("base_path", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("images_dir", "./images")
	v.SetDefault("watch", false)
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads configuration from defaults, the config file and the
// environment, in increasing priority. An empty path searches the working
// directory and $XDG_CONFIG_HOME/portfolio for config.yaml; a missing file is
// only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "portfolio"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosting platforms set.
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding port env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	c.BasePath = strings.TrimRight(c.BasePath, "/")
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown mode %q (valid: debug, release, test)", c.Mode)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q (valid: json, text)", c.LogFormat)
	}
	if c.Metrics.Path == "" || !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path %q must start with /", c.Metrics.Path)
	}
	if c.Metrics.Path != "/" {
		c.Metrics.Path = strings.TrimRight(c.Metrics.Path, "/")
	}
	if c.Metrics.Enabled {
		if err := c.checkMetricsPath(); err != nil {
			return err
		}
	}
	if c.Watch && c.ContentDir == "" {
		return errors.New("watch requires content_dir")
	}
	return nil
}

// checkMetricsPath rejects metrics paths that would land on a route the web
// server always mounts. Metrics live at the root, everything else under
// base_path.
func (c *Config) checkMetricsPath() error {
	p := c.Metrics.Path
	exact := []string{"/healthz", c.BasePath + "/"}
	if c.BasePath != "" {
		exact = append(exact, c.BasePath)
	}
	subtrees := []string{"/blog", "/partials", "/static", "/images"}

	collides := slices.Contains(exact, p)
	for _, root := range subtrees {
		root = c.BasePath + root
		if p == root || strings.HasPrefix(p, root+"/") {
			collides = true
		}
	}
	if collides {
		return fmt.Errorf("metrics path %q collides with a site route", p)
	}
	return nil
}
