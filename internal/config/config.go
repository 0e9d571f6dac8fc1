// Package config loads the server configuration from defaults, an optional
// YAML file, HOTELSITE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-hotelsite/pkg/theming"
)

// EnvPrefix is prepended to every environment override, with dots replaced
// by underscores: HOTELSITE_LOG_LEVEL, HOTELSITE_RATELIMIT_RPS.
const EnvPrefix = "HOTELSITE"

// Config holds the server settings.
type Config struct {
	Addr      string          `mapstructure:"addr"`
	PublicURL string          `mapstructure:"public_url"`
	Grace     time.Duration   `mapstructure:"grace"`
	Log       LogConfig       `mapstructure:"log"`
	Content   ContentConfig   `mapstructure:"content"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Toast     ToastConfig     `mapstructure:"toast"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ContentConfig points at an on-disk content directory. Empty means the
// embedded content.
type ContentConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// TemplatesConfig points at an on-disk template directory. Empty means the
// embedded templates.
type TemplatesConfig struct {
	Dir    string `mapstructure:"dir"`
	Reload bool   `mapstructure:"reload"`
}

// ThemeConfig holds theme defaults.
type ThemeConfig struct {
	DefaultVariant string `mapstructure:"default_variant"`
}

// ToastConfig holds notification defaults.
type ToastConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// SessionConfig holds session settings.
type SessionConfig struct {
	Cookie  string        `mapstructure:"cookie"`
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
	Secure  bool          `mapstructure:"secure"`
}

// RateLimitConfig bounds form submissions per session.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:  ":8080",
		Grace: 10 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Theme: ThemeConfig{
			DefaultVariant: theming.Light,
		},
		Toast: ToastConfig{
			Duration: 5 * time.Second,
		},
		Session: SessionConfig{
			Cookie:  "hotelsite_session",
			IdleTTL: 30 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RPS:   0.5,
			Burst: 5,
		},
	}
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"addr":          "addr",
	"public-url":    "public_url",
	"grace":         "grace",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"content-dir":   "content.dir",
	"watch":         "content.watch",
	"templates-dir": "templates.dir",
	"reload":        "templates.reload",
	"theme":         "theme.default_variant",
}

// RegisterFlags declares the serve flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("addr", d.Addr, "Listen address")
	fs.String("public-url", "", "Absolute site URL used for canonical links; none when empty")
	fs.Duration("grace", d.Grace, "Graceful shutdown timeout")
	fs.String("log-level", d.Log.Level, "Log level (debug, info, warn, error)")
	fs.String("log-format", d.Log.Format, "Log format (text, json)")
	fs.String("content-dir", "", "Directory holding site.yaml; embedded content when empty")
	fs.Bool("watch", false, "Reload content when site.yaml changes")
	fs.String("templates-dir", "", "Directory holding page templates; embedded templates when empty")
	fs.Bool("reload", false, "Re-read templates on every render")
	fs.String("theme", d.Theme.DefaultVariant, "Default theme variant (light, dark)")
}

// Load resolves the configuration. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("addr", d.Addr)
	v.SetDefault("public_url", d.PublicURL)
	v.SetDefault("grace", d.Grace)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("content.dir", d.Content.Dir)
	v.SetDefault("content.watch", d.Content.Watch)
	v.SetDefault("templates.dir", d.Templates.Dir)
	v.SetDefault("templates.reload", d.Templates.Reload)
	v.SetDefault("theme.default_variant", d.Theme.DefaultVariant)
	v.SetDefault("toast.duration", d.Toast.Duration)
	v.SetDefault("session.cookie", d.Session.Cookie)
	v.SetDefault("session.idle_ttl", d.Session.IdleTTL)
	v.SetDefault("session.secure", d.Session.Secure)
	v.SetDefault("ratelimit.rps", d.RateLimit.RPS)
	v.SetDefault("ratelimit.burst", d.RateLimit.Burst)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.PublicURL != "" {
		if u, err := url.Parse(c.PublicURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("public_url %q is not an absolute http(s) URL", c.PublicURL))
		}
	}
	if c.Grace < 0 {
		errs = append(errs, errors.New("grace must not be negative"))
	}
	if c.Toast.Duration < 0 {
		errs = append(errs, errors.New("toast.duration must not be negative"))
	}
	if c.Session.IdleTTL <= 0 {
		errs = append(errs, errors.New("session.idle_ttl must be positive"))
	}
	if strings.TrimSpace(c.Session.Cookie) == "" {
		errs = append(errs, errors.New("session.cookie is required"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must not be negative"))
	}
	switch c.Theme.DefaultVariant {
	case theming.Light, theming.Dark:
	default:
		errs = append(errs, fmt.Errorf("theme.default_variant %q is not light or dark", c.Theme.DefaultVariant))
	}
	if c.Content.Watch && c.Content.Dir == "" {
		errs = append(errs, errors.New("content.watch needs content.dir"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
