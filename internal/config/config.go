package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/entrepeneur4lyf/verbachat/internal/client"
)

// CSRFConfig names the anti-forgery cookie and the header it is echoed in
type CSRFConfig struct {
	Cookie string `mapstructure:"cookie" json:"cookie"`
	Header string `mapstructure:"header" json:"header"`
}

// HTTPConfig defines transport behaviour
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"` // 0 keeps the transport default
	Prime   bool          `mapstructure:"prime" json:"prime"`     // GET the endpoint once to pick up cookies
}

// AttachmentConfig defines staged attachment behaviour
type AttachmentConfig struct {
	KeepAfterSend bool `mapstructure:"keepAfterSend" json:"keepAfterSend"`
}

// TUIConfig defines terminal UI configuration
type TUIConfig struct {
	// Theme is empty to use the theme remembered in the state file.
	Theme string `mapstructure:"theme" json:"theme"`
}

// Config is the main configuration structure for the application
type Config struct {
	Endpoint    string            `mapstructure:"endpoint" json:"endpoint"`
	Mode        string            `mapstructure:"mode" json:"mode"`
	CSRF        CSRFConfig        `mapstructure:"csrf" json:"csrf"`
	Cookies     map[string]string `mapstructure:"cookies" json:"cookies,omitempty"`
	HTTP        HTTPConfig        `mapstructure:"http" json:"http"`
	Attachments AttachmentConfig  `mapstructure:"attachments" json:"attachments"`
	TUI         TUIConfig         `mapstructure:"tui" json:"tui"`
	Debug       bool              `mapstructure:"debug" json:"debug,omitempty"`
	LogLevel    string            `mapstructure:"logLevel" json:"logLevel"`
}

// Application constants
const (
	appName            = "verbachat"
	defaultEndpoint    = "http://127.0.0.1:8000/"
	defaultLogLevel    = "info"
	defaultTheme       = "default"
	defaultDataDirName = ".verbachat"
)

// DataDirName is the per-working-directory folder for logs
func DataDirName() string {
	return defaultDataDirName
}

// Options carries command-line overrides into Load
type Options struct {
	// ConfigFile is an explicit config path; empty searches the default locations.
	ConfigFile string
	Debug      bool
	// Overrides are applied on top of file and environment values, keyed by
	// config path (e.g. "endpoint", "mode").
	Overrides map[string]any
}

// Load reads configuration from defaults, the config file, VERBACHAT_*
// environment variables and explicit overrides, in increasing priority.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	configureViper(v, opts.ConfigFile)
	setDefaults(v, opts.Debug)

	if err := readConfig(v.ReadInConfig()); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables
func configureViper(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(fmt.Sprintf(".%s", appName))
		v.AddConfigPath("$HOME")
		v.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
		v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults configures default values for configuration options
func setDefaults(v *viper.Viper, debug bool) {
	v.SetDefault("endpoint", defaultEndpoint)
	v.SetDefault("mode", string(client.ModeMultipart))
	v.SetDefault("csrf.cookie", client.DefaultCSRFCookie)
	v.SetDefault("csrf.header", client.DefaultCSRFHeader)
	v.SetDefault("http.timeout", time.Duration(0))
	v.SetDefault("http.prime", true)
	v.SetDefault("attachments.keepAfterSend", true)
	v.SetDefault("tui.theme", "")

	if debug {
		v.SetDefault("debug", true)
		v.Set("logLevel", "debug")
	} else {
		v.SetDefault("debug", false)
		v.SetDefault("logLevel", defaultLogLevel)
	}
}

// readConfig tolerates a missing config file
func readConfig(err error) error {
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("error reading config file: %w", err)
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if _, err := client.ParseMode(c.Mode); err != nil {
		return err
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint must not be empty")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	return nil
}

// SubmitMode returns the parsed submission mode
func (c *Config) SubmitMode() client.Mode {
	mode, err := client.ParseMode(c.Mode)
	if err != nil {
		return client.ModeMultipart
	}
	return mode
}

// ClientOptions maps the configuration onto the HTTP client
func (c *Config) ClientOptions() client.Options {
	return client.Options{
		Endpoint:   c.Endpoint,
		Mode:       c.SubmitMode(),
		CSRFCookie: c.CSRF.Cookie,
		CSRFHeader: c.CSRF.Header,
		Cookies:    c.Cookies,
		Timeout:    c.HTTP.Timeout,
	}
}

// ParseCookieFlags turns repeated "name=value" flags into a map
func ParseCookieFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid cookie %q, want name=value", pair)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
