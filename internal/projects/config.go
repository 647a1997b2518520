package projects

import (
	"fmt"
	"net/url"
	"time"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/repostats"
	"github.com/spf13/pflag"
)

type (
	GitHubConfig struct {
		BaseURL string `mapstructure:"base-url"`
		Owner   string `mapstructure:"owner"`
		Token   string `mapstructure:"token"`
	}

	SearchConfig struct {
		RestURI string `mapstructure:"rest-uri"`
		Token   string `mapstructure:"token"`
		Scope   string `mapstructure:"scope"`
		Field   string `mapstructure:"field"`
	}

	// Config holds the configuration for the projects page server.
	Config struct {
		ConfigFile      string        `mapstructure:"config-file"`
		ListenAddress   string        `mapstructure:"listen-address"`
		ListenPort      int           `mapstructure:"listen-port"`
		RefreshInterval time.Duration `mapstructure:"refresh-interval"`
		AllowedOrigins  []string      `mapstructure:"allowed-origins"`
		GitHub          GitHubConfig  `mapstructure:"github"`
		Search          SearchConfig  `mapstructure:"search"`
	}
)

const (
	defaultListenPort      = 8080
	defaultRefreshInterval = 15 * time.Minute
	defaultSearchField     = "techblogtitle"
)

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		ListenPort:      defaultListenPort,
		RefreshInterval: defaultRefreshInterval,
		AllowedOrigins:  []string{"*"},
		GitHub: GitHubConfig{
			BaseURL: repostats.DefaultBaseURL,
		},
		Search: SearchConfig{
			Field: defaultSearchField,
		},
	}
}

// AddFlags adds pflag flags for the configuration.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config-file", "", "Config file to use")
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Listen address for http server")
	fs.IntVar(&c.ListenPort, "listen-port", c.ListenPort, "Listen port for http server")
	fs.DurationVar(&c.RefreshInterval, "refresh-interval", c.RefreshInterval, "How often to refresh repository data (0 disables)")
	fs.StringSliceVar(&c.AllowedOrigins, "allowed-origins", c.AllowedOrigins, "Origins allowed to use the GitHub proxy")
	fs.StringVar(&c.GitHub.BaseURL, "github.base-url", c.GitHub.BaseURL, "GitHub API base URL, or a proxy that mirrors it")
	fs.StringVar(&c.GitHub.Owner, "github.owner", c.GitHub.Owner, "Owner whose public repositories are listed")
	fs.StringVar(&c.GitHub.Token, "github.token", c.GitHub.Token, "GitHub API token")
	fs.StringVar(&c.Search.RestURI, "search.rest-uri", c.Search.RestURI, "Search REST endpoint")
	fs.StringVar(&c.Search.Token, "search.token", c.Search.Token, "Search access token")
	fs.StringVar(&c.Search.Scope, "search.scope", c.Search.Scope, "Advanced query limiting suggestion lookups")
	fs.StringVar(&c.Search.Field, "search.field", c.Search.Field, "Field matched against a selected suggestion")
}

// LoadConfig loads the configuration from a file and the flags set in fs.
func (c *Config) LoadConfig(fs *pflag.FlagSet) error {
	loader := config.NewLoader(fs)
	loader.SetConfigFile(c.ConfigFile)
	loader.SetDefaults(map[string]any{
		"listen-address":   "",
		"listen-port":      defaultListenPort,
		"refresh-interval": defaultRefreshInterval.String(),
		"allowed-origins":  []string{"*"},
		"github.base-url":  repostats.DefaultBaseURL,
		"search.field":     defaultSearchField,
	})

	if err := loader.Load(c); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.GitHub.Owner == "" {
		return fmt.Errorf("%w: github.owner must be set", config.ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.GitHub.BaseURL); err != nil {
		return fmt.Errorf("%w: github.base-url: %v", config.ErrInvalidConfig, err)
	}
	if c.Search.RestURI != "" {
		if _, err := url.ParseRequestURI(c.Search.RestURI); err != nil {
			return fmt.Errorf("%w: search.rest-uri: %v", config.ErrInvalidConfig, err)
		}
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("%w: refresh-interval must not be negative", config.ErrInvalidConfig)
	}
	return nil
}
