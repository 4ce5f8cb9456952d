package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"hytalei18n/pkg/i18n"
	"hytalei18n/pkg/i18n/resource"
)

type Config struct {
	DefaultLocale string            `env:"I18N_DEFAULT_LOCALE" envDefault:"en-US"`
	ResourceDir   string            `env:"I18N_RESOURCE_DIR"   envDefault:"."`
	Patterns      []string          `env:"I18N_PATTERNS"       envDefault:"lang/%s.lang" envSeparator:","`
	GoI18nGlob    string            `env:"I18N_GOI18N_GLOB"`
	Fallbacks     map[string]string `env:"I18N_FALLBACKS"      envSeparator:"," envKeyValSeparator:"="`
	DatabaseURL   string            `env:"I18N_DATABASE_URL"`

	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (CI, containers).
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks every rule on a loaded configuration.
func (c *Config) validate() error {
	if _, err := i18n.NormalizeLocale(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: I18N_DEFAULT_LOCALE invalid (%q): %w", c.DefaultLocale, err)
	}

	if strings.TrimSpace(c.ResourceDir) == "" {
		c.ResourceDir = "."
	}

	patterns := c.Patterns[:0]
	for _, p := range c.Patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := resource.ParsePattern(p); err != nil {
			return fmt.Errorf("config: I18N_PATTERNS: %w", err)
		}
		patterns = append(patterns, p)
	}
	c.Patterns = patterns

	for from, to := range c.Fallbacks {
		if _, err := i18n.NormalizeLocale(from); err != nil {
			return fmt.Errorf("config: I18N_FALLBACKS: %w", err)
		}
		for _, fb := range strings.Split(to, "|") {
			if _, err := i18n.NormalizeLocale(fb); err != nil {
				return fmt.Errorf("config: I18N_FALLBACKS for %s: %w", from, err)
			}
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return nil
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: I18N_DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: I18N_DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}

	return nil
}

// ResolverOptions turns the configured fallbacks into resolver options.
// "fr-CA=fr|en-US" gives fr-CA the chain fr, en-US.
func (c *Config) ResolverOptions() []i18n.ResolverOption {
	opts := make([]i18n.ResolverOption, 0, len(c.Fallbacks))
	for from, to := range c.Fallbacks {
		opts = append(opts, i18n.WithFallbacks(from, strings.Split(to, "|")...))
	}
	return opts
}
