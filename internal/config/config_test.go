package config

import (
	"os"
	"reflect"
	"testing"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "I18N_DEFAULT_LOCALE", "I18N_PATTERNS", "I18N_RESOURCE_DIR", "I18N_FALLBACKS", "I18N_DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Fatalf("default locale = %q, want en-US", cfg.DefaultLocale)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"lang/%s.lang"}) {
		t.Fatalf("patterns = %v", cfg.Patterns)
	}
	if cfg.ResourceDir != "." {
		t.Fatalf("resource dir = %q", cfg.ResourceDir)
	}
}

func TestLoadFallbacks(t *testing.T) {
	unsetEnv(t, "I18N_PATTERNS", "I18N_DATABASE_URL")
	t.Setenv("I18N_DEFAULT_LOCALE", "en-US")
	t.Setenv("I18N_FALLBACKS", "fr-CA=fr|en-GB,pt-PT=pt-BR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fallbacks["fr-CA"] != "fr|en-GB" || cfg.Fallbacks["pt-PT"] != "pt-BR" {
		t.Fatalf("fallbacks = %v", cfg.Fallbacks)
	}
	if got := len(cfg.ResolverOptions()); got != 2 {
		t.Fatalf("resolver options = %d, want 2", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{DefaultLocale: "en-US", Patterns: []string{"lang/%s.lang"}}},
		{name: "bad locale", cfg: Config{DefaultLocale: "not a tag!"}, wantErr: true},
		{name: "bad pattern", cfg: Config{DefaultLocale: "en", Patterns: []string{"lang/en.lang"}}, wantErr: true},
		{name: "bad fallback", cfg: Config{DefaultLocale: "en", Fallbacks: map[string]string{"fr": "bad tag!"}}, wantErr: true},
		{name: "db without host", cfg: Config{DefaultLocale: "en", DatabaseURL: "postgres:///x"}, wantErr: true},
		{name: "db ok", cfg: Config{DefaultLocale: "en", DatabaseURL: "postgres://localhost:5432/i18n?sslmode=disable"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := tt.cfg
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
