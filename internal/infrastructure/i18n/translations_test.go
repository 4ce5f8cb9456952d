package i18n

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"hytalei18n/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	t.Parallel()

	cat, err := i18n.Load(i18n.Resource{Locale: "fr", Entries: []i18n.Entry{{Key: "dm.join", Value: "{user} a rejoint"}}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := i18n.NewResolver("fr")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	loc := i18n.New(r, cat)
	tr := NewTranslator(loc)

	tests := []struct {
		name   string
		locale string
		key    string
		args   i18n.Args
		want   string
	}{
		{name: "rendered", locale: "fr-CA", key: "dm.join", args: i18n.Args{"user": "Ann"}, want: "Ann a rejoint"},
		{name: "missing key", locale: "fr", key: "dm.leave", want: "dm.leave"},
		{name: "missing argument", locale: "fr", key: "dm.join", want: "{user} a rejoint"},
		{name: "empty key", locale: "fr", key: "", want: ""},
	}
	for _, tt := range tests {
		if got := tr.T(tt.locale, tt.key, tt.args); got != tt.want {
			t.Errorf("%s: T = %q, want %q", tt.name, got, tt.want)
		}
		if got, want := tr.T(tt.locale, tt.key, tt.args), loc.T(tt.locale, tt.key, tt.args); got != want {
			t.Errorf("%s: Translator.T = %q, Localizer.T = %q", tt.name, got, want)
		}
	}
}

func TestFSSource(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"lang/en-US.lang": {Data: []byte("a=A\n")},
		"lang/fr.lang":    {Data: []byte("a=Á\n")},
	}
	src, err := NewFSSource(fsys, "mem", "lang/%s.lang")
	if err != nil {
		t.Fatalf("new fs source: %v", err)
	}
	if src.Name() != "fs:mem" {
		t.Fatalf("name = %q", src.Name())
	}
	resources, err := src.Resources(context.Background())
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("resources = %d, want 2", len(resources))
	}

	if _, err := NewFSSource(fsys, "mem"); err == nil {
		t.Fatal("expected error without patterns")
	}
	if _, err := NewFSSource(fsys, "mem", "lang/en.lang"); err == nil {
		t.Fatalf("expected error for pattern without %%s")
	}
}

func TestDirSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "lang"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lang", "de.lang"), []byte("hello=Hallo {name}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := NewDirSource(dir, "lang/%s.lang")
	if err != nil {
		t.Fatalf("new dir source: %v", err)
	}
	resources, err := src.Resources(context.Background())
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if len(resources) != 1 || resources[0].Locale != "de" {
		t.Fatalf("resources = %+v", resources)
	}
}

func TestGoI18nAndStaticSources(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"active.en.toml": {Data: []byte("hello = \"Hello {{.Name}}\"\n")}}
	resources, err := NewGoI18nSource(fsys, "active.*.toml").Resources(context.Background())
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if len(resources) != 1 || resources[0].Entries[0].Value != "Hello {Name}" {
		t.Fatalf("resources = %+v", resources)
	}

	static := StaticSource{{Locale: "en", Entries: []i18n.Entry{{Key: "k", Value: "v"}}}}
	got, err := static.Resources(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("static = %v, %v", got, err)
	}
}
