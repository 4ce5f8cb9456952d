package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
)

type fakeSource struct {
	name      string
	resources []i18n.Resource
	err       error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Resources(context.Context) ([]i18n.Resource, error) {
	return f.resources, f.err
}

func newService(t *testing.T, sources ...*fakeSource) *CatalogService {
	t.Helper()
	r, err := i18n.NewResolver("en-US")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	ports := make([]output.ResourceSource, 0, len(sources))
	for _, s := range sources {
		ports = append(ports, s)
	}
	return NewCatalogService(i18n.New(r, nil), ports...)
}

func baseResources() []i18n.Resource {
	return []i18n.Resource{
		{Locale: "en-US", Entries: []i18n.Entry{
			{Key: "greeting", Value: "Hello, {name}!"},
			{Key: "score", Value: "{player} scored {points}"},
			{Key: "bye", Value: "Bye"},
		}},
		{Locale: "fr", Entries: []i18n.Entry{
			{Key: "greeting", Value: "Bonjour {name} !"},
			{Key: "score", Value: "{player} a marqué"},
			{Key: "extra", Value: "En plus"},
		}},
	}
}

func TestCatalogServiceReloadAndRender(t *testing.T) {
	t.Parallel()

	files := &fakeSource{name: "files", resources: baseResources()[:1]}
	db := &fakeSource{name: "db", resources: baseResources()[1:]}
	svc := newService(t, files, db)

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := svc.Render("fr-BE", "greeting", i18n.Args{"name": "Ann"})
	if err != nil || got != "Bonjour Ann !" {
		t.Fatalf("render = %q, %v", got, err)
	}
	got, err = svc.Render("fr", "bye", nil)
	if err != nil || got != "Bye" {
		t.Fatalf("render fallback = %q, %v", got, err)
	}
}

func TestCatalogServiceReloadKeepsCatalogOnFailure(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "files", resources: baseResources()}
	svc := newService(t, src)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	before := svc.Localizer().Catalog()

	src.err = errors.New("disk gone")
	if err := svc.Reload(context.Background()); err == nil || !strings.Contains(err.Error(), "source files") {
		t.Fatalf("err = %v, want source error", err)
	}
	src.err = nil
	src.resources = append(baseResources(), i18n.Resource{Locale: "en-US", Entries: []i18n.Entry{{Key: "bye", Value: "again"}}})
	if err := svc.Reload(context.Background()); !errors.Is(err, i18n.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
	if svc.Localizer().Catalog() != before {
		t.Fatal("failed reload replaced the catalog")
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	svc := newService(t, &fakeSource{name: "files", resources: baseResources()})
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	report, err := svc.Status("en-us")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if report.BaseLocale != "en-US" || len(report.Locales) != 2 {
		t.Fatalf("report = %+v", report)
	}
	fr := report.Locales[1]
	if fr.Locale != "fr" || fr.Translated != 2 || fr.Missing != 1 || fr.Extra != 1 || fr.Completion != 66.7 {
		t.Fatalf("fr status = %+v", fr)
	}
	if fr.MissingKeys[0] != "bye" || fr.ExtraKeys[0] != "extra" {
		t.Fatalf("fr keys = %v / %v", fr.MissingKeys, fr.ExtraKeys)
	}
	if md := report.Markdown(); !strings.Contains(md, "| `fr` | 3 | 2 | 1 | 1 | 66.7% |") {
		t.Fatalf("markdown = %s", md)
	}

	if _, err := svc.Status("de"); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestCheckReportsPlaceholderMismatches(t *testing.T) {
	t.Parallel()

	svc := newService(t, &fakeSource{name: "files", resources: baseResources()})
	mismatches, err := svc.Check(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("mismatches = %v, want 1", mismatches)
	}
	m := mismatches[0]
	if m.Locale != "fr" || m.Key != "score" {
		t.Fatalf("mismatch = %+v", m)
	}
	if got := m.String(); got != "fr score: placeholders {player}, base has {player, points}" {
		t.Fatalf("String = %q", got)
	}
	if svc.Localizer().Catalog().Len() != 0 {
		t.Fatal("check must not swap the catalog")
	}
}
