package application

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"hytalei18n/pkg/i18n"
)

// Report summarizes translation coverage against a base locale.
type Report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []LocaleStatus `json:"locales"`
}

// LocaleStatus is the coverage of one locale.
type LocaleStatus struct {
	Locale      string   `json:"locale"`
	BaseKeys    int      `json:"base_keys"`
	Translated  int      `json:"translated"`
	Missing     int      `json:"missing"`
	Extra       int      `json:"extra"`
	Completion  float64  `json:"completion"`
	MissingKeys []string `json:"missing_keys"`
	ExtraKeys   []string `json:"extra_keys"`
}

// Status reports coverage of every loaded locale against baseLocale.
func (s *CatalogService) Status(baseLocale string) (Report, error) {
	return BuildReport(s.localizer.Catalog(), baseLocale)
}

// BuildReport computes coverage of cat against baseLocale.
func BuildReport(cat *i18n.Catalog, baseLocale string) (Report, error) {
	base, err := i18n.NormalizeLocale(baseLocale)
	if err != nil {
		return Report{}, err
	}
	if !cat.HasLocale(base) {
		return Report{}, fmt.Errorf("base locale %q is missing from catalog", baseLocale)
	}

	baseMessages := cat.Messages(base)
	locales := cat.Locales()
	statuses := make([]LocaleStatus, 0, len(locales))
	for _, locale := range locales {
		messages := cat.Messages(locale)
		missing := keysNotIn(baseMessages, messages)
		extra := keysNotIn(messages, baseMessages)
		translated := len(baseMessages) - len(missing)
		statuses = append(statuses, LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(baseMessages)),
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	return Report{BaseLocale: base, Locales: statuses}, nil
}

// Markdown renders the report as a markdown table.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	b.WriteString("Base locale: `")
	b.WriteString(r.BaseLocale)
	b.WriteString("`.\n\n")
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, l := range r.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", l.Locale, l.BaseKeys, l.Translated, l.Missing, l.Extra, l.Completion)
	}
	for _, l := range r.Locales {
		if len(l.MissingKeys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## Missing in `%s`\n\n", l.Locale)
		for _, key := range l.MissingKeys {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
	}
	return b.String()
}

// Mismatch is a translation whose placeholders differ from the base template.
type Mismatch struct {
	Locale string
	Key    string
	Base   []string
	Got    []string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s %s: placeholders {%s}, base has {%s}",
		m.Locale, m.Key, strings.Join(m.Got, ", "), strings.Join(m.Base, ", "))
}

// Check loads every source without swapping the catalog in service and
// reports translations whose placeholder set differs from baseLocale's.
func (s *CatalogService) Check(ctx context.Context, baseLocale string) ([]Mismatch, error) {
	resources, err := s.Gather(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := i18n.Load(resources...)
	if err != nil {
		return nil, err
	}
	return PlaceholderMismatches(cat, baseLocale)
}

// PlaceholderMismatches compares placeholders of every translation with the base template.
func PlaceholderMismatches(cat *i18n.Catalog, baseLocale string) ([]Mismatch, error) {
	base, err := i18n.NormalizeLocale(baseLocale)
	if err != nil {
		return nil, err
	}
	baseMessages := cat.Messages(base)
	var out []Mismatch
	for _, locale := range cat.Locales() {
		if locale == base {
			continue
		}
		messages := cat.Messages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			baseTmpl, ok := baseMessages[key]
			if !ok {
				continue
			}
			want := sortedPlaceholders(baseTmpl)
			got := sortedPlaceholders(messages[key])
			if strings.Join(want, "\x00") != strings.Join(got, "\x00") {
				out = append(out, Mismatch{Locale: locale, Key: key, Base: want, Got: got})
			}
		}
	}
	return out, nil
}

func sortedPlaceholders(tmpl i18n.Template) []string {
	names := i18n.Placeholders(tmpl)
	sort.Strings(names)
	return names
}

func keysNotIn(from, target map[string]i18n.Template) []string {
	out := make([]string, 0)
	for key := range from {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
