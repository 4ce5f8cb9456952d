package i18n

import (
	"sort"
	"strings"
)

// Template is a message with zero or more {placeholder} tokens.
type Template string

// Entry is one key/template pair as read from a resource.
type Entry struct {
	Key   string
	Value string
}

// Resource is the deserialized content of one locale resource.
// Entries keep their source order so duplicates stay visible to Load.
type Resource struct {
	Locale  string
	Origin  string
	Entries []Entry
}

// Catalog stores templates for every loaded locale.
// It is immutable once built and safe for concurrent reads.
type Catalog struct {
	locales map[string]map[string]Template
}

// Load builds a Catalog from resources. Resources sharing a locale are merged;
// a key defined twice for one locale is rejected.
func Load(resources ...Resource) (*Catalog, error) {
	cat := &Catalog{locales: map[string]map[string]Template{}}
	for _, res := range resources {
		if err := cat.add(res); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func (c *Catalog) add(res Resource) error {
	locale, err := NormalizeLocale(res.Locale)
	if err != nil {
		return &ResourceError{Origin: res.Origin, Locale: res.Locale, Err: err}
	}
	if locale == "" {
		return &ResourceError{Origin: res.Origin, Locale: res.Locale, Reason: "locale is required"}
	}

	messages, ok := c.locales[locale]
	if !ok {
		messages = make(map[string]Template, len(res.Entries))
		c.locales[locale] = messages
	}
	for _, entry := range res.Entries {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			return &ResourceError{Origin: res.Origin, Locale: locale, Reason: "message key cannot be blank"}
		}
		if _, exists := messages[key]; exists {
			return &DuplicateKeyError{Locale: locale, Key: key, Origin: res.Origin}
		}
		messages[key] = Template(entry.Value)
	}
	return nil
}

// Lookup returns the template stored for exactly this locale, without fallback.
func (c *Catalog) Lookup(locale, key string) (Template, bool) {
	if c == nil {
		return "", false
	}
	messages, ok := c.locales[locale]
	if !ok {
		if normalized, err := NormalizeLocale(locale); err == nil {
			messages, ok = c.locales[normalized]
		}
	}
	if !ok {
		return "", false
	}
	tmpl, ok := messages[strings.TrimSpace(key)]
	return tmpl, ok
}

// HasLocale reports whether the catalog holds any resource for locale.
func (c *Catalog) HasLocale(locale string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.locales[locale]; ok {
		return true
	}
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return false
	}
	_, ok := c.locales[normalized]
	return ok
}

// Locales returns the loaded locale identifiers, sorted.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Messages returns a copy of the templates of exactly one locale.
func (c *Catalog) Messages(locale string) map[string]Template {
	out := map[string]Template{}
	if c == nil {
		return out
	}
	messages, ok := c.locales[locale]
	if !ok {
		normalized, err := NormalizeLocale(locale)
		if err != nil {
			return out
		}
		messages = c.locales[normalized]
	}
	for key, value := range messages {
		out[key] = value
	}
	return out
}

// Len returns the number of templates across all locales.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, messages := range c.locales {
		n += len(messages)
	}
	return n
}
