package i18n

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Store holds the catalog in service. Swaps replace the whole catalog so
// readers see either the old or the new one, never a mix.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a Store serving cat.
func NewStore(cat *Catalog) *Store {
	s := &Store{}
	if cat == nil {
		cat = &Catalog{locales: map[string]map[string]Template{}}
	}
	s.current.Store(cat)
	return s
}

// Load returns the catalog in service.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap installs cat and returns the previous catalog.
func (s *Store) Swap(cat *Catalog) *Catalog {
	return s.current.Swap(cat)
}

// MessageSource resolves templates for a locale.
type MessageSource interface {
	Resolve(locale, key string) (Template, error)
}

var _ MessageSource = (*Localizer)(nil)

// Localizer ties a catalog store to a resolver and per-locale formatters.
// Create one per application context and pass it explicitly.
type Localizer struct {
	resolver *Resolver
	store    *Store

	formatters sync.Map // locale -> *Formatter
}

// New returns a Localizer serving cat through resolver.
func New(resolver *Resolver, cat *Catalog) *Localizer {
	return &Localizer{
		resolver: resolver,
		store:    NewStore(cat),
	}
}

// Resolver returns the chain resolver.
func (l *Localizer) Resolver() *Resolver {
	return l.resolver
}

// Catalog returns the catalog currently in service.
func (l *Localizer) Catalog() *Catalog {
	return l.store.Load()
}

// Resolve returns the template for key following the chain of locale.
func (l *Localizer) Resolve(locale, key string) (Template, error) {
	return l.resolver.Resolve(l.store.Load(), locale, key)
}

// Format renders tmpl with values printed for locale.
func (l *Localizer) Format(locale string, tmpl Template, args Args) (string, error) {
	return l.formatter(locale).Format(tmpl, args)
}

// Localize resolves key for locale and renders it with args.
func (l *Localizer) Localize(locale, key string, args Args) (string, error) {
	tmpl, err := l.Resolve(locale, key)
	if err != nil {
		return "", err
	}
	return l.Format(locale, tmpl, args)
}

// Reload loads resources and swaps them in. On error the current catalog stays in service.
func (l *Localizer) Reload(resources ...Resource) error {
	cat, err := Load(resources...)
	if err != nil {
		return err
	}
	l.store.Swap(cat)
	return nil
}

// ReloadCatalog swaps in an already loaded catalog.
func (l *Localizer) ReloadCatalog(cat *Catalog) {
	if cat == nil {
		return
	}
	l.store.Swap(cat)
}

// GetOrDefault returns the raw template for key, or fallback when no locale of the chain has it.
func (l *Localizer) GetOrDefault(key, locale, fallback string) string {
	tmpl, err := l.Resolve(locale, key)
	if err != nil {
		return fallback
	}
	return string(tmpl)
}

// T renders key for locale and never fails: an unknown key renders as the key
// itself and a template with missing arguments renders unformatted.
func (l *Localizer) T(locale, key string, args Args) string {
	if key == "" {
		return ""
	}
	tmpl, err := l.Resolve(locale, key)
	if err != nil {
		return key
	}
	out, err := l.Format(locale, tmpl, args)
	if errors.Is(err, ErrMissingArgument) {
		return string(tmpl)
	}
	return out
}

func (l *Localizer) formatter(locale string) *Formatter {
	normalized, err := NormalizeLocale(locale)
	if err != nil || normalized == "" {
		normalized = l.resolver.DefaultLocale()
	}
	if f, ok := l.formatters.Load(normalized); ok {
		return f.(*Formatter)
	}
	tag := tagFor(normalized)
	if tag == language.Und {
		return undFormatter
	}
	f, _ := l.formatters.LoadOrStore(normalized, NewFormatter(tag))
	return f.(*Formatter)
}
