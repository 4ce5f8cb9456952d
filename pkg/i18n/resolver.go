package i18n

import (
	"fmt"
	"strings"
)

// Chain is an ordered list of locales tried one after another.
// A chain built by a Resolver is never empty and always ends with the default locale.
type Chain []string

// Resolver finds templates by walking a locale chain.
type Resolver struct {
	defaultLocale string
	fallbacks     map[string][]string
	err           error
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFallbacks sets an explicit fallback chain for locale, replacing the
// derived parent chain. The default locale is still appended last.
func WithFallbacks(locale string, fallbacks ...string) ResolverOption {
	return func(r *Resolver) {
		if r.err != nil {
			return
		}
		from, err := NormalizeLocale(locale)
		if err != nil || from == "" {
			r.err = fmt.Errorf("fallbacks: invalid locale %q", locale)
			return
		}
		seen := map[string]struct{}{from: {}}
		chain := make([]string, 0, len(fallbacks))
		for _, fb := range fallbacks {
			normalized, err := NormalizeLocale(fb)
			if err != nil {
				r.err = fmt.Errorf("fallbacks for %s: %w", from, err)
				return
			}
			if normalized == "" {
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			chain = append(chain, normalized)
		}
		r.fallbacks[from] = chain
	}
}

// NewResolver returns a Resolver whose chains end at defaultLocale.
func NewResolver(defaultLocale string, opts ...ResolverOption) (*Resolver, error) {
	def, err := NormalizeLocale(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("default locale: %w", err)
	}
	if def == "" {
		def = DefaultLocale
	}
	r := &Resolver{
		defaultLocale: def,
		fallbacks:     map[string][]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}
	return r, nil
}

// DefaultLocale returns the locale every chain ends with.
func (r *Resolver) DefaultLocale() string {
	return r.defaultLocale
}

// Chain returns the fallback chain for locale. Unparsable or blank locales
// resolve to the default locale alone.
func (r *Resolver) Chain(locale string) Chain {
	requested, err := NormalizeLocale(locale)
	if err != nil || requested == "" {
		return Chain{r.defaultLocale}
	}

	candidates := []string{requested}
	if explicit, ok := r.fallbacks[requested]; ok {
		candidates = append(candidates, explicit...)
	} else {
		candidates = append(candidates, parents(requested)...)
	}
	candidates = append(candidates, r.defaultLocale)

	seen := make(map[string]struct{}, len(candidates))
	chain := make(Chain, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		chain = append(chain, c)
	}
	return chain
}

// Resolve returns the template for key from the first locale of the chain that defines it.
func (r *Resolver) Resolve(cat *Catalog, locale, key string) (Template, error) {
	chain := r.Chain(locale)
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", &KeyNotFoundError{Key: key, Chain: chain}
	}
	for _, candidate := range chain {
		if tmpl, ok := cat.Lookup(candidate, trimmedKey); ok {
			return tmpl, nil
		}
	}
	return "", &KeyNotFoundError{Key: trimmedKey, Chain: chain}
}
