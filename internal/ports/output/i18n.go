package output

import "hytalei18n/pkg/i18n"

// T exposes a minimal i18n contract for user-facing messages.
// Implementations provide message lookup + templating for a given locale.
type T interface {
	// T renders the message identified by key for the given locale.
	// args fills template placeholders (may be nil).
	T(locale, key string, args i18n.Args) string
}
