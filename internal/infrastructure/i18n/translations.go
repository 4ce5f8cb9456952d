package i18n

import (
	"log"

	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
)

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin logging wrapper around an i18n.Localizer.
type Translator struct {
	localizer *i18n.Localizer
}

// NewTranslator builds a Translator rendering through localizer.
func NewTranslator(localizer *i18n.Localizer) *Translator {
	return &Translator{localizer: localizer}
}

// T renders the message identified by key for the given locale, logging failures.
// Fallbacks are those of i18n.Localizer.T.
func (t *Translator) T(locale, key string, args i18n.Args) string {
	msg, err := t.localizer.Localize(locale, key, args)
	if err == nil {
		return msg
	}
	if key != "" {
		log.Printf("i18n: localize failed (key=%s, locale=%s): %v", key, locale, err)
	}
	return t.localizer.T(locale, key, args)
}
