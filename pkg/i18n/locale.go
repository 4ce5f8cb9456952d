package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when a resolver is built without an explicit default.
const DefaultLocale = "en-US"

// NormalizeLocale returns the canonical BCP 47 form of locale ("en_us" -> "en-US").
// Blank and "und" locales normalize to "".
func NormalizeLocale(locale string) (string, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return "", nil
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	if tag == language.Und {
		return "", nil
	}
	return tag.String(), nil
}

// parents returns the truncated ancestors of a canonical tag, nearest first.
// Extensions and private-use subtags ("-u-ca-gregory", "-x-foo") are dropped whole.
func parents(tag string) []string {
	var out []string
	subtags := strings.Split(tag, "-")
	for i := 1; i < len(subtags); i++ {
		if len(subtags[i]) == 1 {
			tag = strings.Join(subtags[:i], "-")
			out = append(out, tag)
			break
		}
	}
	for {
		i := strings.LastIndexByte(tag, '-')
		if i <= 0 {
			return out
		}
		tag = tag[:i]
		out = append(out, tag)
	}
}

func tagFor(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}
