package discord

import (
	"errors"

	"hytalei18n/pkg/i18n"
)

const errorKeyPrefix = "errors."

// ErrorCode returns the machine-readable code of err: its own Code() if it has
// one, the i18n error kind otherwise, or "unknown".
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}
	if code := i18n.Code(err); code != "" {
		return code
	}
	return "unknown"
}

// ErrorMessage maps err to a user-facing message stored under "errors.<code>".
// Codes without a message use "errors.unknown", and the raw error text as a last resort.
func ErrorMessage(loc *i18n.Localizer, locale string, err error) string {
	if err == nil {
		return ""
	}
	for _, key := range []string{errorKeyPrefix + ErrorCode(err), errorKeyPrefix + "unknown"} {
		if _, lookupErr := loc.Resolve(locale, key); lookupErr == nil {
			return loc.T(locale, key, nil)
		}
	}
	return err.Error()
}
