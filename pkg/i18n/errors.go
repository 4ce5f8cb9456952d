package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is; the typed errors below carry the details.
var (
	ErrMalformedResource = errors.New("malformed resource")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrKeyNotFound       = errors.New("key not found")
	ErrMissingArgument   = errors.New("missing argument")
)

// ResourceError reports resource data that could not be turned into catalog entries.
type ResourceError struct {
	Origin string
	Locale string
	Reason string
	Err    error
}

func (e *ResourceError) Error() string {
	var b strings.Builder
	b.WriteString("malformed resource")
	if e.Origin != "" {
		b.WriteString(" ")
		b.WriteString(e.Origin)
	}
	if e.Locale != "" {
		fmt.Fprintf(&b, " (locale %q)", e.Locale)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ResourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedResource}
	}
	return []error{ErrMalformedResource, e.Err}
}

// DuplicateKeyError reports a key defined twice for the same locale.
type DuplicateKeyError struct {
	Locale string
	Key    string
	Origin string
}

func (e *DuplicateKeyError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("duplicate key %q in locale %q (%s)", e.Key, e.Locale, e.Origin)
	}
	return fmt.Sprintf("duplicate key %q in locale %q", e.Key, e.Locale)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// KeyNotFoundError reports a key missing from every locale of a chain.
type KeyNotFoundError struct {
	Key   string
	Chain Chain
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found (locales %s)", e.Key, strings.Join(e.Chain, ", "))
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// MissingArgumentError reports a placeholder with no supplied value.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument for placeholder {%s}", e.Name)
}

func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// Code maps an error to a stable machine-readable code, or "" for foreign errors.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrMalformedResource):
		return "malformed_resource"
	case errors.Is(err, ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, ErrMissingArgument):
		return "missing_argument"
	default:
		return ""
	}
}
