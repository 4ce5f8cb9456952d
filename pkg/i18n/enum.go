package i18n

import (
	"fmt"
	"reflect"
	"strings"
)

// KeyStrategy maps an enum type name and value key to a message key.
type KeyStrategy func(typeName, key string) string

// DefaultKeyStrategy produces "TypeName.key".
func DefaultKeyStrategy(typeName, key string) string {
	return typeName + "." + key
}

// EnumLocalizer renders labels for enum-like values.
type EnumLocalizer struct {
	source   MessageSource
	strategy KeyStrategy
}

// NewEnumLocalizer returns an EnumLocalizer; a nil strategy means DefaultKeyStrategy.
func NewEnumLocalizer(source MessageSource, strategy KeyStrategy) *EnumLocalizer {
	if strategy == nil {
		strategy = DefaultKeyStrategy
	}
	return &EnumLocalizer{source: source, strategy: strategy}
}

// Label returns the localized label of key, the key itself when no translation
// exists, and "" for a blank key.
func (e *EnumLocalizer) Label(typeName, key, locale string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	tmpl, err := e.source.Resolve(locale, e.strategy(typeName, key))
	if err != nil {
		return key
	}
	return string(tmpl)
}

// Keyed is implemented by enum values carrying a stable message key.
type Keyed interface {
	comparable
	Key() string
}

// EnumSupport indexes the values of one enum type by key and labels them.
type EnumSupport[E Keyed] struct {
	typeName  string
	values    []E
	byKey     map[string]E
	localizer *EnumLocalizer
}

// NewEnumSupport indexes values. Blank and duplicate keys are rejected.
func NewEnumSupport[E Keyed](typeName string, values []E, localizer *EnumLocalizer) (*EnumSupport[E], error) {
	if strings.TrimSpace(typeName) == "" {
		return nil, fmt.Errorf("enum support: type name is required")
	}
	byKey := make(map[string]E, len(values))
	for _, v := range values {
		k := v.Key()
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("enum support: empty key in %s", typeName)
		}
		if _, exists := byKey[k]; exists {
			return nil, fmt.Errorf("enum support: duplicate key in %s: %s", typeName, k)
		}
		byKey[k] = v
	}
	return &EnumSupport[E]{
		typeName:  typeName,
		values:    append([]E(nil), values...),
		byKey:     byKey,
		localizer: localizer,
	}, nil
}

// ByKey returns the value registered under key.
func (s *EnumSupport[E]) ByKey(key string) (E, bool) {
	v, ok := s.byKey[key]
	return v, ok
}

// LabelKey labels a raw enum key.
func (s *EnumSupport[E]) LabelKey(key, locale string) string {
	return s.localizer.Label(s.typeName, key, locale)
}

// Label labels value. A nil value or a blank key labels as "".
func (s *EnumSupport[E]) Label(value E, locale string) string {
	if isNil(value) {
		return ""
	}
	return s.LabelKey(value.Key(), locale)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Values returns the indexed values in declaration order.
func (s *EnumSupport[E]) Values() []E {
	return append([]E(nil), s.values...)
}
