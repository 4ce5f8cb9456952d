// Package resource decodes locale resource files into i18n resources.
package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"hytalei18n/pkg/i18n"
)

// Decoder turns raw resource bytes into ordered entries.
type Decoder func(data []byte) ([]i18n.Entry, error)

var decoders = map[string]Decoder{
	".lang":       DecodeProperties,
	".properties": DecodeProperties,
	".toml":       DecodeTOML,
	".yaml":       DecodeYAML,
	".yml":        DecodeYAML,
	".json":       DecodeJSON,
}

// DecoderFor returns the decoder registered for the extension of name.
func DecoderFor(name string) (Decoder, bool) {
	d, ok := decoders[strings.ToLower(path.Ext(name))]
	return d, ok
}

// Decode decodes data with the decoder matching origin's extension.
func Decode(locale, origin string, data []byte) (i18n.Resource, error) {
	decode, ok := DecoderFor(origin)
	if !ok {
		return i18n.Resource{}, &i18n.ResourceError{Origin: origin, Locale: locale, Reason: "unsupported resource format"}
	}
	entries, err := decode(data)
	if err != nil {
		var dup *i18n.DuplicateKeyError
		if errors.As(err, &dup) {
			dup.Locale = locale
			dup.Origin = origin
			return i18n.Resource{}, dup
		}
		return i18n.Resource{}, &i18n.ResourceError{Origin: origin, Locale: locale, Err: err}
	}
	return i18n.Resource{Locale: locale, Origin: origin, Entries: entries}, nil
}

// DecodeProperties reads Java-style .properties/.lang data with variable expansion off.
// Every logical line is parsed on its own so a repeated key is reported instead of
// replacing the earlier value.
func DecodeProperties(data []byte) ([]i18n.Entry, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	f := newFlattener()
	for _, line := range logicalLines(string(data)) {
		props, err := loader.LoadBytes([]byte(line))
		if err != nil {
			return nil, err
		}
		for _, key := range props.Keys() {
			value, _ := props.Get(key)
			if err := f.add(key, value); err != nil {
				return nil, err
			}
		}
	}
	return f.entries, nil
}

// logicalLines splits properties data into key/value lines, joining lines continued
// by an odd number of trailing backslashes. Blank and comment lines are dropped.
func logicalLines(data string) []string {
	var out []string
	var current strings.Builder
	continued := false
	for _, raw := range strings.Split(data, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if !continued {
			trimmed := strings.TrimLeft(raw, " \t\f")
			if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
				continue
			}
		}
		current.WriteString(raw)
		if trailingBackslashes(raw)%2 == 1 {
			current.WriteString("\n")
			continued = true
			continue
		}
		out = append(out, current.String())
		current.Reset()
		continued = false
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// tomlRedefinition matches go-toml's errors for keys and tables defined twice.
var tomlRedefinition = regexp.MustCompile(`(?:key|table) (\S+) (?:is )?already (?:defined|exists)`)

// DecodeTOML reads TOML data; nested tables become dotted keys.
func DecodeTOML(data []byte) ([]i18n.Entry, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		if m := tomlRedefinition.FindStringSubmatch(err.Error()); m != nil {
			return nil, &i18n.DuplicateKeyError{Key: strings.Trim(m[1], `"'`)}
		}
		return nil, err
	}
	return flattenMap(doc)
}

// DecodeYAML reads YAML data; nested mappings become dotted keys. The document is
// walked as a node tree so a key repeated in one mapping is a DuplicateKeyError.
func DecodeYAML(data []byte) ([]i18n.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	f := newFlattener()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f.entries, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected top-level mapping")
	}
	if err := f.yamlMapping(root, ""); err != nil {
		return nil, err
	}
	return f.entries, nil
}

// DecodeJSON reads a JSON object; nested objects become dotted keys.
// Keys repeated inside the document are reported, not overwritten.
func DecodeJSON(data []byte) ([]i18n.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object")
	}
	f := newFlattener()
	if err := f.jsonObject(dec, ""); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after top-level object")
	}
	return f.entries, nil
}

type flattener struct {
	seen    map[string]struct{}
	entries []i18n.Entry
}

func newFlattener() *flattener {
	return &flattener{seen: map[string]struct{}{}}
}

func (f *flattener) add(key, value string) error {
	if _, ok := f.seen[key]; ok {
		return &i18n.DuplicateKeyError{Key: key}
	}
	f.seen[key] = struct{}{}
	f.entries = append(f.entries, i18n.Entry{Key: key, Value: value})
	return nil
}

func (f *flattener) jsonObject(dec *json.Decoder, prefix string) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := joinKey(prefix, tok.(string))
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case json.Delim:
			if v != '{' {
				return fmt.Errorf("key %q: arrays are not supported", key)
			}
			if err := f.jsonObject(dec, key); err != nil {
				return err
			}
		case string:
			if err := f.add(key, v); err != nil {
				return err
			}
		case nil:
			return fmt.Errorf("key %q: null value", key)
		default:
			if err := f.add(key, fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}
	_, err := dec.Token()
	return err
}

func (f *flattener) yamlMapping(node *yaml.Node, prefix string) error {
	local := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if _, dup := local[k.Value]; dup {
			return &i18n.DuplicateKeyError{Key: joinKey(prefix, k.Value)}
		}
		local[k.Value] = struct{}{}
		key := joinKey(prefix, k.Value)
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		switch v.Kind {
		case yaml.MappingNode:
			if err := f.yamlMapping(v, key); err != nil {
				return err
			}
		case yaml.ScalarNode:
			if v.Tag == "!!null" {
				return fmt.Errorf("key %q: null value", key)
			}
			if err := f.add(key, v.Value); err != nil {
				return err
			}
		case yaml.SequenceNode:
			return fmt.Errorf("key %q: arrays are not supported", key)
		default:
			return fmt.Errorf("key %q: unsupported value", key)
		}
	}
	return nil
}

func flattenMap(doc map[string]any) ([]i18n.Entry, error) {
	f := newFlattener()
	if err := f.mapping(doc, ""); err != nil {
		return nil, err
	}
	return f.entries, nil
}

func (f *flattener) mapping(m map[string]any, prefix string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := joinKey(prefix, k)
		switch v := m[k].(type) {
		case map[string]any:
			if err := f.mapping(v, key); err != nil {
				return err
			}
		case string:
			if err := f.add(key, v); err != nil {
				return err
			}
		case nil:
			return fmt.Errorf("key %q: null value", key)
		case map[any]any:
			return fmt.Errorf("key %q: mapping keys must be strings", key)
		case []any:
			return fmt.Errorf("key %q: arrays are not supported", key)
		default:
			if err := f.add(key, fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
