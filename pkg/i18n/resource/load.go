package resource

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"hytalei18n/pkg/i18n"
)

// ParsePattern validates a resource path pattern such as "lang/%s.lang".
// The single %s marks the locale segment.
func ParsePattern(pattern string) (string, error) {
	p := strings.TrimSpace(pattern)
	if p == "" {
		return "", fmt.Errorf("pattern cannot be blank")
	}
	if strings.Count(p, "%s") != 1 {
		return "", fmt.Errorf("pattern must contain exactly one %%s placeholder: %s", p)
	}
	return strings.TrimPrefix(p, "/"), nil
}

// LoadPatterns reads every file of fsys matching one of the patterns.
// The text matched by %s is the resource locale.
func LoadPatterns(fsys fs.FS, patterns ...string) ([]i18n.Resource, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no resource patterns configured")
	}
	var out []i18n.Resource
	for _, raw := range patterns {
		pattern, err := ParsePattern(raw)
		if err != nil {
			return nil, err
		}
		prefix, suffix, _ := strings.Cut(pattern, "%s")
		matches, err := fs.Glob(fsys, prefix+"*"+suffix)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			locale := strings.TrimSuffix(strings.TrimPrefix(match, prefix), suffix)
			if locale == "" {
				continue
			}
			data, err := fs.ReadFile(fsys, match)
			if err != nil {
				return nil, fmt.Errorf("read resource %s: %w", match, err)
			}
			res, err := Decode(locale, match, data)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}

var goTemplateField = regexp.MustCompile(`\{\{\s*\.([A-Za-z0-9_]+)\s*\}\}`)

// LoadGoI18n reads go-i18n message files (active.fr.toml, en-US.json, ...) matching glob.
// The locale comes from the file name and the "other" form becomes the template;
// simple {{.Field}} references are rewritten to {Field}.
func LoadGoI18n(fsys fs.FS, glob string) ([]i18n.Resource, error) {
	matches, err := fs.Glob(fsys, glob)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", glob, err)
	}
	sort.Strings(matches)

	unmarshal := map[string]goi18n.UnmarshalFunc{
		"toml": toml.Unmarshal,
		"yaml": yaml.Unmarshal,
		"yml":  yaml.Unmarshal,
	}
	out := make([]i18n.Resource, 0, len(matches))
	for _, match := range matches {
		data, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("read resource %s: %w", match, err)
		}
		file, err := goi18n.ParseMessageFileBytes(data, match, unmarshal)
		if err != nil {
			return nil, &i18n.ResourceError{Origin: match, Err: err}
		}
		if file.Tag.IsRoot() {
			return nil, &i18n.ResourceError{Origin: match, Reason: "file name carries no language tag"}
		}

		messages := append([]*goi18n.Message(nil), file.Messages...)
		sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
		entries := make([]i18n.Entry, 0, len(messages))
		for _, msg := range messages {
			value := msg.Other
			if value == "" {
				value = msg.One
			}
			if value == "" {
				return nil, &i18n.ResourceError{Origin: match, Locale: file.Tag.String(), Reason: fmt.Sprintf("message %q has no text", msg.ID)}
			}
			entries = append(entries, i18n.Entry{Key: msg.ID, Value: goTemplateField.ReplaceAllString(value, "{$1}")})
		}
		out = append(out, i18n.Resource{Locale: file.Tag.String(), Origin: match, Entries: entries})
	}
	return out, nil
}
