package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Args maps placeholder names to values.
type Args map[string]any

// Positional returns Args for {0}, {1}, ... placeholders.
func Positional(values ...any) Args {
	args := make(Args, len(values))
	for i, v := range values {
		args[strconv.Itoa(i)] = v
	}
	return args
}

// Formatter renders templates, printing values for one language.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter printing values the way tag expects (digit grouping and so on).
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// undFormatter prints values with fmt, without digit grouping.
var undFormatter = &Formatter{}

// Format substitutes placeholders in tmpl with args, printing values with fmt.Sprint.
func Format(tmpl Template, args Args) (string, error) {
	return undFormatter.Format(tmpl, args)
}

// Format substitutes every {name} in tmpl. A placeholder without a value fails
// with ErrMissingArgument; arguments no placeholder references are ignored.
// Brace text that is not a valid placeholder is copied as is.
func (f *Formatter) Format(tmpl Template, args Args) (string, error) {
	s := string(tmpl)
	if !strings.Contains(s, "{") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		name, before, after, ok := nextPlaceholder(s)
		if !ok {
			b.WriteString(s)
			break
		}
		b.WriteString(before)
		value, found := args[name]
		if !found {
			return "", &MissingArgumentError{Name: name}
		}
		b.WriteString(f.render(value))
		s = after
	}
	return b.String(), nil
}

func (f *Formatter) render(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case Template:
		return string(v)
	case nil:
		return ""
	default:
		if f.printer == nil {
			return fmt.Sprint(v)
		}
		return f.printer.Sprint(v)
	}
}

// Placeholders returns the distinct placeholder names of tmpl in order of first use.
func Placeholders(tmpl Template) []string {
	var out []string
	seen := map[string]struct{}{}
	s := string(tmpl)
	for {
		name, _, after, ok := nextPlaceholder(s)
		if !ok {
			return out
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			out = append(out, name)
		}
		s = after
	}
}

// nextPlaceholder finds the first valid {name} token in s. Each "{" pairs with the
// next "}"; pairs enclosing anything but a name are skipped whole.
func nextPlaceholder(s string) (name, before, after string, ok bool) {
	offset := 0
	for {
		open := strings.IndexByte(s[offset:], '{')
		if open < 0 {
			return "", "", "", false
		}
		open += offset
		end := strings.IndexByte(s[open+1:], '}')
		if end < 0 {
			return "", "", "", false
		}
		end += open + 1
		candidate := s[open+1 : end]
		if validName(candidate) {
			return candidate, s[:open], s[end+1:], true
		}
		// Invalid brace text is literal up to its closing brace, so "{{name}}" stays as is.
		offset = end + 1
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}
