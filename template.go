package disco

import (
	"net/url"
	"strings"
)

// Template is a parsed path template. Parsing happens once per method;
// expansion substitutes percent-encoded values for "{name}" placeholders
// and rejects unresolved placeholders.
type Template struct {
	raw      string
	segments []segment
	names    []string
}

// segment is either a literal run or a single placeholder.
type segment struct {
	literal string
	param   string // non-empty for placeholders
}

// ParseTemplate parses a path template of the form "a/{b}/c".
// Placeholder names must be non-empty and may not contain '{', '}' or '/'.
func ParseTemplate(path string) (*Template, error) {
	t := &Template{raw: path}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '{':
			end := strings.IndexByte(path[i+1:], '}')
			if end < 0 {
				return nil, Errorf(CodeInvalidTemplate, "unterminated placeholder in template %q", path)
			}
			name := path[i+1 : i+1+end]
			if name == "" {
				return nil, Errorf(CodeInvalidTemplate, "empty placeholder in template %q", path)
			}
			if strings.ContainsAny(name, "{/") {
				return nil, Errorf(CodeInvalidTemplate, "malformed placeholder {%s} in template %q", name, path)
			}
			flush()
			t.segments = append(t.segments, segment{param: name})
			t.names = append(t.names, name)
			i += end + 1
		case '}':
			return nil, Errorf(CodeInvalidTemplate, "unmatched '}' in template %q", path)
		default:
			lit.WriteByte(path[i])
		}
	}
	flush()
	return t, nil
}

// Names returns the placeholder names in template order.
// Duplicates appear once per occurrence.
func (t *Template) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// String returns the unexpanded template.
func (t *Template) String() string {
	return t.raw
}

// Expand substitutes values into the template. Substituted values are
// path-segment escaped. A placeholder with no value is a hard error
// rather than being passed through unsubstituted.
func (t *Template) Expand(values map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.param == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := values[seg.param]
		if !ok {
			return "", Errorf(CodeMissingParameter, "no value for placeholder {%s} in template %q", seg.param, t.raw).
				WithParams(seg.param)
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}
