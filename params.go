package disco

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/schema"
)

var schemaEncoder = schema.NewEncoder()

// ParseParams parses a raw query string (without the leading '?') into a
// parameter mapping. Repeated keys keep the first value.
func ParseParams(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("parse query string: %w", err)
	}
	params := make(map[string]string, len(values))
	for name := range values {
		params[name] = values.Get(name)
	}
	return params, nil
}

// EncodeParams encodes a struct with `schema` tags into a parameter
// mapping. Zero-valued fields are skipped so that optional parameters
// are simply omitted.
func EncodeParams(v any) (map[string]string, error) {
	values := url.Values{}
	if err := schemaEncoder.Encode(v, values); err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	params := make(map[string]string, len(values))
	for name := range values {
		if s := values.Get(name); s != "" {
			params[name] = s
		}
	}
	return params, nil
}

// EncodeQuery renders a parameter mapping as a query string with keys in
// sorted order. The inverse of ParseParams up to ordering.
func EncodeQuery(params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[name]))
	}
	return b.String()
}
