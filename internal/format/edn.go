package format

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so struct tags decide
// field names; map keys become kebab-case keywords (completedAt -> :completed-at).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var sb strings.Builder
	writeEDNValue(&sb, x, 0, pretty)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeEDNValue(sb *strings.Builder, v any, depth int, pretty bool) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case json.Number:
		sb.WriteString(t.String())
	case string:
		sb.WriteString(strconv.Quote(t))
	case []any:
		sb.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				ednSep(sb, depth+1, pretty)
			}
			writeEDNValue(sb, el, depth+1, pretty)
		}
		sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				ednSep(sb, depth+1, pretty)
			}
			sb.WriteByte(':')
			sb.WriteString(ednKeyword(k))
			sb.WriteByte(' ')
			writeEDNValue(sb, t[k], depth+1, pretty)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(strconv.Quote(strings.TrimSpace(toString(t))))
	}
}

// ednSep separates collection elements: a newline plus indent when pretty, otherwise a space.
func ednSep(sb *strings.Builder, depth int, pretty bool) {
	if !pretty {
		sb.WriteByte(' ')
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", depth))
}

func ednKeyword(s string) string {
	var sb strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			sb.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func toString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
