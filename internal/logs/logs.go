// internal/logs/logs.go
package logs

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPath is the device endpoint that returns the log file contents.
const DefaultPath = "/api/logs/read"

// Getter is the transport the reader needs. device.Client satisfies it.
type Getter interface {
	GetTyped(ctx context.Context, path string) ([]byte, string, error)
}

// Log is the normalized log text.
type Log struct {
	Content string `json:"content"`
	Lines   int    `json:"lines"` // non-blank lines
	Empty   bool   `json:"empty"`
}

// Reader fetches and normalizes the device log.
type Reader struct {
	getter Getter
	path   string
}

func NewReader(getter Getter, path string) *Reader {
	if path == "" {
		path = DefaultPath
	}
	return &Reader{getter: getter, path: path}
}

// Read performs one fetch.
func (r *Reader) Read(ctx context.Context) (Log, error) {
	body, contentType, err := r.getter.GetTyped(ctx, r.path)
	if err != nil {
		return Log{}, err
	}
	return Normalize(body, contentType)
}

// keys tried, in order, on a JSON object response.
var contentKeys = []string{"logs", "content", "data", "log"}

// Normalize turns any of the shapes the log endpoint has served into text:
// plain text, a JSON string (possibly carrying escaped newlines), a JSON
// object wrapping the text, or a JSON array of lines.
func Normalize(body []byte, contentType string) (Log, error) {
	text := string(body)

	if strings.Contains(contentType, "application/json") {
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return Log{}, fmt.Errorf("logs: decode: %w", err)
		}
		text = extract(v)
	}

	if strings.TrimSpace(text) == "" {
		return Log{Empty: true}, nil
	}

	text = expandNewlines(text)
	return Log{Content: text, Lines: countLines(text)}, nil
}

func extract(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return unescape(t)
	case []any:
		return joinLines(t)
	case map[string]any:
		for _, k := range contentKeys {
			if inner, ok := t[k]; ok && truthy(inner) {
				return stringify(inner)
			}
		}
		if len(t) == 1 {
			for _, inner := range t {
				if s, ok := inner.(string); ok {
					return s
				}
			}
		}
		return flattenObject(t)
	default:
		return stringify(t)
	}
}

// unescape resolves escape sequences left in a double-encoded string.
// Text that does not parse as a string literal is returned unchanged.
func unescape(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

func joinLines(items []any) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = stringify(it)
	}
	return strings.Join(lines, "\n")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return joinLines(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

var (
	openBrace  = regexp.MustCompile(`^\{\s*`)
	closeBrace = regexp.MustCompile(`\s*\}$`)
	leadingKey = regexp.MustCompile(`^\s*"[^"]+"\s*:\s*`)
	lineComma  = regexp.MustCompile(`(?m),\s*$`)
)

// flattenObject renders an unrecognized object as indented JSON without
// its outer braces.
func flattenObject(m map[string]any) string {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprint(m)
	}
	s := string(raw)
	s = openBrace.ReplaceAllString(s, "")
	s = closeBrace.ReplaceAllString(s, "")
	if loc := leadingKey.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	if loc := lineComma.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	return s
}

var escapedNewlines = strings.NewReplacer(`\r\n`, "\n", `\r`, "\n", `\n`, "\n")

func expandNewlines(s string) string {
	return escapedNewlines.Replace(s)
}

func countLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
