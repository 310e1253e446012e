// internal/logs/logs_test.go
package logs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const jsonType = "application/json; charset=utf-8"

func TestNormalize_Shapes(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		contentType string
		want        string
		lines       int
	}{
		{"plain text", "boot ok\nwifi up\n", "text/plain", "boot ok\nwifi up\n", 2},
		{"plain text with escaped newlines", `boot ok\r\nwifi up`, "text/plain", "boot ok\nwifi up", 2},
		{"json string", `"boot ok\nwifi up"`, jsonType, "boot ok\nwifi up", 2},
		{"json string double escaped", `"boot ok\\nwifi up"`, jsonType, "boot ok\nwifi up", 2},
		{"object logs key", `{"logs":"a\nb","size":3}`, jsonType, "a\nb", 2},
		{"object content key", `{"content":"a","other":1}`, jsonType, "a", 1},
		{"object data key wins over log", `{"log":"x","data":"y"}`, jsonType, "y", 1},
		{"object empty logs falls through", `{"logs":"","log":"z"}`, jsonType, "z", 1},
		{"object key with array", `{"logs":["a","b","c"]}`, jsonType, "a\nb\nc", 3},
		{"single string property", `{"file.log":"only line"}`, jsonType, "only line", 1},
		{"array of lines", `["one","two"]`, jsonType, "one\ntwo", 2},
		{"number", `42`, jsonType, "42", 1},
		{"unknown object", `{"a":1,"b":2}`, jsonType, "1\n  \"b\": 2", 2},
	}

	for _, tc := range cases {
		got, err := Normalize([]byte(tc.body), tc.contentType)
		if err != nil {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
		if got.Content != tc.want {
			t.Fatalf("%s: content got=%q want=%q", tc.name, got.Content, tc.want)
		}
		if got.Lines != tc.lines {
			t.Fatalf("%s: lines got=%d want=%d", tc.name, got.Lines, tc.lines)
		}
		if got.Empty {
			t.Fatalf("%s: unexpectedly empty", tc.name)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, tc := range []struct{ body, ct string }{
		{"", "text/plain"},
		{"  \n ", "text/plain"},
		{`null`, jsonType},
		{`""`, jsonType},
		{`[]`, jsonType},
	} {
		got, err := Normalize([]byte(tc.body), tc.ct)
		if err != nil {
			t.Fatalf("%q: err=%v", tc.body, err)
		}
		if !got.Empty || got.Content != "" || got.Lines != 0 {
			t.Fatalf("%q: expected empty log, got %+v", tc.body, got)
		}
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	if _, err := Normalize([]byte(`{broken`), jsonType); err == nil {
		t.Fatalf("expected decode error, got nil")
	}
}

type fakeGetter struct {
	body, contentType string
	err               error
	path              string
}

func (g *fakeGetter) GetTyped(ctx context.Context, path string) ([]byte, string, error) {
	g.path = path
	return []byte(g.body), g.contentType, g.err
}

func TestReader_Read(t *testing.T) {
	g := &fakeGetter{body: `{"logs":"x\\ny"}`, contentType: jsonType}
	r := NewReader(g, "")

	got, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("Read err=%v", err)
	}
	if g.path != DefaultPath {
		t.Fatalf("path: got=%q want=%q", g.path, DefaultPath)
	}
	if !strings.Contains(got.Content, "x\ny") {
		t.Fatalf("unexpected content %q", got.Content)
	}

	g.err = errors.New("timeout")
	if _, err := r.Read(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
}
