package mdpage

import (
	"bytes"
	"strings"
	"testing"
)

func TestWritePage(t *testing.T) {
	var out bytes.Buffer
	fragment := "<table><p><h1>Hi</h1></p></tbody></table>"
	if err := WritePage(&out, Page{Fragment: fragment}); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	page := out.String()
	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"en\">",
		"<meta charset=\"UTF-8\">",
		"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">",
		"<title>Project Tracker</title>",
		"        body { font-family: sans-serif;",
		"        tr:nth-child(even) { background-color: #f9f9f9; }\n    </style>",
		"<body>\n    " + fragment + "\n</body>\n</html>\n",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("missing %q in page:\n%s", want, page)
		}
	}
}

func TestWritePageEscapesTitle(t *testing.T) {
	var out bytes.Buffer
	err := WritePage(&out, Page{Title: "<b>R&D</b>", Theme: mustTheme(t, "dark")})
	if err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	page := out.String()
	if !strings.Contains(page, "<title>&lt;b&gt;R&amp;D&lt;/b&gt;</title>") {
		t.Fatalf("title not escaped:\n%s", page)
	}
	if !strings.Contains(page, "background-color: #1e1e1e;") {
		t.Fatalf("theme not applied:\n%s", page)
	}
}

func TestWritePageNilWriter(t *testing.T) {
	if err := WritePage(nil, Page{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func mustTheme(t *testing.T, name string) Theme {
	t.Helper()
	th, ok := ThemeByName(name)
	if !ok {
		t.Fatalf("theme %q missing", name)
	}
	return th
}
