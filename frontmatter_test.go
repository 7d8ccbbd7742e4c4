package mdpage

import (
	"strings"
	"testing"
)

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "yaml",
			src:  "---\ntitle: Tracker\nowner: ops\n---\n\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "toml",
			src:  "+++\ntitle = \"Tracker\"\n+++\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "json crlf",
			src:  ";;;\r\n{\"title\": \"Tracker\"}\r\n;;;\r\n\r\n# Hello",
			want: "# Hello",
		},
		{
			name: "bom",
			src:  "\xEF\xBB\xBF---\ntitle: x\n---\nbody",
			want: "body",
		},
		{
			name: "thematic break is not front matter",
			src:  "---\n\n# Hello\n",
			want: "---\n\n# Hello\n",
		},
		{
			name: "unterminated",
			src:  "---\ntitle: x\n# Hello\n",
			want: "---\ntitle: x\n# Hello\n",
		},
		{
			name: "no front matter",
			src:  "# Hello\n\n| a | b |\n",
			want: "# Hello\n\n| a | b |\n",
		},
		{
			name: "delimiter only",
			src:  "---",
			want: "---",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := string(StripFrontMatter([]byte(tc.src)))
			if got != tc.want {
				t.Fatalf("unexpected output\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestStripFrontMatterKeepsSeparatorRows(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	if got := string(StripFrontMatter([]byte(src))); !strings.HasPrefix(got, "| a | b |") {
		t.Fatalf("table mangled: %q", got)
	}
}
