package mdpage

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		opts []ConvertOption
		want string
	}{
		{
			name: "empty",
			src:  "",
			want: "<table><p></p></tbody></table>",
		},
		{
			name: "h1",
			src:  "# Title",
			want: "<table><p><h1>Title</h1></p></tbody></table>",
		},
		{
			name: "heading levels",
			src:  "# A\n## B\n### C",
			want: "<table><p><h1>A</h1><br><h2>B</h2><br><h3>C</h3></p></tbody></table>",
		},
		{
			name: "h4 is not a heading",
			src:  "#### Four",
			want: "<table><p>#### Four</p></tbody></table>",
		},
		{
			name: "marker needs a space",
			src:  "#NoSpace",
			want: "<table><p>#NoSpace</p></tbody></table>",
		},
		{
			name: "bold",
			src:  "**bold**",
			want: "<table><p><strong>bold</strong></p></tbody></table>",
		},
		{
			name: "only first bold pair",
			src:  "**a** and **b**",
			want: "<table><p><strong>a</strong> and **b**</p></tbody></table>",
		},
		{
			name: "all bold pairs",
			src:  "**a** and **b**",
			opts: []ConvertOption{WithAllBold(true)},
			want: "<table><p><strong>a</strong> and <strong>b</strong></p></tbody></table>",
		},
		{
			name: "paragraphs",
			src:  "line1\n\nline2",
			want: "<table><p>line1</p><p>line2</p></tbody></table>",
		},
		{
			name: "line break",
			src:  "a\nb",
			want: "<table><p>a<br>b</p></tbody></table>",
		},
		{
			name: "crlf heading keeps carriage return",
			src:  "# T\r\nx",
			want: "<table><p><h1>T\r</h1><br>x</p></tbody></table>",
		},
		{
			name: "table",
			src:  "| A | B |\n|---|---|\n| 1 | 2 |",
			want: "<table><p></td><td> A </td><td> B </td><td><br></td></tr></thead><tbody><tr>---</td><td><br></td><td> 1 </td><td> 2 </td><td></p></tbody></table>",
		},
		{
			name: "empty cells collapse",
			src:  "a || b",
			want: "<table><p>a </td><td> b</p></tbody></table>",
		},
		{
			name: "literal table tag becomes thead",
			src:  "<table>x",
			want: "<table><p><thead>x</p></tbody></table>",
		},
		{
			name: "stray pipe in heading",
			src:  "# a|b",
			want: "<table><p><h1>a</td><td>b</h1></p></tbody></table>",
		},
		{
			name: "table guard without pipes",
			src:  "plain",
			opts: []ConvertOption{WithTableGuard(true)},
			want: "<p>plain</p>",
		},
		{
			name: "table guard with pipes",
			src:  "a|b",
			opts: []ConvertOption{WithTableGuard(true)},
			want: "<table><p>a</td><td>b</p></tbody></table>",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Convert(tc.src, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Convert(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

var emptyCell = regexp.MustCompile(`<td>\s*</td>`)

func TestConvertTableSections(t *testing.T) {
	src := strings.Join([]string{
		"| Name | State |",
		"|---|---|",
		"| build | green |",
	}, "\n")
	out := Convert(src)
	if n := strings.Count(out, "</thead><tbody>"); n != 1 {
		t.Fatalf("expected one head/body transition, got %d in %q", n, out)
	}
	if n := strings.Count(out, "<table>"); n != 1 {
		t.Fatalf("expected one table, got %d in %q", n, out)
	}
	if !strings.HasSuffix(out, "</tbody></table>") {
		t.Fatalf("missing body close: %q", out)
	}
	split := strings.Index(out, "</thead><tbody>")
	head, body := out[:split], out[split:]
	for _, cell := range []string{"Name", "State"} {
		if !strings.Contains(head, cell) {
			t.Fatalf("header cell %q not in head section %q", cell, head)
		}
	}
	for _, cell := range []string{"build", "green"} {
		if !strings.Contains(body, cell) {
			t.Fatalf("data cell %q not in body section %q", cell, body)
		}
	}
	if emptyCell.MatchString(out) {
		t.Fatalf("empty cell left in %q", out)
	}
}

func TestConvertSeparatorConvertedOnce(t *testing.T) {
	out := Convert("|---|---|\n|---|---|")
	if n := strings.Count(out, "</thead><tbody><tr>"); n != 1 {
		t.Fatalf("expected one body opener, got %d in %q", n, out)
	}
	if n := strings.Count(out, separatorCells); n != 1 {
		t.Fatalf("expected the second separator row untouched, got %d in %q", n, out)
	}
}

func TestConvertIsTotal(t *testing.T) {
	inputs := []string{
		"\xff\xfe|**",
		"****",
		"**unterminated",
		"|||||",
		"\n\n\n",
		"# \n## \n### ",
		"</td><td>---</td><td>",
		"<tr><td><table><table>",
		strings.Repeat("| x ", 1000),
	}
	for _, in := range inputs {
		out := Convert(in)
		if !strings.HasPrefix(out, "<table>") || !strings.HasSuffix(out, "</tbody></table>") {
			t.Fatalf("Convert(%q) lost its wrapper: %q", in, out)
		}
	}
}

func TestConvertConcurrent(t *testing.T) {
	src := "# T\n\n**b** x\n\n| a | b |\n|---|---|\n| 1 | 2 |"
	want := Convert(src)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Convert(src); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Convert differs: %q", got)
	}
}

func TestReplaceFirst(t *testing.T) {
	re := regexp.MustCompile(`x(\d)`)
	if got := replaceFirst(re, "x1 x2", "<${1}>"); got != "<1> x2" {
		t.Fatalf("unexpected replacement: %q", got)
	}
	if got := replaceFirst(re, "none", "<${1}>"); got != "none" {
		t.Fatalf("unexpected replacement without match: %q", got)
	}
}
