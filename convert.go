package mdpage

import (
	"regexp"
	"strings"
)

var (
	reHeading1  = regexp.MustCompile(`(?m)^# (.*)$`)
	reHeading2  = regexp.MustCompile(`(?m)^## (.*)$`)
	reHeading3  = regexp.MustCompile(`(?m)^### (.*)$`)
	reBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reEmptyCell = regexp.MustCompile(`</td><td>\s*</td>`)
)

const (
	cellBoundary   = "</td><td>"
	separatorCells = "</td><td>---</td><td>"
	headerToBody   = "</td></tr><tr><td>"
	rowOpen        = "<tr><td>"
	bodyOpen       = "</thead><tbody><tr>"
	tableOpen      = "<table>"
	tableHeadOpen  = "<thead>"
	tableClose     = "</tbody></table>"
)

// Convert turns Markdown-flavored text into an HTML fragment.
//
// The conversion is a fixed sequence of substitutions: headings (levels 1-3),
// bold, paragraphs and line breaks, then tables. Every step works on the
// output of the previous one. Convert never fails; malformed input simply
// yields malformed HTML. Only the first separator row is converted, and only
// the first bold pair unless WithAllBold is given.
func Convert(markdown string, opts ...ConvertOption) string {
	cfg := newConvertConfig(opts)
	out := convertHeadings(markdown)
	out = convertBold(out, cfg.allBold)
	out = convertParagraphs(out)
	if cfg.tableGuard && !strings.Contains(out, "|") {
		return out
	}
	return convertTables(out)
}

func convertHeadings(s string) string {
	s = reHeading1.ReplaceAllString(s, "<h1>${1}</h1>")
	s = reHeading2.ReplaceAllString(s, "<h2>${1}</h2>")
	return reHeading3.ReplaceAllString(s, "<h3>${1}</h3>")
}

func convertBold(s string, all bool) string {
	if all {
		return reBold.ReplaceAllString(s, "<strong>${1}</strong>")
	}
	return replaceFirst(reBold, s, "<strong>${1}</strong>")
}

func convertParagraphs(s string) string {
	s = "<p>" + strings.ReplaceAll(s, "\n\n", "</p><p>") + "</p>"
	return strings.ReplaceAll(s, "\n", "<br>")
}

func convertTables(s string) string {
	s = strings.ReplaceAll(s, "|", cellBoundary)
	s = strings.Replace(s, separatorCells, headerToBody, 1)
	s = strings.Replace(s, rowOpen, bodyOpen, 1)
	s = strings.Replace(s, tableOpen, tableHeadOpen, 1)
	s = tableOpen + s + tableClose
	return reEmptyCell.ReplaceAllString(s, "</td>")
}

// replaceFirst expands template for the leftmost match of re only.
func replaceFirst(re *regexp.Regexp, src, template string) string {
	m := re.FindStringSubmatchIndex(src)
	if m == nil {
		return src
	}
	var b strings.Builder
	b.Grow(len(src) + len(template))
	b.WriteString(src[:m[0]])
	b.Write(re.ExpandString(nil, template, src, m))
	b.WriteString(src[m[1]:])
	return b.String()
}
