package mdpage

import (
	"sort"
	"strings"
)

// Style is a CSS declaration block body, e.g. "color: #333;".
type Style struct {
	Declarations string
}

// Styles groups the CSS rules emitted into the page shell.
type Styles struct {
	Body       Style
	Heading    Style
	Table      Style
	Cell       Style
	HeaderCell Style
	EvenRow    Style
}

// Theme provides named styles for the page shell.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(decls ...string) Style {
	var b strings.Builder
	for _, d := range decls {
		if d == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d)
	}
	return Style{Declarations: b.String()}
}

type palette struct {
	font       string
	background string
	text       string
	heading    string
	border     string
	headerBg   string
	stripeBg   string
}

const defaultFont = "sans-serif"

func stylesFromPalette(p palette) Styles {
	font := p.font
	if font == "" {
		font = defaultFont
	}
	return Styles{
		Body: style(
			"font-family: "+font+";",
			"line-height: 1.6;",
			"color: "+p.text+";",
			"max-width: 800px;",
			"margin: 0 auto;",
			"padding: 20px;",
			"background-color: "+p.background+";",
		),
		Heading:    style("color: " + p.heading + ";"),
		Table:      style("border-collapse: collapse;", "width: 100%;"),
		Cell:       style("border: 1px solid "+p.border+";", "padding: 8px;", "text-align: left;"),
		HeaderCell: style("background-color: " + p.headerBg + ";"),
		EvenRow:    style("background-color: " + p.stripeBg + ";"),
	}
}

var (
	paletteDefault        = palette{background: "#f4f4f4", text: "#333", heading: "#333", border: "#ddd", headerBg: "#e9e9e9", stripeBg: "#f9f9f9"}
	paletteDark           = palette{background: "#1e1e1e", text: "#d4d4d4", heading: "#e0e0e0", border: "#3c3c3c", headerBg: "#2d2d2d", stripeBg: "#252526"}
	palettePaper          = palette{font: "Georgia, serif", background: "#fbf8f1", text: "#2b2b2b", heading: "#1a1a1a", border: "#d8d0c0", headerBg: "#efe8d8", stripeBg: "#f6f1e6"}
	paletteGithubLight    = palette{font: "-apple-system, 'Segoe UI', Helvetica, Arial, sans-serif", background: "#ffffff", text: "#1f2328", heading: "#1f2328", border: "#d0d7de", headerBg: "#f6f8fa", stripeBg: "#f6f8fa"}
	paletteGithubDark     = palette{font: "-apple-system, 'Segoe UI', Helvetica, Arial, sans-serif", background: "#0d1117", text: "#e6edf3", heading: "#e6edf3", border: "#30363d", headerBg: "#161b22", stripeBg: "#161b22"}
	paletteSolarizedLight = palette{background: "#fdf6e3", text: "#657b83", heading: "#586e75", border: "#eee8d5", headerBg: "#eee8d5", stripeBg: "#f5efdc"}
	paletteSolarizedDark  = palette{background: "#002b36", text: "#839496", heading: "#93a1a1", border: "#073642", headerBg: "#073642", stripeBg: "#03313d"}
)

var builtinThemes = map[string]Theme{
	"default":         theme{name: "default", styles: stylesFromPalette(paletteDefault)},
	"dark":            theme{name: "dark", styles: stylesFromPalette(paletteDark)},
	"paper":           theme{name: "paper", styles: stylesFromPalette(palettePaper)},
	"github-light":    theme{name: "github-light", styles: stylesFromPalette(paletteGithubLight)},
	"github-dark":     theme{name: "github-dark", styles: stylesFromPalette(paletteGithubDark)},
	"solarized-light": theme{name: "solarized-light", styles: stylesFromPalette(paletteSolarizedLight)},
	"solarized-dark":  theme{name: "solarized-dark", styles: stylesFromPalette(paletteSolarizedDark)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// StyleSheet renders the CSS rules for a theme. A nil theme renders the default.
func StyleSheet(t Theme) string {
	if t == nil {
		t = DefaultTheme()
	}
	s := t.Styles()
	rules := []struct {
		selector string
		style    Style
	}{
		{"body", s.Body},
		{"h1, h2, h3", s.Heading},
		{"table", s.Table},
		{"th, td", s.Cell},
		{"th", s.HeaderCell},
		{"tr:nth-child(even)", s.EvenRow},
	}
	var b strings.Builder
	for _, r := range rules {
		if r.style.Declarations == "" {
			continue
		}
		b.WriteString(r.selector)
		b.WriteString(" { ")
		b.WriteString(r.style.Declarations)
		b.WriteString(" }\n")
	}
	return b.String()
}
