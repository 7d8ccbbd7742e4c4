package mdpage

import (
	"fmt"
	"html/template"
	"io"

	"github.com/muesli/reflow/indent"
)

// DefaultTitle is the page title used when Page.Title is empty.
const DefaultTitle = "Project Tracker"

// Page is a rendered fragment plus the shell around it.
type Page struct {
	Title    string
	Theme    Theme
	Fragment string
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
{{.CSS}}    </style>
</head>
<body>
    {{.Body}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// WritePage writes a complete HTML document embedding page.Fragment verbatim.
func WritePage(w io.Writer, page Page) error {
	if w == nil {
		return fmt.Errorf("write page: writer is nil")
	}
	title := page.Title
	if title == "" {
		title = DefaultTitle
	}
	data := pageData{
		Title: title,
		CSS:   template.CSS(indent.String(StyleSheet(page.Theme), 8)),
		Body:  template.HTML(page.Fragment),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
