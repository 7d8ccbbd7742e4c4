// Package mdpage renders a Markdown tracker file as a standalone HTML page.
//
// The heart of the package is Convert, a fixed chain of substitutions that
// approximates Markdown: headings (levels 1-3), bold, paragraphs and line
// breaks, and pipe tables. It is not a CommonMark implementation and keeps a
// few quirks on purpose: only the first **bold** pair and the first separator
// row are converted, and every '|' in the document is treated as a table cell
// boundary. Options and the goldmark Engine exist for callers that want
// different behavior.
//
// Example:
//
//	src, err := mdpage.ReadSource("tracker/project_tracker.md", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = mdpage.WritePage(os.Stdout, mdpage.Page{
//		Title:    "Project Tracker",
//		Theme:    mdpage.DefaultTheme(),
//		Fragment: mdpage.Convert(src),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Render and HTTPRender wrap the same steps for io.Reader and HTTP(S)
// sources, and NewHandler serves the page, re-reading the file on every
// request.
package mdpage
