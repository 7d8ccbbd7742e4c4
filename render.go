package mdpage

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader io.Reader
	Writer io.Writer
	Title  string
	Theme  Theme
	// Engine defaults to the legacy engine with Options applied.
	Engine           Engine
	Options          []ConvertOption
	StripFrontMatter bool
	// Validate rejects invalid UTF-8 and binary input. Off by default so any
	// text still renders best-effort.
	Validate bool
	// FragmentOnly skips the page shell and writes only the converted HTML.
	FragmentOnly bool
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Render reads Markdown from Reader and writes an HTML page to Writer.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)
	if _, err := buf.ReadFrom(req.Reader); err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	fragment, err := renderFragment(buf.Bytes(), req)
	if err != nil {
		return err
	}
	if req.FragmentOnly {
		if _, err := io.WriteString(req.Writer, fragment); err != nil {
			return fmt.Errorf("render: write: %w", err)
		}
		return nil
	}
	if err := WritePage(req.Writer, Page{Title: req.Title, Theme: req.Theme, Fragment: fragment}); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func renderFragment(src []byte, req RenderRequest) (string, error) {
	if req.Validate {
		if err := ValidateInput(src); err != nil {
			return "", fmt.Errorf("render: %w", err)
		}
	}
	if req.StripFrontMatter {
		src = StripFrontMatter(src)
	}
	engine := req.Engine
	if engine == nil {
		engine = NewLegacyEngine(req.Options...)
	}
	out, err := engine.Convert(src)
	if err != nil {
		return "", fmt.Errorf("render: %s: %w", engine.Name(), err)
	}
	return string(out), nil
}
