package mdpage

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrUnknownEngine reports an engine name that is not registered.
var ErrUnknownEngine = errors.New("unknown engine")

const (
	// EngineLegacy is the substitution pipeline implemented by Convert.
	EngineLegacy = "legacy"
	// EngineGoldmark renders GitHub Flavored Markdown with goldmark.
	EngineGoldmark = "goldmark"
)

// Engine converts Markdown source into an HTML fragment.
type Engine interface {
	Name() string
	Convert(src []byte) ([]byte, error)
}

// EngineOptions configures the engines returned by EngineByName.
type EngineOptions struct {
	// Convert is applied by the legacy engine.
	Convert []ConvertOption
	// Sanitize scrubs goldmark output with a user-generated-content policy.
	Sanitize bool
}

type legacyEngine struct {
	opts []ConvertOption
}

// NewLegacyEngine returns an Engine backed by Convert.
func NewLegacyEngine(opts ...ConvertOption) Engine {
	return legacyEngine{opts: opts}
}

func (e legacyEngine) Name() string { return EngineLegacy }

func (e legacyEngine) Convert(src []byte) ([]byte, error) {
	return []byte(Convert(string(src), e.opts...)), nil
}

type goldmarkEngine struct {
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

// NewGoldmarkEngine returns an Engine rendering GFM tables, strikethrough,
// task lists and autolinks. With sanitize set, raw HTML is dropped and the
// output is passed through bluemonday's UGC policy.
func NewGoldmarkEngine(sanitize bool) Engine {
	engineOptions := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	}
	e := goldmarkEngine{}
	if sanitize {
		e.sanitize = bluemonday.UGCPolicy()
	} else {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	e.md = goldmark.New(engineOptions...)
	return e
}

func (e goldmarkEngine) Name() string { return EngineGoldmark }

func (e goldmarkEngine) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("goldmark: %w", err)
	}
	if e.sanitize != nil {
		return e.sanitize.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var engineFactories = map[string]func(EngineOptions) Engine{
	EngineLegacy: func(o EngineOptions) Engine {
		return NewLegacyEngine(o.Convert...)
	},
	EngineGoldmark: func(o EngineOptions) Engine {
		return NewGoldmarkEngine(o.Sanitize)
	},
}

// AvailableEngines returns the registered engine names.
func AvailableEngines() []string {
	names := make([]string, 0, len(engineFactories))
	for name := range engineFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EngineByName builds an engine. An empty name selects the legacy engine.
func EngineByName(name string, opts EngineOptions) (Engine, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		normalized = EngineLegacy
	}
	factory, ok := engineFactories[normalized]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, name)
	}
	return factory(opts), nil
}
