package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"pkt.systems/mdpage"
	"pkt.systems/version"
)

const (
	defaultThemeName  = "default"
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func init() {
	version.SetDefaultModule("pkt.systems/mdpage")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		configPath  string
		listThemes  bool
		listEngines bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("mdpage", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("source", "s", mdpage.DefaultSourcePath, "Tracker Markdown file used when no input is given")
	flags.String("fallback", mdpage.DefaultFallback, "Markdown rendered when the source file does not exist")
	flags.String("title", mdpage.DefaultTitle, "Page title")
	flags.StringP("theme", "t", defaultThemeName, "Theme name")
	flags.StringP("engine", "e", mdpage.EngineLegacy, "Conversion engine: legacy|goldmark")
	flags.StringP("output", "o", "", "Output file instead of stdout")
	flags.String("serve", "", "Serve the page over HTTP on this address (e.g. :8080)")
	flags.Bool("strip-front-matter", false, "Drop a leading YAML/TOML/JSON front matter block")
	flags.Bool("all-bold", false, "Convert every **bold** pair (legacy engine)")
	flags.Bool("table-guard", false, "Skip table conversion for documents without '|' (legacy engine)")
	flags.Bool("sanitize", false, "Sanitize goldmark output")
	flags.Bool("fragment-only", false, "Write only the HTML fragment, without the page shell")
	flags.Bool("strict", false, "Reject invalid UTF-8 or binary input instead of rendering it")
	flags.String("log-level", "info", "Log level: trace|debug|info|warn|error")
	flags.String("log-format", "console", "Log format: console|json|pretty")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (yaml|toml|json)")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&listEngines, "list-engines", false, "List available engines")
	flags.BoolVarP(&showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdpage [flags] [input]\n")
		fmt.Fprintln(stderr, "\nInput may be a path, a file:// URL or an http(s) URL.")
		fmt.Fprintln(stderr, "Without input the --source file is rendered, or the fallback if it is missing.")
	fmt.Fprintln(stderr, "An explicit input path must exist.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if listThemes {
		printNames(stdout, mdpage.AvailableThemes())
		return 0
	}
	if listEngines {
		printNames(stdout, mdpage.AvailableEngines())
		return 0
	}

	cfg, err := loadSettings(viper.New(), flags, configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	inputs := flags.Args()
	if len(inputs) > 1 {
		fmt.Fprintf(stderr, "expected at most one input, got %d\n\n", len(inputs))
		flags.Usage()
		return 2
	}

	theme, ok := mdpage.ThemeByName(cfg.theme)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", cfg.theme)
		printNames(stderr, mdpage.AvailableThemes())
		return 2
	}
	engine, err := mdpage.EngineByName(cfg.engine, mdpage.EngineOptions{
		Convert:  convertOptions(cfg),
		Sanitize: cfg.sanitize,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printNames(stderr, mdpage.AvailableEngines())
		return 2
	}

	if cfg.serve != "" {
		logger, err := mdpage.NewLogger(mdpage.LogConfig{Level: cfg.logLevel, Format: cfg.logFormat, Name: "mdpage"})
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 2
		}
		source := cfg.source
		if len(inputs) == 1 {
			if isHTTPURL(inputs[0]) {
				fmt.Fprintln(stderr, "--serve needs a local file, not a URL")
				return 2
			}
			source = filePath(inputs[0])
		}
		handler := mdpage.NewHandler(mdpage.HandlerConfig{
			SourcePath:       normalizePath(source),
			Fallback:         cfg.fallback,
			Title:            cfg.title,
			Theme:            theme,
			Engine:           engine,
			StripFrontMatter: cfg.stripFrontMatter,
			Validate:         cfg.strict,
			Logger:           logger,
		})
		if err := serve(ctx, cfg.serve, handler, logger); err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	}

	writer, closeOut, err := resolveOutput(cfg.output, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	if isTerminal(writer) {
		fmt.Fprintln(stderr, "warning: writing HTML to a terminal; use -o/--output to write a file")
	}

	req := mdpage.RenderRequest{
		Writer:           writer,
		Title:            cfg.title,
		Theme:            theme,
		Engine:           engine,
		StripFrontMatter: cfg.stripFrontMatter,
		Validate:         cfg.strict,
		FragmentOnly:     cfg.fragmentOnly,
	}
	if len(inputs) == 1 && isHTTPURL(inputs[0]) {
		if err := mdpage.HTTPRender(ctx, mdpage.HTTPRenderRequest{URL: inputs[0], Render: req}); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	if len(inputs) == 1 {
		f, err := os.Open(normalizePath(filePath(inputs[0])))
		if err != nil {
			fmt.Fprintf(stderr, "read input: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		req.Reader = f
	} else {
		src, err := mdpage.ReadSource(normalizePath(cfg.source), cfg.fallback)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		req.Reader = strings.NewReader(src)
	}
	if err := mdpage.Render(req); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func convertOptions(cfg settings) []mdpage.ConvertOption {
	return []mdpage.ConvertOption{
		mdpage.WithAllBold(cfg.allBold),
		mdpage.WithTableGuard(cfg.tableGuard),
	}
}

func serve(ctx context.Context, addr string, handler http.Handler, logger mdpage.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printNames(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// filePath resolves file:// URLs to paths and returns anything else as is.
func filePath(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return raw
	}
	path := u.Path
	if path == "" {
		path = u.Host
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return path
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
