package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// settings is the resolved configuration after defaults, config file,
// environment and flags have been merged.
type settings struct {
	source           string
	fallback         string
	title            string
	theme            string
	engine           string
	output           string
	serve            string
	stripFrontMatter bool
	allBold          bool
	tableGuard       bool
	sanitize         bool
	fragmentOnly     bool
	strict           bool
	logLevel         string
	logFormat        string
}

// boundFlags maps config keys to flag names.
var boundFlags = map[string]string{
	"source":             "source",
	"fallback":           "fallback",
	"title":              "title",
	"theme":              "theme",
	"engine":             "engine",
	"output":             "output",
	"serve":              "serve",
	"strip_front_matter": "strip-front-matter",
	"all_bold":           "all-bold",
	"table_guard":        "table-guard",
	"sanitize":           "sanitize",
	"fragment_only":      "fragment-only",
	"strict":             "strict",
	"log_level":          "log-level",
	"log_format":         "log-format",
}

// loadSettings resolves configuration with precedence:
// flag defaults < config file < MDPAGE_* env < flags set on the command line.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet, configPath string) (settings, error) {
	for key, name := range boundFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			return settings{}, fmt.Errorf("config: flag %q not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return settings{}, fmt.Errorf("config: bind %s: %w", name, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdpage"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdpage"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("mdpage")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return settings{
		source:           strings.TrimSpace(v.GetString("source")),
		fallback:         v.GetString("fallback"),
		title:            v.GetString("title"),
		theme:            v.GetString("theme"),
		engine:           v.GetString("engine"),
		output:           strings.TrimSpace(v.GetString("output")),
		serve:            strings.TrimSpace(v.GetString("serve")),
		stripFrontMatter: v.GetBool("strip_front_matter"),
		allBold:          v.GetBool("all_bold"),
		tableGuard:       v.GetBool("table_guard"),
		sanitize:         v.GetBool("sanitize"),
		fragmentOnly:     v.GetBool("fragment_only"),
		strict:           v.GetBool("strict"),
		logLevel:         v.GetString("log_level"),
		logFormat:        v.GetString("log_format"),
	}, nil
}
