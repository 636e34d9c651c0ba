// Package config provides hierarchical configuration management for
// ronlog using koanf. Configuration is loaded with priority: environment
// variables > project config (.ronlog.yml) > user config
// (~/.config/ronlog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ariel-frischer/ronlog/internal/fragment"
)

// Configuration holds the ronlog tool configuration.
type Configuration struct {
	// Delimiter separates the category token from the change
	// description in commit messages.
	Delimiter string `koanf:"delimiter"`

	// Format is the fragment output encoding: md, rst, or ron.
	Format string `koanf:"format"`

	// Heading is the heading level (1-3) of the human-readable markups.
	Heading int `koanf:"heading"`

	// OutputDir receives generated fragment files.
	OutputDir string `koanf:"output_dir"`

	// Changelog is the path of the aggregate log file.
	Changelog string `koanf:"changelog"`

	// Categories restricts harvesting to a whitelist of categories.
	Categories []string `koanf:"categories"`

	// FallbackCategory collects entries without a whitelisted category.
	FallbackCategory string `koanf:"fallback_category"`

	// KeepAChangelog seeds the whitelist with the Keep a Changelog
	// preset.
	KeepAChangelog bool `koanf:"keep_a_changelog"`

	// LinksFile points to an optional YAML link-definition table
	// (name: target).
	LinksFile string `koanf:"links_file"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .ronlog.yml)
	ProjectConfigPath string
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if path, err := UserConfigPath(); err == nil && fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading user config %s: %w", path, err)
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if fileExists(projectPath) {
		if err := k.Load(file.Provider(projectPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading project config %s: %w", projectPath, err)
		}
	}

	if err := k.Load(env.Provider("RONLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value constraints the schema cannot express.
func Validate(cfg *Configuration) error {
	if cfg.Heading < 1 || cfg.Heading > 3 {
		return fmt.Errorf("config: heading level %d is out of range (1..=3)", cfg.Heading)
	}
	switch cfg.Format {
	case "md", "rst", "ron":
	default:
		return fmt.Errorf("config: extension %q is not supported, yet", cfg.Format)
	}
	return nil
}

// envTransform maps RONLOG_FALLBACK_CATEGORY to fallback_category.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RONLOG_"))
}

// UserConfigPath returns the XDG-compliant user config path.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ronlog", "config.yml"), nil
}

// ProjectConfigPath returns the project-local config path.
func ProjectConfigPath() string {
	return ".ronlog.yml"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadLinks reads a YAML link-definition table (name: target) and
// returns its entries sorted by name, so the reference order is stable
// across runs.
func LoadLinks(path string) ([]fragment.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading links file %s: %w", path, err)
	}

	table := make(map[string]string)
	if err := yamlv3.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing links file %s: %w", path, err)
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	links := make([]fragment.Reference, 0, len(names))
	for _, name := range names {
		links = append(links, fragment.Reference{Name: name, Target: table[name]})
	}
	return links, nil
}
