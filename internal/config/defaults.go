package config

// Defaults returns the default configuration values applied before any
// file or environment source.
func Defaults() map[string]any {
	return map[string]any{
		"delimiter":         ":",
		"format":            "rst",
		"heading":           3,
		"output_dir":        ".",
		"changelog":         "CHANGELOG.ron",
		"categories":        []string{},
		"fallback_category": "",
		"keep_a_changelog":  false,
		"links_file":        "",
		"verbose":           false,
	}
}

// DefaultConfigTemplate returns a commented config template for new
// projects.
func DefaultConfigTemplate() string {
	return `# ronlog configuration
# Priority: environment (RONLOG_*) > .ronlog.yml > ~/.config/ronlog/config.yml

delimiter: ":"          # Separates category from description in commit messages
format: rst             # Fragment encoding: md | rst | ron
heading: 3              # Heading level of md/rst fragments (1-3)
output_dir: .           # Directory for generated fragment files
changelog: CHANGELOG.ron  # Aggregate log file

categories: []          # Category whitelist (empty = accept all)
fallback_category: ""   # Category for unmatched commits (empty = skip them)
keep_a_changelog: false # Seed the whitelist with the Keep a Changelog preset

links_file: ""          # Optional YAML link table (name: target)
verbose: false          # Debug logging
`
}
