package ronlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// categoryColors maps the Keep a Changelog categories to terminal
// colors. Unknown categories fall back to the default color.
var categoryColors = map[string]*color.Color{
	"Added":      color.New(color.FgGreen),
	"Changed":    color.New(color.FgBlue),
	"Deprecated": color.New(color.FgRed),
	"Removed":    color.New(color.FgRed),
	"Fixed":      color.New(color.FgYellow),
	"Security":   color.New(color.FgMagenta),
}

// FormatOptions controls the terminal output of an aggregate log.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
	Last     int  // Number of sections to show (0 = all)
}

// FormatTerminal writes the aggregate log's sections to the writer,
// most recent version first.
func FormatTerminal(l *Log, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	sections := l.Sections
	if opts.Last > 0 && opts.Last < len(sections) {
		sections = sections[:opts.Last]
	}

	for i := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatSection(&sections[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", sections[i].Version, err)
		}
	}

	return nil
}

func formatSection(s *Section, w io.Writer, opts FormatOptions, width int) error {
	header := fmt.Sprintf("v%s (%s)", s.Version, dateStamp(s.Released))
	if opts.Plain {
		fmt.Fprintf(w, "## %s\n", header)
	} else {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintf(w, "## %s\n", bold(header))
	}

	if s.HasIntroduction && s.Introduction != "" {
		fmt.Fprintf(w, "\n%s\n", s.Introduction)
	}

	for _, category := range s.Changes.Categories() {
		if err := formatCategory(category, s.Changes.Entries(category), w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

func formatCategory(category string, entries []string, w io.Writer, opts FormatOptions, width int) error {
	if opts.Plain {
		fmt.Fprintf(w, "\n### %s\n", category)
	} else {
		colored := styleFor(category).SprintFunc()
		fmt.Fprintf(w, "\n%s\n", colored(category))
	}

	prefix := "  - "
	for _, entry := range entries {
		text := wrapText(entry, width-len(prefix), "    ")
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, text); err != nil {
			return err
		}
	}
	return nil
}

func styleFor(category string) *color.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return color.New(color.FgCyan)
}

// dateStamp reduces an RFC 3339 timestamp to its date part.
func dateStamp(released string) string {
	if t, _, found := strings.Cut(released, "T"); found {
		return t
	}
	return released
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
