package harvest

import (
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/ariel-frischer/ronlog/internal/fragment"
)

// Source selects which part of a commit message the splitter reads.
type Source int

const (
	// SourceSummary reads the commit summary line.
	SourceSummary Source = iota
	// SourceBody reads the commit message body.
	SourceBody
)

// Split isolates a category token from the chosen source text of a
// commit. The first occurrence of the delimiter separates the category
// from the description; both sides are trimmed. A commit whose source is
// empty or lacks the delimiter is skipped, reported through ok - commits
// unrelated to changelog-worthy changes are expected and common.
func Split(c Commit, delimiter string, source Source) (category, description string, ok bool) {
	text := c.Summary
	if source == SourceBody {
		text = c.Body
	}
	text = strings.TrimSpace(text)
	if text == "" || delimiter == "" {
		return "", "", false
	}

	category, description, found := strings.Cut(text, delimiter)
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(category), strings.TrimSpace(description), true
}

// keepAChangelogCategories is the category preset of the Keep a Changelog
// convention.
var keepAChangelogCategories = []string{
	"Added", "Changed", "Deprecated", "Fixed", "Removed", "Security",
}

// Options configures the fragment builder.
type Options struct {
	// Delimiter separates the category token from the description.
	Delimiter string
	// Source selects summary or body as the splitter input.
	Source Source
	// Categories restricts harvesting to a whitelist. Empty means any
	// category is accepted.
	Categories []string
	// KeepAChangelog seeds the whitelist with the Keep a Changelog
	// preset before the configured categories.
	KeepAChangelog bool
	// Fallback receives entries whose category is not whitelisted, and
	// whole messages without the delimiter. Empty disables the fallback.
	Fallback string
	// Links is the external link-definition table. A description
	// mentioning a link name gets that reference recorded for the
	// serializer's definition block; unresolved names pass through
	// verbatim.
	Links []fragment.Reference
}

// allowed returns the effective category whitelist.
func (o *Options) allowed() []string {
	if !o.KeepAChangelog {
		return o.Categories
	}
	return append(append([]string{}, keepAChangelogCategories...), o.Categories...)
}

// Build consumes harvested commits in order and accumulates a fragment.
// Category order in the result is the order of first appearance across
// the commit sequence; entries within a category keep harvest order.
func Build(commits []Commit, opts Options) *fragment.Fragment {
	f := fragment.New()
	allowed := opts.allowed()

	for _, c := range commits {
		category, description, ok := Split(c, opts.Delimiter, opts.Source)
		switch {
		case ok && permitted(allowed, category):
			f.Append(category, description)
			resolveLinks(f, description, opts.Links)
		case ok && opts.Fallback != "":
			f.Append(opts.Fallback, description)
			resolveLinks(f, description, opts.Links)
		case !ok && opts.Fallback != "":
			text := sourceText(c, opts.Source)
			if text == "" {
				continue
			}
			f.Append(opts.Fallback, text)
			resolveLinks(f, text, opts.Links)
		default:
			logger.Debugf("skipping commit %q: no category", c.Summary)
		}
	}

	return f
}

func sourceText(c Commit, source Source) string {
	if source == SourceBody {
		return strings.TrimSpace(c.Body)
	}
	return strings.TrimSpace(c.Summary)
}

func permitted(allowed []string, category string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == category {
			return true
		}
	}
	return false
}

// resolveLinks records a reference for every link-table name the
// description mentions.
func resolveLinks(f *fragment.Fragment, description string, links []fragment.Reference) {
	for _, link := range links {
		if strings.Contains(description, link.Name) {
			f.AddReference(link.Name, link.Target)
		}
	}
}
