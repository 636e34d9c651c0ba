package fragment

import (
	"fmt"
	"strings"
)

// Serialize renders the fragment in the requested encoding. The heading
// level (1 to 3) only affects the human-readable markups; the
// machine-readable notation ignores it.
func Serialize(f *Fragment, enc Encoding, heading int) (string, error) {
	if heading < 1 || heading > 3 {
		return "", fmt.Errorf("heading level %d is out of range (1..=3)", heading)
	}

	switch enc {
	case EncodingMarkdown:
		return renderMarkdown(f, heading), nil
	case EncodingRST:
		return renderRST(f, heading), nil
	case EncodingRON:
		return EncodeRON(f), nil
	default:
		return "", fmt.Errorf("unknown encoding %d", enc)
	}
}

// renderMarkdown writes one ATX heading per category in fragment order,
// one list item per entry in fragment order, and a trailing link
// definition block.
func renderMarkdown(f *Fragment, heading int) string {
	var sb strings.Builder

	for i, category := range f.Categories() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat("#", heading))
		sb.WriteString(" ")
		sb.WriteString(category)
		sb.WriteString("\n\n")
		for _, entry := range f.Entries(category) {
			sb.WriteString("- ")
			sb.WriteString(entry)
			sb.WriteString("\n")
		}
	}

	if refs := f.References(); len(refs) > 0 {
		sb.WriteString("\n")
		for _, ref := range refs {
			fmt.Fprintf(&sb, "[%s]:  %s\n", ref.Name, ref.Target)
		}
	}

	return sb.String()
}

// renderRST writes each category underlined with the adornment matching
// the heading level, one list item per entry, and a trailing link block.
func renderRST(f *Fragment, heading int) string {
	adornment := map[int]string{1: "=", 2: "-", 3: "."}[heading]

	var sb strings.Builder

	for i, category := range f.Categories() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(category)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(adornment, len(category)))
		sb.WriteString("\n\n")
		for _, entry := range f.Entries(category) {
			sb.WriteString("- ")
			sb.WriteString(entry)
			sb.WriteString("\n")
		}
	}

	if refs := f.References(); len(refs) > 0 {
		sb.WriteString("\n")
		for _, ref := range refs {
			fmt.Fprintf(&sb, ".. _%s:  %s\n", ref.Name, ref.Target)
		}
	}

	return sb.String()
}
