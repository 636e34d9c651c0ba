package fragment

import (
	"fmt"
	"strings"
	"time"
)

// Encoding selects the output format of a serialized fragment.
type Encoding int

const (
	// EncodingMarkdown renders release-notes style Markdown (write-only).
	EncodingMarkdown Encoding = iota
	// EncodingRST renders reStructuredText (write-only).
	EncodingRST
	// EncodingRON renders the lossless machine-readable notation the
	// aggregate log assembler consumes.
	EncodingRON
)

// ParseEncoding maps a file extension to its encoding.
func ParseEncoding(ext string) (Encoding, error) {
	switch ext {
	case "md":
		return EncodingMarkdown, nil
	case "rst":
		return EncodingRST, nil
	case "ron":
		return EncodingRON, nil
	default:
		return 0, fmt.Errorf("extension %q is not supported, yet", ext)
	}
}

// Ext returns the file extension of the encoding.
func (e Encoding) Ext() string {
	switch e {
	case EncodingMarkdown:
		return "md"
	case EncodingRST:
		return "rst"
	default:
		return "ron"
	}
}

// String returns the extension; encodings are named by the files they
// produce.
func (e Encoding) String() string { return e.Ext() }

// Filename computes the canonical name of a persisted fragment:
// <timestamp>_<username>_<branch>.<ext> with second-level resolution.
// Two invocations in the same second by the same user on the same branch
// collide on purpose; persistence merges instead of duplicating files.
func Filename(now time.Time, user, branch string, enc Encoding) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		now.Format("20060102_150405"),
		sanitize(user),
		sanitize(lastSegment(branch)),
		enc.Ext(),
	)
}

// lastSegment reduces a ref name such as refs/heads/feature/x to its
// final path segment.
func lastSegment(branch string) string {
	if branch == "" {
		return "HEAD"
	}
	parts := strings.Split(branch, "/")
	return parts[len(parts)-1]
}

// sanitize collapses runs of non-alphanumeric runes into single
// underscores so the name stays filesystem-safe.
func sanitize(s string) string {
	var sb strings.Builder
	pending := false
	for _, r := range s {
		alnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if alnum {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pending = false
			sb.WriteRune(r)
		} else {
			pending = true
		}
	}
	return sb.String()
}
