package ronlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/ronlog/internal/fragment"
	"github.com/ariel-frischer/ronlog/internal/version"
)

func formattedLog(t *testing.T) *Log {
	t.Helper()

	first := fragment.New()
	first.Append("Added", "feature one")
	first.Append("Fixed", "a crash")
	second := fragment.New()
	second.Append("Changed", "the default")

	l := New("", false)
	require.NoError(t, l.Insert(version.MustParse("0.1.0"), "2025-01-01T00:00:00Z", first))
	require.NoError(t, l.Insert(version.MustParse("0.2.0"), "2026-08-30T12:00:00Z", second))
	return l
}

func TestFormatTerminal_Plain(t *testing.T) {
	var buf strings.Builder
	err := FormatTerminal(formattedLog(t), &buf, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)

	want := "## v0.2.0 (2026-08-30)\n" +
		"\n### Changed\n" +
		"  - the default\n" +
		"\n" +
		"## v0.1.0 (2025-01-01)\n" +
		"\n### Added\n" +
		"  - feature one\n" +
		"\n### Fixed\n" +
		"  - a crash\n"

	assert.Equal(t, want, buf.String())
}

func TestFormatTerminal_Last(t *testing.T) {
	var buf strings.Builder
	err := FormatTerminal(formattedLog(t), &buf, FormatOptions{Plain: true, MaxWidth: 80, Last: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "v0.2.0")
	assert.NotContains(t, out, "v0.1.0")
}

func TestFormatTerminal_SectionIntroduction(t *testing.T) {
	l := formattedLog(t)
	l.Sections[0].Introduction = "A big release."
	l.Sections[0].HasIntroduction = true

	var buf strings.Builder
	err := FormatTerminal(l, &buf, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\nA big release.\n")
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short line untouched": {"fits", 20, "fits"},
		"breaks at space":      {"alpha beta gamma", 11, "alpha beta\n    gamma"},
		"zero width untouched": {"anything goes", 0, "anything goes"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapText(tc.text, tc.maxWidth, "    "))
		})
	}
}

func TestDateStamp(t *testing.T) {
	assert.Equal(t, "2026-08-30", dateStamp("2026-08-30T12:00:00Z"))
	assert.Equal(t, "2026-08-30", dateStamp("2026-08-30"))
}
