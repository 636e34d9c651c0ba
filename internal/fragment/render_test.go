package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFragment() *Fragment {
	f := New()
	f.Append("Added", "support for X")
	f.Append("Added", "support for Y")
	f.Append("Fixed", "crash in startup, see docs")
	f.AddReference("docs", "https://example.com/docs")
	return f
}

func TestSerialize_Markdown(t *testing.T) {
	out, err := Serialize(sampleFragment(), EncodingMarkdown, 3)
	require.NoError(t, err)

	expected := `### Added

- support for X
- support for Y

### Fixed

- crash in startup, see docs

[docs]:  https://example.com/docs
`
	assert.Equal(t, expected, out)
}

func TestSerialize_MarkdownHeadingLevel(t *testing.T) {
	f := New()
	f.Append("Added", "x")

	out, err := Serialize(f, EncodingMarkdown, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "# Added\n")

	out, err = Serialize(f, EncodingMarkdown, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "## Added\n")
}

func TestSerialize_RST(t *testing.T) {
	out, err := Serialize(sampleFragment(), EncodingRST, 3)
	require.NoError(t, err)

	expected := `Added
.....

- support for X
- support for Y

Fixed
.....

- crash in startup, see docs

.. _docs:  https://example.com/docs
`
	assert.Equal(t, expected, out)
}

func TestSerialize_RSTAdornments(t *testing.T) {
	f := New()
	f.Append("Changed", "x")

	out, err := Serialize(f, EncodingRST, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "Changed\n=======\n")

	out, err = Serialize(f, EncodingRST, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "Changed\n-------\n")
}

func TestSerialize_HeadingOutOfRange(t *testing.T) {
	for _, heading := range []int{0, 4, -1} {
		_, err := Serialize(sampleFragment(), EncodingMarkdown, heading)
		assert.Error(t, err, "heading %d", heading)
	}
}

func TestSerialize_NoReferencesNoTrailingBlock(t *testing.T) {
	f := New()
	f.Append("Added", "x")

	out, err := Serialize(f, EncodingMarkdown, 3)
	require.NoError(t, err)
	assert.Equal(t, "### Added\n\n- x\n", out)
}
