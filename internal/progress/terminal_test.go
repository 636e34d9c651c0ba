package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities(t *testing.T) {
	tests := map[string]struct {
		isTTY      bool
		noColor    bool
		forceASCII bool
		wantColor  bool
		wantUni    bool
	}{
		"interactive":      {isTTY: true, wantColor: true, wantUni: true},
		"piped":            {isTTY: false, wantColor: false, wantUni: false},
		"no color":         {isTTY: true, noColor: true, wantColor: false, wantUni: true},
		"forced ascii":     {isTTY: true, forceASCII: true, wantColor: true, wantUni: false},
		"piped and ascii":  {isTTY: false, forceASCII: true, wantColor: false, wantUni: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			caps := capabilities(tc.isTTY, tc.noColor, tc.forceASCII, 0)
			assert.Equal(t, tc.wantColor, caps.SupportsColor)
			assert.Equal(t, tc.wantUni, caps.SupportsUnicode)
		})
	}
}

func TestSelectSymbols(t *testing.T) {
	unicode := SelectSymbols(TerminalCapabilities{SupportsUnicode: true})
	assert.Equal(t, "✓", unicode.Checkmark)
	assert.Equal(t, 14, unicode.SpinnerSet)

	ascii := SelectSymbols(TerminalCapabilities{SupportsUnicode: false})
	assert.Equal(t, "[OK]", ascii.Checkmark)
	assert.Equal(t, 9, ascii.SpinnerSet)
}
