package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"repository with path": {
			&RepositoryAccessError{Path: "/tmp/x", Reason: "this is not a git repository"},
			"repository /tmp/x: this is not a git repository",
		},
		"repository without path": {
			&RepositoryAccessError{Reason: "cannot resolve HEAD"},
			"repository: cannot resolve HEAD",
		},
		"malformed version": {
			&MalformedVersionError{Input: "1.2", Reason: "expected three segments"},
			`malformed version "1.2": expected three segments`,
		},
		"encoding with path and line": {
			&EncodingError{Path: "f.ron", Line: 3, Reason: "expected '('"},
			"f.ron:3: expected '('",
		},
		"encoding with line only": {
			&EncodingError{Line: 3, Reason: "expected '('"},
			"line 3: expected '('",
		},
		"encoding bare": {
			&EncodingError{Reason: "unexpected end of input"},
			"unexpected end of input",
		},
		"duplicate section": {
			&DuplicateSectionError{Version: "1.0.0"},
			"internal error: duplicate unmerged section for version 1.0.0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := &RepositoryAccessError{Reason: "gone"}
	wrapped := fmt.Errorf("harvesting: %w", inner)

	assert.True(t, IsRepositoryAccess(wrapped))
	assert.False(t, IsRepositoryAccess(assert.AnError))
	assert.False(t, IsMalformedVersion(wrapped))
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, Repository, Categorize(&RepositoryAccessError{Reason: "x"}))
	assert.Equal(t, Data, Categorize(&MalformedVersionError{Input: "x", Reason: "y"}))
	assert.Equal(t, Data, Categorize(&EncodingError{Reason: "x"}))
	assert.Equal(t, Runtime, Categorize(assert.AnError))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, Runtime))

	err := Wrap(assert.AnError, Configuration, "check the file")
	assert.Equal(t, Configuration, err.Category)
	assert.Equal(t, assert.AnError.Error(), err.Message)
	assert.Equal(t, []string{"check the file"}, err.Remediation)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Data Error", Data.String())
	assert.Equal(t, "Error", ErrorCategory(99).String())
}
