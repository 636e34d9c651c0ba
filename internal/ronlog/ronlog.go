// Package ronlog implements the aggregate changelog: a single document
// holding one section per released version, kept sorted by descending
// semantic version at all times.
package ronlog

import (
	"fmt"

	"github.com/ariel-frischer/ronlog/internal/errors"
	"github.com/ariel-frischer/ronlog/internal/fragment"
	"github.com/ariel-frischer/ronlog/internal/version"
)

// Section is the merged changes of a single release.
type Section struct {
	// References are the hyperlink definitions hoisted out of the
	// section's fragment.
	References []fragment.Reference
	// Version is the release this section documents.
	Version version.Version
	// Released is the publication date stamp (RFC 3339).
	Released string
	// Introduction is an optional leading text.
	Introduction string
	// HasIntroduction distinguishes an empty introduction from none.
	HasIntroduction bool
	// Changes holds the categorized entries.
	Changes *fragment.Fragment
}

// Log is the aggregate changelog document.
type Log struct {
	// References are document-level hyperlink definitions.
	References []fragment.Reference
	// Introduction is an optional leading text.
	Introduction string
	// HasIntroduction distinguishes an empty introduction from none.
	HasIntroduction bool
	// Sections are kept sorted by descending version; no two sections
	// share a version.
	Sections []Section
}

// New returns an empty aggregate log, optionally carrying an
// introduction.
func New(introduction string, hasIntroduction bool) *Log {
	return &Log{Introduction: introduction, HasIntroduction: hasIntroduction}
}

// newSection builds a section from a fragment, hoisting the fragment's
// references to the section level.
func newSection(target version.Version, released string, frag *fragment.Fragment) Section {
	changes := frag.Clone()
	return Section{
		References: changes.MoveReferences(),
		Version:    target,
		Released:   released,
		Changes:    changes,
	}
}

// Insert adds a fragment under the target version. If a section for that
// exact version exists, the fragment is merged into it and the section
// keeps its position and date. Otherwise a new section is inserted at the
// position that keeps Sections sorted by descending version: immediately
// before the first section whose version is smaller, or at the end when
// none is. No re-sort pass happens.
func (l *Log) Insert(target version.Version, released string, frag *fragment.Fragment) error {
	for i := range l.Sections {
		if l.Sections[i].Version.Equal(target) {
			return l.mergeInto(i, frag)
		}
	}

	section := newSection(target, released, frag)
	at := len(l.Sections)
	for i := range l.Sections {
		if l.Sections[i].Version.Less(target) {
			at = i
			break
		}
	}

	l.Sections = append(l.Sections, Section{})
	copy(l.Sections[at+1:], l.Sections[at:])
	l.Sections[at] = section

	return l.checkSorted()
}

// mergeInto folds a fragment into the existing section at index i.
func (l *Log) mergeInto(i int, frag *fragment.Fragment) error {
	incoming := frag.Clone()
	for _, ref := range incoming.MoveReferences() {
		l.Sections[i].References = appendReference(l.Sections[i].References, ref)
	}
	l.Sections[i].Changes.Merge(incoming)
	return l.checkSorted()
}

// appendReference adds a reference unless its name is already defined;
// the first target per name wins.
func appendReference(refs []fragment.Reference, ref fragment.Reference) []fragment.Reference {
	for _, existing := range refs {
		if existing.Name == ref.Name {
			return refs
		}
	}
	return append(refs, ref)
}

// checkSorted verifies the descending-order and uniqueness invariant:
// every section must order strictly after its successor. Adjacent equality
// is a duplicate; any other violation means the document is not sorted.
// Insert keeps the invariant by construction, so reaching this from there
// is a programming defect; Decode relies on it to reject hand-edited
// documents that would corrupt later insertions.
func (l *Log) checkSorted() error {
	for i := 0; i+1 < len(l.Sections); i++ {
		switch c := version.Compare(l.Sections[i].Version, l.Sections[i+1].Version); {
		case c == 0:
			return &errors.DuplicateSectionError{Version: l.Sections[i].Version.String()}
		case c < 0:
			return &errors.EncodingError{
				Reason: fmt.Sprintf("section %s precedes newer section %s: sections must be sorted by descending version",
					l.Sections[i].Version, l.Sections[i+1].Version),
			}
		}
	}
	return nil
}

// Versions lists the section versions, most recent first.
func (l *Log) Versions() []string {
	out := make([]string, len(l.Sections))
	for i := range l.Sections {
		out[i] = l.Sections[i].Version.String()
	}
	return out
}
