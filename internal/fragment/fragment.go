// Package fragment implements the changelog fragment: an ordered mapping
// from category names to change entries, plus the hyperlink references a
// fragment defines. Category order is first-seen order across the
// harvested commits; entry order within a category is harvest order.
package fragment

// Reference is one hyperlink definition a fragment carries for the
// rendered link block.
type Reference struct {
	Name   string
	Target string
}

// Fragment accumulates categorized change entries. The zero value is not
// usable; construct instances with New.
type Fragment struct {
	order   []string
	entries map[string][]string
	refs    []Reference
	known   map[string]bool
}

// New returns an empty fragment.
func New() *Fragment {
	return &Fragment{
		entries: make(map[string][]string),
		known:   make(map[string]bool),
	}
}

// Append adds one change entry under the given category. The category
// slot is created on first sight, keeping first-seen category order;
// entries within a category keep append order.
func (f *Fragment) Append(category, description string) {
	if _, ok := f.entries[category]; !ok {
		f.order = append(f.order, category)
	}
	f.entries[category] = append(f.entries[category], description)
}

// AddReference records a hyperlink definition. A name that was already
// recorded keeps its first target.
func (f *Fragment) AddReference(name, target string) {
	if f.known[name] {
		return
	}
	f.known[name] = true
	f.refs = append(f.refs, Reference{Name: name, Target: target})
}

// Categories returns the category names in first-seen order.
func (f *Fragment) Categories() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Entries returns the change entries of a category in append order, or
// nil for an unknown category.
func (f *Fragment) Entries(category string) []string {
	entries := f.entries[category]
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

// MoveReferences removes all recorded references from the fragment and
// returns them, preserving order. The aggregate log hoists fragment
// references into the owning section this way.
func (f *Fragment) MoveReferences() []Reference {
	out := f.refs
	f.refs = nil
	f.known = make(map[string]bool)
	return out
}

// References returns the recorded hyperlink definitions in insertion order.
func (f *Fragment) References() []Reference {
	out := make([]Reference, len(f.refs))
	copy(out, f.refs)
	return out
}

// Len returns the total entry count across all categories.
func (f *Fragment) Len() int {
	n := 0
	for _, entries := range f.entries {
		n += len(entries)
	}
	return n
}

// IsEmpty reports whether the fragment holds no entries.
func (f *Fragment) IsEmpty() bool {
	return len(f.order) == 0
}

// Merge folds another fragment into this one, producing the fragment a
// single harvest over both inputs would have built. Incoming entries are
// appended after existing ones per category; categories new to the
// receiver are appended at the end of its category order. References are
// concatenated, receiver first, keeping the first target per name.
func (f *Fragment) Merge(incoming *Fragment) {
	for _, ref := range incoming.refs {
		f.AddReference(ref.Name, ref.Target)
	}
	for _, category := range incoming.order {
		for _, entry := range incoming.entries[category] {
			f.Append(category, entry)
		}
	}
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	out := New()
	out.Merge(f)
	return out
}

// Equal reports whether two fragments hold the same categories, entries,
// and references in the same order.
func (f *Fragment) Equal(other *Fragment) bool {
	if len(f.order) != len(other.order) || len(f.refs) != len(other.refs) {
		return false
	}
	for i, category := range f.order {
		if other.order[i] != category {
			return false
		}
		a, b := f.entries[category], other.entries[category]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	for i, ref := range f.refs {
		if other.refs[i] != ref {
			return false
		}
	}
	return true
}
