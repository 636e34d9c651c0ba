package fragment

import (
	"github.com/ariel-frischer/ronlog/internal/ron"
)

// EncodeRON renders the fragment as a standalone machine-readable
// document. The encoding is lossless: category order, entry order, entry
// text, and reference records all survive a decode.
func EncodeRON(f *Fragment) string {
	w := ron.NewWriter()
	w.Line("(")
	w.Push()
	EncodeRONBody(f, w)
	w.Pop()
	w.Line(")")
	return w.String()
}

// EncodeRONBody writes the fragment's fields at the writer's current
// depth so the aggregate log codec can nest fragments inside sections.
func EncodeRONBody(f *Fragment, w *ron.Writer) {
	refs := f.References()
	if len(refs) == 0 {
		w.Line("references: {},")
	} else {
		w.Line("references: {")
		w.Push()
		for _, ref := range refs {
			w.Line("%s: %s,", ron.Quote(ref.Name), ron.Quote(ref.Target))
		}
		w.Pop()
		w.Line("},")
	}

	categories := f.Categories()
	if len(categories) == 0 {
		w.Line("changes: {},")
		return
	}
	w.Line("changes: {")
	w.Push()
	for _, category := range categories {
		w.Line("%s: [", ron.Quote(category))
		w.Push()
		for _, entry := range f.Entries(category) {
			w.Line("%s,", ron.Quote(entry))
		}
		w.Pop()
		w.Line("],")
	}
	w.Pop()
	w.Line("},")
}

// DecodeRON parses a standalone fragment document.
func DecodeRON(src string) (*Fragment, error) {
	s := ron.NewScanner(src)
	if err := s.ExpectPunct('('); err != nil {
		return nil, err
	}
	f, err := DecodeRONBody(s)
	if err != nil {
		return nil, err
	}
	if err := s.ExpectPunct(')'); err != nil {
		return nil, err
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return nil, err
	}
	if err := s.ExpectEOF(); err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeRONBody parses the fragment fields, leaving the surrounding
// parentheses to the caller.
func DecodeRONBody(s *ron.Scanner) (*Fragment, error) {
	f := New()

	if err := s.ExpectField("references"); err != nil {
		return nil, err
	}
	if err := s.ExpectPunct('{'); err != nil {
		return nil, err
	}
	for {
		done, err := s.AcceptPunct('}')
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		name, err := s.ExpectString()
		if err != nil {
			return nil, err
		}
		if err := s.ExpectPunct(':'); err != nil {
			return nil, err
		}
		target, err := s.ExpectString()
		if err != nil {
			return nil, err
		}
		f.AddReference(name, target)
		if _, err := s.AcceptPunct(','); err != nil {
			return nil, err
		}
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return nil, err
	}

	if err := s.ExpectField("changes"); err != nil {
		return nil, err
	}
	if err := s.ExpectPunct('{'); err != nil {
		return nil, err
	}
	for {
		done, err := s.AcceptPunct('}')
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		category, err := s.ExpectString()
		if err != nil {
			return nil, err
		}
		if err := s.ExpectPunct(':'); err != nil {
			return nil, err
		}
		if err := s.ExpectPunct('['); err != nil {
			return nil, err
		}
		for {
			done, err := s.AcceptPunct(']')
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
			entry, err := s.ExpectString()
			if err != nil {
				return nil, err
			}
			f.Append(category, entry)
			if _, err := s.AcceptPunct(','); err != nil {
				return nil, err
			}
		}
		if _, err := s.AcceptPunct(','); err != nil {
			return nil, err
		}
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return nil, err
	}

	return f, nil
}
