package ronlog

import (
	"github.com/ariel-frischer/ronlog/internal/errors"
	"github.com/ariel-frischer/ronlog/internal/fragment"
	"github.com/ariel-frischer/ronlog/internal/ron"
	"github.com/ariel-frischer/ronlog/internal/version"
)

// Encode renders the aggregate log as a machine-readable document,
// sections most recent version first.
func Encode(l *Log) string {
	w := ron.NewWriter()
	w.Line("(")
	w.Push()

	encodeReferences(w, l.References)
	w.Line("introduction: %s,", ron.Option(l.Introduction, l.HasIntroduction))

	if len(l.Sections) == 0 {
		w.Line("sections: [],")
	} else {
		w.Line("sections: [")
		w.Push()
		for i := range l.Sections {
			encodeSection(w, &l.Sections[i])
		}
		w.Pop()
		w.Line("],")
	}

	w.Pop()
	w.Line(")")
	return w.String()
}

func encodeSection(w *ron.Writer, s *Section) {
	w.Line("(")
	w.Push()
	encodeReferences(w, s.References)
	w.Line("version: %s,", ron.Quote(s.Version.String()))
	w.Line("released: %s,", ron.Quote(s.Released))
	w.Line("introduction: %s,", ron.Option(s.Introduction, s.HasIntroduction))
	w.Line("changes: (")
	w.Push()
	fragment.EncodeRONBody(s.Changes, w)
	w.Pop()
	w.Line("),")
	w.Pop()
	w.Line("),")
}

func encodeReferences(w *ron.Writer, refs []fragment.Reference) {
	if len(refs) == 0 {
		w.Line("references: {},")
		return
	}
	w.Line("references: {")
	w.Push()
	for _, ref := range refs {
		w.Line("%s: %s,", ron.Quote(ref.Name), ron.Quote(ref.Target))
	}
	w.Pop()
	w.Line("},")
}

// Decode parses an aggregate log document. The decoded log is
// equivalent to the encoded one: section order, dates, fragments, and
// references all survive the round trip.
func Decode(src string) (*Log, error) {
	s := ron.NewScanner(src)
	l := &Log{}

	if err := s.ExpectPunct('('); err != nil {
		return nil, err
	}

	refs, err := decodeReferences(s)
	if err != nil {
		return nil, err
	}
	l.References = refs

	if err := s.ExpectField("introduction"); err != nil {
		return nil, err
	}
	l.Introduction, l.HasIntroduction, err = s.ExpectOption()
	if err != nil {
		return nil, err
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return nil, err
	}

	if err := s.ExpectField("sections"); err != nil {
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
		section, err := decodeSection(s)
		if err != nil {
			return nil, err
		}
		l.Sections = append(l.Sections, section)
		if _, err := s.AcceptPunct(','); err != nil {
			return nil, err
		}
	}
	if _, err := s.AcceptPunct(','); err != nil {
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

	if err := l.checkSorted(); err != nil {
		return nil, err
	}
	return l, nil
}

func decodeSection(s *ron.Scanner) (Section, error) {
	var section Section

	if err := s.ExpectPunct('('); err != nil {
		return section, err
	}

	refs, err := decodeReferences(s)
	if err != nil {
		return section, err
	}
	section.References = refs

	if err := s.ExpectField("version"); err != nil {
		return section, err
	}
	text, err := s.ExpectString()
	if err != nil {
		return section, err
	}
	section.Version, err = version.Parse(text)
	if err != nil {
		return section, &errors.EncodingError{Reason: err.Error()}
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return section, err
	}

	if err := s.ExpectField("released"); err != nil {
		return section, err
	}
	section.Released, err = s.ExpectString()
	if err != nil {
		return section, err
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return section, err
	}

	if err := s.ExpectField("introduction"); err != nil {
		return section, err
	}
	section.Introduction, section.HasIntroduction, err = s.ExpectOption()
	if err != nil {
		return section, err
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return section, err
	}

	if err := s.ExpectField("changes"); err != nil {
		return section, err
	}
	if err := s.ExpectPunct('('); err != nil {
		return section, err
	}
	section.Changes, err = fragment.DecodeRONBody(s)
	if err != nil {
		return section, err
	}
	if err := s.ExpectPunct(')'); err != nil {
		return section, err
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return section, err
	}

	if err := s.ExpectPunct(')'); err != nil {
		return section, err
	}

	return section, nil
}

func decodeReferences(s *ron.Scanner) ([]fragment.Reference, error) {
	if err := s.ExpectField("references"); err != nil {
		return nil, err
	}
	if err := s.ExpectPunct('{'); err != nil {
		return nil, err
	}

	var refs []fragment.Reference
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
		refs = appendReference(refs, fragment.Reference{Name: name, Target: target})
		if _, err := s.AcceptPunct(','); err != nil {
			return nil, err
		}
	}
	if _, err := s.AcceptPunct(','); err != nil {
		return nil, err
	}
	return refs, nil
}
