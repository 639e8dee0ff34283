package layout

import (
	"strings"

	"golang.org/x/net/html/atom"

	"toybrowser/pkg/text"
)

// TagKind enumerates the tags layout reacts to. Everything else is
// TagUnknown and leaves layout untouched.
type TagKind int

const (
	TagUnknown TagKind = iota
	TagItalic
	TagItalicEnd
	TagBold
	TagBoldEnd
	TagSmall
	TagSmallEnd
	TagBig
	TagBigEnd
	TagBreak
	TagParagraphEnd
)

var openTags = map[atom.Atom]TagKind{
	atom.I:     TagItalic,
	atom.B:     TagBold,
	atom.Small: TagSmall,
	atom.Big:   TagBig,
	atom.Br:    TagBreak,
}

var closeTags = map[atom.Atom]TagKind{
	atom.I:     TagItalicEnd,
	atom.B:     TagBoldEnd,
	atom.Small: TagSmallEnd,
	atom.Big:   TagBigEnd,
	atom.P:     TagParagraphEnd,
}

// ClassifyTag maps a raw tag name to its kind. Matching is exact: names
// are not case-folded and attributes make a tag unknown.
func ClassifyTag(name string) TagKind {
	table := openTags
	if rest, ok := strings.CutPrefix(name, "/"); ok {
		name, table = rest, closeTags
	}
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return TagUnknown
	}
	return table[a]
}

// TypographicState is the font selection in effect at a point in the
// token stream. It is a value: Apply returns a new state.
type TypographicState struct {
	Size   float64
	Weight text.Weight
	Style  text.Style
}

func InitialState(size float64) TypographicState {
	return TypographicState{Size: size}
}

// Apply returns the state after a tag of kind k. Break, paragraph end and
// unknown tags return s unchanged.
func (s TypographicState) Apply(k TagKind) TypographicState {
	switch k {
	case TagItalic:
		s.Style = text.StyleItalic
	case TagItalicEnd:
		s.Style = text.StyleNormal
	case TagBold:
		s.Weight = text.WeightBold
	case TagBoldEnd:
		s.Weight = text.WeightNormal
	case TagSmall:
		s.Size -= 2
	case TagSmallEnd:
		s.Size += 2
	case TagBig:
		s.Size += 4
	case TagBigEnd:
		s.Size -= 4
	case TagBreak, TagParagraphEnd, TagUnknown:
	}
	return s
}

func (s TypographicState) Font() text.Font {
	return text.Font{Size: s.Size, Weight: s.Weight, Style: s.Style}
}
