package html

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Token is a lexical unit of markup. It is either a Text or a Tag; the
// set is closed by the unexported marker method.
type Token interface {
	token()
	String() string
}

// Text is literal character content between tags, kept verbatim.
type Text struct {
	Content string
}

// Tag is everything between '<' and '>', unescaped and not case-folded.
type Tag struct {
	Name string
}

func (Text) token() {}
func (Tag) token()  {}

func (t Text) String() string { return fmt.Sprintf("Text(%q)", t.Content) }
func (t Tag) String() string  { return fmt.Sprintf("Tag(%q)", t.Name) }

// StepFunc observes the token sequence after each token is appended.
// Returning an error aborts tokenizing.
type StepFunc func(tokens []Token) error

type Tokenizer struct {
	r       io.RuneReader
	inTag   bool
	pending strings.Builder
	err     error
}

func NewTokenizer(r io.Reader) *Tokenizer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Tokenizer{r: rr}
}

// NextToken returns the next token in document order, or io.EOF once the
// input is exhausted. Content of a tag left open at end of input is
// discarded rather than emitted.
func (t *Tokenizer) NextToken() (Token, error) {
	if t.err != nil {
		return nil, t.err
	}
	for {
		c, _, err := t.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				t.err = fmt.Errorf("reading markup: %w", err)
				return nil, t.err
			}
			t.err = io.EOF
			if !t.inTag && t.pending.Len() > 0 {
				return t.take(false), nil
			}
			t.pending.Reset()
			return nil, io.EOF
		}
		switch c {
		case '<':
			t.inTag = true
			if t.pending.Len() > 0 {
				return t.take(false), nil
			}
		case '>':
			t.inTag = false
			return t.take(true), nil
		default:
			t.pending.WriteRune(c)
		}
	}
}

func (t *Tokenizer) take(tag bool) Token {
	s := t.pending.String()
	t.pending.Reset()
	if tag {
		return Tag{Name: s}
	}
	return Text{Content: s}
}

// TokenizeReader drains r into a token slice, calling step (if non-nil)
// after every token is appended.
func TokenizeReader(r io.Reader, step StepFunc) ([]Token, error) {
	t := NewTokenizer(r)
	var out []Token
	for {
		tok, err := t.NextToken()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if step != nil {
			if err := step(out); err != nil {
				return out, fmt.Errorf("lex checkpoint %d: %w", len(out), err)
			}
		}
	}
}

// Tokenize is the pure form of TokenizeReader over an in-memory string.
func Tokenize(input string) []Token {
	out, _ := TokenizeReader(strings.NewReader(input), nil)
	return out
}
