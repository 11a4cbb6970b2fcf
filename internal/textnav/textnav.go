// Package textnav implements go-to-line, find and replace on top of any
// line-oriented text buffer.
package textnav

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	ErrOutOfRange = errors.New("line number out of range")
	ErrNotFound   = errors.New("not found")
	ErrEmptyQuery = errors.New("empty search string")
)

// Pos is a zero-based line and rune column.
type Pos struct {
	Line, Col int
}

// Before reports whether p comes strictly before q.
func (p Pos) Before(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Match is the span of a found occurrence. End is exclusive.
type Match struct {
	Start, End Pos
}

// Buffer is the subset of an editable text the helpers need.
type Buffer interface {
	LineCount() int
	Line(i int) string
	Cursor() Pos
	SetCursor(p Pos)
	Selection() (start, end Pos, ok bool)
	Select(start, end Pos)
	// Replace swaps the text between start and end for text as one edit
	// and returns the position after the inserted text.
	Replace(start, end Pos, text string) Pos
}

// GotoLine moves the cursor to the start of line n (1-based) and selects
// that line.
func GotoLine(buf Buffer, n int) error {
	total := buf.LineCount()
	if n < 1 || n > total {
		return fmt.Errorf("%w: %d not in 1..%d", ErrOutOfRange, n, total)
	}
	start := Pos{Line: n - 1}
	end := Pos{Line: n}
	if n == total {
		end = Pos{Line: n - 1, Col: len([]rune(buf.Line(n - 1)))}
	}
	buf.Select(start, end)
	buf.SetCursor(start)
	return nil
}

// FindState remembers the last search string.
type FindState struct {
	LastQuery string
}

// Find returns the first occurrence of query at or after from. The scan
// stops at the end of the buffer.
func (s *FindState) Find(buf Buffer, query string, from Pos, caseInsensitive bool) (Match, error) {
	s.LastQuery = query
	if query == "" {
		return Match{}, ErrEmptyQuery
	}
	q := []rune(query)

	if from.Line < 0 {
		from = Pos{}
	}
	if from.Line < buf.LineCount() {
		from.Col = min(max(from.Col, 0), len([]rune(buf.Line(from.Line))))
	}

	// Flatten the tail of the buffer, remembering where each line starts.
	var text []rune
	var starts []int
	for i := from.Line; i < buf.LineCount(); i++ {
		line := []rune(buf.Line(i))
		if i == from.Line {
			line = line[from.Col:]
		} else {
			text = append(text, '\n')
		}
		starts = append(starts, len(text))
		text = append(text, line...)
	}

	for i := 0; i+len(q) <= len(text); i++ {
		if matchAt(text[i:], q, caseInsensitive) {
			return Match{
				Start: offsetToPos(i, from, starts),
				End:   offsetToPos(i+len(q), from, starts),
			}, nil
		}
	}
	return Match{}, fmt.Errorf("%w: %q", ErrNotFound, query)
}

// FindNext repeats the last search from the cursor.
func (s *FindState) FindNext(buf Buffer, caseInsensitive bool) (Match, error) {
	return s.Find(buf, s.LastQuery, buf.Cursor(), caseInsensitive)
}

// ReplaceAndFindNext replaces the current selection, if any, with
// replaceText and then searches for findText from the cursor.
func (s *FindState) ReplaceAndFindNext(buf Buffer, findText, replaceText string, caseInsensitive bool) (Match, error) {
	if start, end, ok := buf.Selection(); ok {
		buf.SetCursor(buf.Replace(start, end, replaceText))
	}
	return s.Find(buf, findText, buf.Cursor(), caseInsensitive)
}

func matchAt(text, q []rune, fold bool) bool {
	for k, r := range q {
		if text[k] == r {
			continue
		}
		if !fold || !foldEqual(text[k], r) {
			return false
		}
	}
	return true
}

// foldEqual compares under simple case folding, which maps one rune to one
// rune and so keeps match positions exact.
func foldEqual(a, b rune) bool {
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

func offsetToPos(off int, from Pos, starts []int) Pos {
	line := 0
	for line+1 < len(starts) && starts[line+1] <= off {
		line++
	}
	col := off - starts[line]
	if line == 0 {
		col += from.Col
	}
	return Pos{Line: from.Line + line, Col: col}
}
