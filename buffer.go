package main

import (
	"strings"

	"textpad/internal/textnav"
)

// Buffer holds the text of one editor window as lines, plus the cursor and
// the selection.
// Buffer хранит текст окна построчно, а также курсор и выделение.
type Buffer struct {
	lines     []string
	cursor    textnav.Pos
	selStart  textnav.Pos
	selEnd    textnav.Pos
	selected  bool
	undoStack []bufferState
	redoStack []bufferState
	// onChange is called after every edit of the text.
	onChange func()
}

// NewBuffer returns an empty buffer.
// NewBuffer возвращает пустой буфер.
func NewBuffer() *Buffer {
	return &Buffer{lines: []string{""}}
}

func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SetText replaces the whole text, moves the cursor to the top and drops the
// undo history.
// SetText заменяет весь текст, ставит курсор в начало и очищает историю.
func (b *Buffer) SetText(text string) {
	b.lines = strings.Split(text, "\n")
	b.cursor = textnav.Pos{}
	b.selected = false
	b.undoStack = nil
	b.redoStack = nil
}

// Len is the length of the text in bytes.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

func (b *Buffer) LineCount() int      { return len(b.lines) }
func (b *Buffer) Line(i int) string   { return b.lines[i] }
func (b *Buffer) Cursor() textnav.Pos { return b.cursor }

func (b *Buffer) lineLen(i int) int {
	return len([]rune(b.lines[i]))
}

// End is the position after the last rune.
func (b *Buffer) End() textnav.Pos {
	last := len(b.lines) - 1
	return textnav.Pos{Line: last, Col: b.lineLen(last)}
}

func (b *Buffer) clamp(p textnav.Pos) textnav.Pos {
	if p.Line < 0 {
		return textnav.Pos{}
	}
	if p.Line >= len(b.lines) {
		return b.End()
	}
	p.Col = min(max(p.Col, 0), b.lineLen(p.Line))
	return p
}

// SetCursor moves the cursor. The selection is left alone.
func (b *Buffer) SetCursor(p textnav.Pos) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) Selection() (textnav.Pos, textnav.Pos, bool) {
	return b.selStart, b.selEnd, b.selected
}

// Select marks the span between start and end. An empty span clears the
// selection.
func (b *Buffer) Select(start, end textnav.Pos) {
	start, end = b.clamp(start), b.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	b.selStart, b.selEnd = start, end
	b.selected = start != end
}

func (b *Buffer) ClearSelection() {
	b.selected = false
}

// SelectAll selects the whole text and puts the cursor at the top.
// SelectAll выделяет весь текст и ставит курсор в начало.
func (b *Buffer) SelectAll() {
	b.Select(textnav.Pos{}, b.End())
	b.cursor = textnav.Pos{}
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	if !b.selected {
		return ""
	}
	return b.textRange(b.selStart, b.selEnd)
}

func (b *Buffer) textRange(start, end textnav.Pos) string {
	if start.Line == end.Line {
		return string([]rune(b.lines[start.Line])[start.Col:end.Col])
	}
	parts := []string{string([]rune(b.lines[start.Line])[start.Col:])}
	parts = append(parts, b.lines[start.Line+1:end.Line]...)
	parts = append(parts, string([]rune(b.lines[end.Line])[:end.Col]))
	return strings.Join(parts, "\n")
}

// Insert puts text at the given position and returns the position just
// after it. The cursor is not moved.
// Insert вставляет текст в позицию и возвращает позицию после него.
func (b *Buffer) Insert(at textnav.Pos, text string) textnav.Pos {
	b.pushUndo()
	end := b.insertAt(b.clamp(at), text)
	b.changed()
	return end
}

// Delete removes the text between start and end.
// Delete удаляет текст между start и end.
func (b *Buffer) Delete(start, end textnav.Pos) {
	start, end = b.clamp(start), b.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	if start == end {
		return
	}
	b.pushUndo()
	b.deleteRange(start, end)
	b.changed()
}

// Replace swaps the text between start and end for text as a single undo
// step. The cursor is left where it was, clamped to the new text.
// Replace заменяет текст между start и end одним шагом отмены.
func (b *Buffer) Replace(start, end textnav.Pos, text string) textnav.Pos {
	start, end = b.clamp(start), b.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	b.pushUndo()
	b.deleteRange(start, end)
	after := b.insertAt(start, text)
	b.cursor = b.clamp(b.cursor)
	b.changed()
	return after
}

func (b *Buffer) insertAt(at textnav.Pos, text string) textnav.Pos {
	lineRunes := []rune(b.lines[at.Line])
	left := string(lineRunes[:at.Col])
	right := string(lineRunes[at.Col:])
	parts := strings.Split(text, "\n")
	last := len(parts) - 1
	end := textnav.Pos{Line: at.Line + last, Col: len([]rune(parts[last]))}
	if last == 0 {
		end.Col += at.Col
	}
	parts[0] = left + parts[0]
	parts[last] += right

	lines := make([]string, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:at.Line]...)
	lines = append(lines, parts...)
	lines = append(lines, b.lines[at.Line+1:]...)
	b.lines = lines
	b.selected = false
	return end
}

func (b *Buffer) deleteRange(start, end textnav.Pos) {
	first := []rune(b.lines[start.Line])
	lastLine := []rune(b.lines[end.Line])
	merged := string(first[:start.Col]) + string(lastLine[end.Col:])
	b.lines = append(b.lines[:start.Line+1], b.lines[end.Line+1:]...)
	b.lines[start.Line] = merged
	b.selected = false
	b.cursor = b.clamp(b.cursor)
}

func (b *Buffer) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

// InsertText types text at the cursor, replacing the selection if there is
// one, as a single undo step.
// InsertText вводит текст в позицию курсора, заменяя выделение.
func (b *Buffer) InsertText(text string) {
	b.pushUndo()
	at := b.cursor
	if b.selected {
		at = b.selStart
		b.deleteRange(b.selStart, b.selEnd)
	}
	b.cursor = b.insertAt(at, text)
	b.changed()
}

// DeleteSelection removes the selected text and leaves the cursor where it
// started. It reports whether there was anything to remove.
func (b *Buffer) DeleteSelection() bool {
	if !b.selected {
		return false
	}
	start, end := b.selStart, b.selEnd
	b.Delete(start, end)
	b.cursor = start
	return true
}

// Backspace deletes the selection or the rune before the cursor.
// Backspace удаляет выделение или символ перед курсором.
func (b *Buffer) Backspace() {
	if b.DeleteSelection() {
		return
	}
	prev := b.prevPos(b.cursor)
	if prev == b.cursor {
		return
	}
	b.Delete(prev, b.cursor)
	b.cursor = prev
}

// DeleteForward deletes the selection or the rune under the cursor.
// DeleteForward удаляет выделение или символ под курсором.
func (b *Buffer) DeleteForward() {
	if b.DeleteSelection() {
		return
	}
	b.Delete(b.cursor, b.nextPos(b.cursor))
}

func (b *Buffer) prevPos(p textnav.Pos) textnav.Pos {
	switch {
	case p.Col > 0:
		p.Col--
	case p.Line > 0:
		p.Line--
		p.Col = b.lineLen(p.Line)
	}
	return p
}

func (b *Buffer) nextPos(p textnav.Pos) textnav.Pos {
	switch {
	case p.Col < b.lineLen(p.Line):
		p.Col++
	case p.Line < len(b.lines)-1:
		p.Line++
		p.Col = 0
	}
	return p
}

// MoveTo moves the cursor to p. With extend the selection grows from the
// end opposite the cursor, otherwise it is cleared.
// MoveTo перемещает курсор; с extend расширяет выделение.
func (b *Buffer) MoveTo(p textnav.Pos, extend bool) {
	p = b.clamp(p)
	if !extend {
		b.selected = false
		b.cursor = p
		return
	}
	anchor := b.cursor
	if b.selected {
		anchor = b.selStart
		if b.cursor == b.selStart {
			anchor = b.selEnd
		}
	}
	b.cursor = p
	b.Select(anchor, p)
}

func (b *Buffer) Left(extend bool)  { b.MoveTo(b.prevPos(b.cursor), extend) }
func (b *Buffer) Right(extend bool) { b.MoveTo(b.nextPos(b.cursor), extend) }

func (b *Buffer) Up(extend bool) {
	b.MoveTo(textnav.Pos{Line: b.cursor.Line - 1, Col: b.cursor.Col}, extend)
}

func (b *Buffer) Down(extend bool) {
	if b.cursor.Line == len(b.lines)-1 {
		b.MoveTo(b.End(), extend)
		return
	}
	b.MoveTo(textnav.Pos{Line: b.cursor.Line + 1, Col: b.cursor.Col}, extend)
}

func (b *Buffer) Home(extend bool) {
	b.MoveTo(textnav.Pos{Line: b.cursor.Line}, extend)
}

func (b *Buffer) EndOfLine(extend bool) {
	b.MoveTo(textnav.Pos{Line: b.cursor.Line, Col: b.lineLen(b.cursor.Line)}, extend)
}
