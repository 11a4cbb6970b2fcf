package main

import "textpad/internal/textnav"

// maxUndo caps the number of snapshots kept per buffer.
const maxUndo = 500

// bufferState представляет состояние буфера для undo/redo.
type bufferState struct {
	Lines  []string
	Cursor textnav.Pos
}

func (b *Buffer) snapshot() bufferState {
	state := bufferState{
		Lines:  make([]string, len(b.lines)),
		Cursor: b.cursor,
	}
	copy(state.Lines, b.lines)
	return state
}

func (b *Buffer) restore(state bufferState) {
	b.lines = state.Lines
	b.cursor = b.clamp(state.Cursor)
	b.selected = false
}

// pushUndo pushes the current state onto the undo stack.
// pushUndo помещает текущее состояние в стек отмены.
func (b *Buffer) pushUndo() {
	b.undoStack = append(b.undoStack, b.snapshot())
	if len(b.undoStack) > maxUndo {
		b.undoStack = b.undoStack[len(b.undoStack)-maxUndo:]
	}
	b.redoStack = nil
}

// Undo reverts the last change. It reports whether there was one.
// Undo отменяет последнее изменение.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	b.redoStack = append(b.redoStack, b.snapshot())
	last := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.restore(last)
	b.changed()
	return true
}

// Redo reapplies the last undone change.
// Redo повторно применяет последнее отмененное изменение.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	b.undoStack = append(b.undoStack, b.snapshot())
	next := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.restore(next)
	b.changed()
	return true
}
