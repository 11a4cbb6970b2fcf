package main

import (
	"github.com/gdamore/tcell/v2"

	"textpad/internal/textnav"
)

// handleKey handles keyboard input.
// handleKey обрабатывает ввод с клавиатуры.
func (e *Editor) handleKey(ev *tcell.EventKey) {
	buf := e.current.buf
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	// File
	case tcell.KeyCtrlN:
		e.onNew()
	case tcell.KeyCtrlW:
		e.createNewCanvas()
	case tcell.KeyCtrlO:
		e.onOpen("", "")
	case tcell.KeyCtrlS:
		e.onSave()
	case tcell.KeyCtrlE:
		e.onSaveAs()
	case tcell.KeyCtrlB:
		e.switchToNextCanvas()
	case tcell.KeyCtrlQ:
		e.onQuit()

	// Edit
	case tcell.KeyCtrlZ:
		e.onUndo()
	case tcell.KeyCtrlY:
		e.onRedo()
	case tcell.KeyCtrlX:
		e.onCut()
	case tcell.KeyCtrlC:
		e.onCopy()
	case tcell.KeyCtrlV:
		e.onPaste()
	case tcell.KeyDelete:
		e.onDelete()
	case tcell.KeyCtrlF:
		e.onFind()
	case tcell.KeyF3:
		e.onFindNext()
	case tcell.KeyCtrlR:
		e.onReplace()
	case tcell.KeyF4:
		e.replaceNext()
	case tcell.KeyCtrlG:
		e.onGoto()
	case tcell.KeyCtrlA:
		e.onSelectAll()
	case tcell.KeyF5:
		e.onTime()

	// Format
	case tcell.KeyF6:
		e.onNextColours()
	case tcell.KeyF7:
		e.onPickColour(true)
	case tcell.KeyF8:
		e.onPickColour(false)

	// Help
	case tcell.KeyCtrlJ:
		e.showHelpCanvas()
	case tcell.KeyF1:
		e.onAbout()

	// Navigation
	case tcell.KeyUp:
		buf.Up(shift)
	case tcell.KeyDown:
		buf.Down(shift)
	case tcell.KeyLeft:
		buf.Left(shift)
	case tcell.KeyRight:
		buf.Right(shift)
	case tcell.KeyHome:
		buf.Home(shift)
	case tcell.KeyEnd:
		buf.EndOfLine(shift)
	case tcell.KeyPgUp:
		cur := buf.Cursor()
		buf.MoveTo(textnav.Pos{Line: cur.Line - e.contentRows(), Col: cur.Col}, shift)
	case tcell.KeyPgDn:
		cur := buf.Cursor()
		buf.MoveTo(textnav.Pos{Line: min(cur.Line+e.contentRows(), buf.LineCount()-1), Col: cur.Col}, shift)
	case tcell.KeyEscape:
		buf.ClearSelection()

	// Typing
	case tcell.KeyEnter:
		buf.InsertText("\n")
	case tcell.KeyTab:
		buf.InsertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.Backspace()
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt == 0 {
			buf.InsertText(string(ev.Rune()))
		}
	}
	e.ensureVisible()
}
