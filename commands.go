package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"textpad/internal/chrome"
	"textpad/internal/session"
	"textpad/internal/textenc"
	"textpad/internal/textnav"
)

// File commands.
// Команды меню «Файл».

// onOpen opens path in the current window, asking for a path when it is
// empty. encoding, if set, is tried first.
// onOpen открывает файл в текущем окне.
func (e *Editor) onOpen(path, encoding string) bool {
	c := e.current
	if c.Dirty() {
		if e.AskYesNo(chrome.AppName, "Save changes to file?") {
			if !e.onSave() {
				return false
			}
		} else if !e.AskYesNo(chrome.AppName, "Discard changes made to file?") {
			return false
		}
	}

	if path == "" {
		var ok bool
		if path, ok = e.chooseOpenPath(); !ok {
			return false
		}
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		e.ShowError(chrome.AppName, "Could not open file "+path)
		return false
	}

	res, err := e.resolver.ResolveForOpen(path, encoding)
	if err != nil {
		if errors.Is(err, textenc.ErrFileUnreadable) {
			e.ShowError(chrome.AppName, "Could not decode and open file "+path)
		} else {
			e.ShowError(chrome.AppName, fmt.Sprintf("Could not open file %s: %v", path, err))
		}
		return false
	}

	c.session.Load(res.Text, path, res.Encoding)
	c.saved = res.Text
	c.offsetX, c.offsetY = 0, 0
	if res.Source == textenc.SourceBinary {
		e.ShowInfo(chrome.AppName, "Opened "+path+" as raw bytes")
	} else {
		e.ShowInfo(chrome.AppName, fmt.Sprintf("Opened %s (%s)", path, res.Encoding))
	}
	return true
}

// onSave saves to the current path, asking for one if the buffer is new.
// onSave сохраняет файл текущего окна.
func (e *Editor) onSave() bool {
	path := e.current.session.Path()
	if path == "" {
		var ok bool
		if path, ok = e.chooseSavePath(); !ok {
			return false
		}
	}
	return e.saveTo(path)
}

// onSaveAs always asks for the path.
func (e *Editor) onSaveAs() bool {
	path, ok := e.chooseSavePath()
	if !ok {
		return false
	}
	return e.saveTo(path)
}

func (e *Editor) saveTo(path string) bool {
	c := e.current
	text := c.buf.Text()
	res, err := e.resolver.Save(path, text, c.session)
	switch {
	case errors.Is(err, textenc.ErrEncodingUnresolved):
		e.ShowError(chrome.AppName, "Could not encode for file "+path)
		return false
	case err != nil:
		e.ShowError(chrome.AppName, "Could not save file "+path)
		return false
	}
	c.session.MarkSaved(path, res.Encoding)
	c.saved = text
	e.ShowInfo(chrome.AppName, fmt.Sprintf("Saved %s (%s)", path, res.Encoding))
	return true
}

// onNew empties the current window after confirming unsaved changes.
// onNew очищает текущее окно.
func (e *Editor) onNew() {
	c := e.current
	confirmed := !c.Dirty()
	if !confirmed {
		summary := changeSummary(c.saved, c.buf.Text())
		confirmed = e.AskYesNo(chrome.AppName, "Discard changes made to file? ("+summary+")")
	}
	if err := c.session.Reset(confirmed); errors.Is(err, session.ErrUnconfirmed) {
		return
	}
	c.saved = ""
	c.offsetX, c.offsetY = 0, 0
}

// onQuit applies the quit policy of the current window.
// onQuit закрывает окно или выходит из программы.
func (e *Editor) onQuit() {
	c := e.current
	next := e.app.Next(c).(*Canvas)
	switch e.app.Quit(c, c.variant, e) {
	case chrome.ExitApp:
		e.quit = true
	case chrome.CloseWindow:
		if next == c {
			e.quit = true
			return
		}
		if c == e.help {
			e.help = nil
		}
		e.current = next
	}
}

// Edit commands.
// Команды меню «Правка».

func (e *Editor) onUndo() {
	if !e.current.buf.Undo() {
		e.ShowInfo(chrome.AppName, "Nothing to undo")
	}
}

func (e *Editor) onRedo() {
	if !e.current.buf.Redo() {
		e.ShowInfo(chrome.AppName, "Nothing to redo")
	}
}

func (e *Editor) onCopy() bool {
	text := e.current.buf.SelectedText()
	if text == "" {
		return false
	}
	if err := e.clipboardWrite(text); err != nil {
		e.ShowError(chrome.AppName, "Copy error clipboard: "+err.Error())
		return false
	}
	return true
}

func (e *Editor) onCut() {
	if e.onCopy() {
		e.current.buf.DeleteSelection()
	}
}

func (e *Editor) onPaste() {
	text, err := e.clipboardRead()
	if err != nil {
		e.ShowError(chrome.AppName, "Insert error: "+err.Error())
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return
	}
	// the pasted text is left selected
	buf := e.current.buf
	start := buf.Cursor()
	if from, _, ok := buf.Selection(); ok {
		start = from
	}
	buf.InsertText(text)
	buf.Select(start, buf.Cursor())
}

func (e *Editor) onDelete() {
	e.current.buf.DeleteForward()
}

// onFind asks for a search string and looks for it from the cursor.
// onFind запрашивает строку поиска и ищет ее от курсора.
func (e *Editor) onFind() {
	c := e.current
	query, ok := e.AskString(chrome.AppName, "Enter search string", c.find.LastQuery)
	if !ok {
		return
	}
	m, err := c.find.Find(c.buf, query, c.buf.Cursor(), e.cfg.CaseInsens)
	e.showMatch(m, err)
}

// onFindNext repeats the last search.
func (e *Editor) onFindNext() {
	c := e.current
	if c.find.LastQuery == "" {
		e.onFind()
		return
	}
	m, err := c.find.FindNext(c.buf, e.cfg.CaseInsens)
	e.showMatch(m, err)
}

// onReplace asks for the find and replace strings, then replaces the
// selection and finds the next occurrence.
// onReplace запрашивает строки поиска и замены.
func (e *Editor) onReplace() {
	c := e.current
	find, ok := e.AskString(chrome.AppName, "Find", c.findText)
	if !ok {
		return
	}
	// the replacement may be empty
	replace, ok := e.readLine("Replace with", c.replaceText)
	if !ok {
		return
	}
	c.findText, c.replaceText = find, replace
	e.replaceNext()
}

// replaceNext repeats the last replace.
func (e *Editor) replaceNext() {
	c := e.current
	if c.findText == "" {
		e.onReplace()
		return
	}
	m, err := c.find.ReplaceAndFindNext(c.buf, c.findText, c.replaceText, e.cfg.CaseInsens)
	e.showMatch(m, err)
}

func (e *Editor) showMatch(m textnav.Match, err error) {
	switch {
	case errors.Is(err, textnav.ErrNotFound):
		e.ShowError(chrome.AppName, "word not found")
	case err != nil:
		e.ShowError(chrome.AppName, err.Error())
	default:
		buf := e.current.buf
		buf.Select(m.Start, m.End)
		buf.SetCursor(m.End)
		e.ensureVisible()
	}
}

// onGoto asks for a line number and selects that line.
// onGoto запрашивает номер строки и выделяет ее.
func (e *Editor) onGoto() {
	n, ok := e.AskInteger(chrome.AppName, "Enter line number")
	if !ok {
		return
	}
	if err := textnav.GotoLine(e.current.buf, n); errors.Is(err, textnav.ErrOutOfRange) {
		e.ShowError(chrome.AppName, "line number is beyond total numbers of lines")
		return
	}
	e.ensureVisible()
}

func (e *Editor) onSelectAll() {
	e.current.buf.SelectAll()
}

// onTime appends the current time and date to the end of the text.
func (e *Editor) onTime() {
	buf := e.current.buf
	buf.Insert(buf.End(), e.now().Format(time.ANSIC))
}

// Format commands.
// Команды меню «Формат».

// onNextColours cycles the current window through the colour presets.
func (e *Editor) onNextColours() {
	c := e.current
	c.preset = (c.preset + 1) % len(colourPresets)
	p := colourPresets[c.preset]
	fg, errFG := parseColour(p.fg)
	bg, errBG := parseColour(p.bg)
	if err := errors.Join(errFG, errBG); err != nil {
		e.ShowError(chrome.AppName, err.Error())
		return
	}
	c.fg, c.bg = fg, bg
	e.ShowInfo(chrome.AppName, p.fg+" on "+p.bg)
}

func (e *Editor) onPickColour(background bool) {
	c := e.current
	part := "foreground"
	if background {
		part = "background"
	}
	name, ok := e.AskString(chrome.AppName, "Enter "+part+" colour (name or #rrggbb)", "")
	if !ok {
		return
	}
	colour, err := parseColour(name)
	if err != nil {
		e.ShowError(chrome.AppName, err.Error())
		return
	}
	if background {
		c.bg = colour
	} else {
		c.fg = colour
	}
}

// Help commands.
// Команды меню «Справка».

func (e *Editor) onAbout() {
	e.ShowInfo("About "+chrome.AppName, aboutText())
}
