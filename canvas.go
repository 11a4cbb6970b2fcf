package main

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"textpad/internal/chrome"
	"textpad/internal/session"
	"textpad/internal/textnav"
)

// Максимальное количество окон
const MaxCanvases = 100

// Canvas представляет отдельное окно редактора.
// Canvas is one editor window: a buffer, the document session bound to it,
// and how the window is hosted.
type Canvas struct {
	buf     *Buffer
	session *session.Session
	variant chrome.Variant
	kind    string

	offsetX int
	offsetY int

	find        textnav.FindState
	findText    string
	replaceText string

	// saved is the text as last loaded or saved, for change summaries.
	saved string

	fg, bg tcell.Color
	preset int
}

// Dirty reports unsaved changes; it makes a Canvas a chrome.Window.
func (c *Canvas) Dirty() bool {
	return c.session.Dirty()
}

func (c *Canvas) style(attrs tcell.AttrMask) tcell.Style {
	return tcell.StyleDefault.Foreground(c.fg).Background(c.bg).Attributes(attrs)
}

func (c *Canvas) title() string {
	return chrome.FrameTitle(c.session.Title(), c.kind)
}

// newCanvas creates a window of the given variant and registers it with
// the application.
// newCanvas создает окно и регистрирует его в приложении.
func (e *Editor) newCanvas(variant chrome.Variant, kind string) *Canvas {
	buf := NewBuffer()
	c := &Canvas{
		buf:     buf,
		session: session.New(buf),
		variant: variant,
		kind:    kind,
		fg:      e.defaultFG,
		bg:      e.defaultBG,
	}
	buf.onChange = c.session.MarkDirty
	e.app.Register(c)
	return c
}

// createNewCanvas opens a new popup window ("New Window").
// createNewCanvas создает новое окно.
func (e *Editor) createNewCanvas() {
	if len(e.app.Windows()) >= MaxCanvases {
		e.ShowError(chrome.AppName, "The maximum number of windows has been reached ("+strconv.Itoa(MaxCanvases)+")")
		return
	}
	e.current = e.newCanvas(chrome.Popup, "")
	e.ShowInfo(chrome.AppName, "Window "+strconv.Itoa(e.windowNumber(e.current))+" created")
}

// switchToNextCanvas переключается на следующее окно по кругу.
func (e *Editor) switchToNextCanvas() {
	next := e.app.Next(e.current).(*Canvas)
	if next == e.current {
		e.ShowInfo(chrome.AppName, "There are no other windows")
		return
	}
	e.current = next
	e.ensureVisible()
}

// windowNumber is the 1-based position of c among the open windows.
func (e *Editor) windowNumber(c *Canvas) int {
	for i, w := range e.app.Windows() {
		if w == chrome.Window(c) {
			return i + 1
		}
	}
	return 0
}

// showHelpCanvas switches to the help window, creating it on first use.
func (e *Editor) showHelpCanvas() {
	if e.help != nil && e.windowNumber(e.help) != 0 {
		e.current = e.help
		return
	}
	c := e.newCanvas(chrome.Embedded, "help")
	c.session.Load(helpText(), "", "")
	c.saved = c.buf.Text()
	e.help = c
	e.current = c
}
