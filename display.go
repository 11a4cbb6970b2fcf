package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"textpad/internal/textnav"
)

const tabWidth = 4

// Bar styles.
// Стили строк состояния.
var (
	styleBar     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBarKey  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	stylePrompt  = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	styleError   = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleMessage = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
)

type shortcut struct {
	key, label string
}

var (
	fileShortcuts = []shortcut{
		{"^N", "New"}, {"^W", "Window"}, {"^O", "Open"}, {"^S", "Save"}, {"^E", "Save As"},
		{"^B", "Next"}, {"^Q", "Quit"}, {"^J", "Help"}, {"F1", "About"}, {"F6", "Colours"},
	}
	editShortcuts = []shortcut{
		{"^Z", "Undo"}, {"^Y", "Redo"}, {"^X", "Cut"}, {"^C", "Copy"}, {"^V", "Paste"},
		{"^F", "Find"}, {"F3", "Next"}, {"^R", "Replace"}, {"^G", "Go To"}, {"^A", "All"}, {"F5", "Time"},
	}
)

// refreshSize updates the editor's dimensions.
// refreshSize обновляет размеры редактора.
func (e *Editor) refreshSize() {
	w, h := e.screen.Size()
	if e.cfg.Width > 0 && w > e.cfg.Width {
		w = e.cfg.Width
	}
	if e.cfg.Height > 0 && h > e.cfg.Height+3 {
		h = e.cfg.Height + 3
	}
	e.width = max(w, 1)
	e.height = max(h, 4)
}

func (e *Editor) contentRows() int {
	return max(e.height-3, 1)
}

// cellColumn is the screen column of rune col in line, with tabs expanded.
func cellColumn(line string, col int) int {
	x := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			x += tabWidth - x%tabWidth
		} else {
			x += runewidth.RuneWidth(r)
		}
	}
	return x
}

// ensureVisible scrolls the current window so the cursor is on screen.
// ensureVisible обеспечивает видимость курсора на экране.
func (e *Editor) ensureVisible() {
	c := e.current
	cur := c.buf.Cursor()
	rows := e.contentRows()
	if cur.Line < c.offsetY {
		c.offsetY = cur.Line
	} else if cur.Line >= c.offsetY+rows {
		c.offsetY = cur.Line - rows + 1
	}
	x := cellColumn(c.buf.Line(cur.Line), cur.Col)
	if x < c.offsetX {
		c.offsetX = x
	} else if x >= c.offsetX+e.width {
		c.offsetX = x - e.width + 1
	}
}

// statusBar generates the top bar text.
// statusBar генерирует текст верхней строки состояния.
func (e *Editor) statusBar() string {
	c := e.current
	left := c.title()
	if c.Dirty() {
		left += " *"
	}

	cur := c.buf.Cursor()
	line := []rune(c.buf.Line(cur.Line))
	col := uniseg.GraphemeClusterCount(string(line[:cur.Col])) + 1
	enc := c.session.KnownEncoding()
	if enc == "" {
		enc = "-"
		if c.session.Path() != "" {
			enc = "raw bytes"
		}
	}
	right := fmt.Sprintf("Ln %d/%d, Col %d  %s  [%d/%d]",
		cur.Line+1, c.buf.LineCount(), col, enc, e.windowNumber(c), len(e.app.Windows()))

	pad := e.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 1 {
		left = runewidth.Truncate(left, max(e.width-runewidth.StringWidth(right)-1, 0), "…")
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// drawText draws text from column x and pads the row up to the editor width.
// It returns the column after the text.
func (e *Editor) drawText(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if x+rw > e.width {
			break
		}
		e.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	end := x
	for ; x < e.width; x++ {
		e.screen.SetContent(x, y, ' ', nil, style)
	}
	return end
}

func (e *Editor) drawShortcuts(y int, keys []shortcut) {
	x := 0
	for _, k := range keys {
		for _, part := range []struct {
			text  string
			style tcell.Style
		}{{k.key, styleBarKey}, {" " + k.label + "  ", styleBar}} {
			for _, r := range part.text {
				if x >= e.width {
					return
				}
				e.screen.SetContent(x, y, r, nil, part.style)
				x++
			}
		}
	}
	for ; x < e.width; x++ {
		e.screen.SetContent(x, y, ' ', nil, styleBar)
	}
}

// render renders the editor to the screen.
// render отображает редактор на экране.
func (e *Editor) render() {
	s := e.screen
	s.Clear()
	e.ensureVisible()
	c := e.current

	e.drawText(0, 0, e.statusBar(), styleBar)

	base := c.style(e.attrs)
	selStyle := base.Reverse(true)
	selStart, selEnd, selected := c.buf.Selection()
	for i := 0; i < e.contentRows(); i++ {
		y := i + 1
		for x := 0; x < e.width; x++ {
			s.SetContent(x, y, ' ', nil, base)
		}
		li := c.offsetY + i
		if li >= c.buf.LineCount() {
			continue
		}
		col := 0
		for ri, r := range []rune(c.buf.Line(li)) {
			rw := runewidth.RuneWidth(r)
			ch := r
			if r == '\t' {
				rw = tabWidth - col%tabWidth
				ch = ' '
			}
			style := base
			p := textnav.Pos{Line: li, Col: ri}
			if selected && !p.Before(selStart) && p.Before(selEnd) {
				style = selStyle
			}
			x := col - c.offsetX
			col += rw
			if x < 0 {
				continue
			}
			if x+rw > e.width {
				break
			}
			for cellOffset := 0; cellOffset < rw; cellOffset++ {
				drawRune := ch
				if cellOffset > 0 {
					drawRune = ' '
				}
				s.SetContent(x+cellOffset, y, drawRune, nil, style)
			}
		}
	}

	promptRow, msgRow := e.height-2, e.height-1
	if e.prompt != nil {
		text := e.prompt.Label
		if !e.prompt.yesNo {
			text += ": " + e.prompt.Value
		}
		end := e.drawText(0, promptRow, text, stylePrompt)
		s.ShowCursor(min(end, e.width-1), promptRow)
	} else {
		e.drawShortcuts(promptRow, fileShortcuts)
		cur := c.buf.Cursor()
		x := cellColumn(c.buf.Line(cur.Line), cur.Col) - c.offsetX
		s.ShowCursor(x, cur.Line-c.offsetY+1)
	}

	if msg, ok := e.activeMessage(); ok {
		style := styleMessage
		if e.messageErr {
			style = styleError
		}
		e.drawText(0, msgRow, " "+msg, style)
	} else {
		e.drawShortcuts(msgRow, editShortcuts)
	}
	s.Show()
}

// Run opens path, if given, and runs the editor's main loop.
// Run запускает основной цикл редактора.
func (e *Editor) Run(path string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	e.screen = s
	e.refreshSize()
	if path != "" {
		e.onOpen(path, "")
	}
	e.loop()
	return nil
}

func (e *Editor) loop() {
	for !e.quit {
		e.render()
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventResize:
			e.refreshSize()
			e.screen.Sync()
		}
	}
}
