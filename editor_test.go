package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"textpad/internal/chrome"
	"textpad/internal/config"
	"textpad/internal/textnav"
)

var testNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

// newTestEditor returns an editor drawing on a simulation screen. Keys the
// editor should read must be injected before the call that reads them.
func newTestEditor(t *testing.T, tweak func(*config.Config)) (*Editor, tcell.SimulationScreen, *string) {
	t.Helper()
	cfg := config.Default()
	if tweak != nil {
		tweak(&cfg)
	}
	e := NewEditor(cfg, nil)

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	e.screen = s
	e.refreshSize()

	e.startDir = t.TempDir()
	e.resolver.PlatformDefault = func() string { return "utf-8" }
	e.now = func() time.Time { return testNow }
	clip := new(string)
	e.clipboardRead = func() (string, error) { return *clip, nil }
	e.clipboardWrite = func(s string) error { *clip = s; return nil }
	return e, s, clip
}

func typeKeys(s tcell.SimulationScreen, text string) {
	for _, r := range text {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func pressEnter(s tcell.SimulationScreen) {
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func TestOpenAndSaveKeepsEncoding(t *testing.T) {
	e, _, _ := newTestEditor(t, func(c *config.Config) { c.SavesUseKnownEncoding = 1 })
	path := filepath.Join(e.startDir, "notes.txt")
	data, err := charmap.Windows1251.NewEncoder().String("привет\r\nмир")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	require.True(t, e.onOpen(path, "windows-1251"))
	c := e.current
	assert.Equal(t, "привет\nмир", c.buf.Text())
	assert.Equal(t, "windows-1251", c.session.KnownEncoding())
	assert.False(t, c.Dirty())
	assert.Equal(t, "notes - textpad", c.title())

	c.buf.MoveTo(c.buf.End(), false)
	c.buf.InsertText("!")
	require.True(t, c.Dirty())

	require.True(t, e.onSave())
	assert.False(t, c.Dirty())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := charmap.Windows1251.NewEncoder().String("привет\nмир!")
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestOpenFallsBackToRawBytes(t *testing.T) {
	e, s, _ := newTestEditor(t, func(c *config.Config) { c.SavesAskUser = true })
	path := filepath.Join(e.startDir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0xff, 0xfe, 'b'}, 0644))

	require.True(t, e.onOpen(path, ""))
	buf := e.current.buf
	assert.Equal(t, "", e.current.session.KnownEncoding())
	assert.Equal(t, "a\u00ff\u00feb", buf.Text())
	assert.Contains(t, e.message, "as raw bytes")
	assert.Contains(t, e.statusBar(), "raw bytes")

	buf.MoveTo(buf.End(), false)
	buf.InsertText("c")

	// replace the suggested encoding with latin-1
	s.InjectKey(tcell.KeyCtrlU, 0, tcell.ModNone)
	typeKeys(s, "latin-1")
	pressEnter(s)
	require.True(t, e.saveTo(path))
	assert.False(t, e.current.Dirty())
	assert.Equal(t, "latin-1", e.current.session.KnownEncoding())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0xff, 0xfe, 'b', 'c'}, got)
}

func TestSaveUnencodable(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	e.resolver.PlatformDefault = func() string { return "ascii" }
	path := filepath.Join(e.startDir, "price.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	e.current.buf.InsertText("5 €")

	assert.False(t, e.saveTo(path))
	assert.True(t, e.messageErr)
	assert.Equal(t, "Could not encode for file "+path, e.message)
	assert.True(t, e.current.Dirty())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "the file is not touched")
}

func TestOpenMissingFile(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	path := filepath.Join(e.startDir, "missing.txt")

	assert.False(t, e.onOpen(path, ""))
	assert.Equal(t, "Could not open file "+path, e.message)
	assert.True(t, e.messageErr)
}

func TestOpenDirtyAsksFirst(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	path := filepath.Join(e.startDir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))
	e.current.buf.InsertText("draft")

	// don't save, don't discard
	typeKeys(s, "nn")
	assert.False(t, e.onOpen(path, ""))
	assert.Equal(t, "draft", e.current.buf.Text())

	// don't save, discard
	typeKeys(s, "ny")
	assert.True(t, e.onOpen(path, ""))
	assert.Equal(t, "from disk", e.current.buf.Text())
}

func TestSaveAsAsksForPath(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.buf.InsertText("hello")

	typeKeys(s, "out.txt")
	pressEnter(s)
	require.True(t, e.onSave())

	path := filepath.Join(e.startDir, "out.txt")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, path, e.current.session.Path())
	assert.Equal(t, "utf-8", e.current.session.KnownEncoding())
}

func TestSaveCancelled(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.buf.InsertText("hello")

	s.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)
	assert.False(t, e.onSaveAs())
	assert.True(t, e.current.Dirty())
}

func TestNewAsksBeforeDiscarding(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.buf.InsertText("one\ntwo")

	typeKeys(s, "n")
	e.onNew()
	assert.Equal(t, "one\ntwo", e.current.buf.Text())

	typeKeys(s, "y")
	e.onNew()
	assert.Equal(t, "", e.current.buf.Text())
	assert.False(t, e.current.Dirty())
	assert.Equal(t, "", e.current.session.Path())

	// a clean buffer is emptied without asking
	e.current.session.Load("kept on disk", "/tmp/x.txt", "utf-8")
	e.onNew()
	assert.Equal(t, "", e.current.buf.Text())
}

func TestQuitMainWindow(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.buf.InsertText("unsaved")

	typeKeys(s, "n")
	e.onQuit()
	assert.False(t, e.quit)

	typeKeys(s, "y")
	e.onQuit()
	assert.True(t, e.quit)
}

func TestQuitPopupReturnsToMain(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	first := e.current
	e.createNewCanvas()
	require.NotSame(t, first, e.current)
	require.Len(t, e.app.Windows(), 2)

	e.onQuit()
	assert.False(t, e.quit)
	assert.Same(t, first, e.current)
	assert.Len(t, e.app.Windows(), 1)
}

func TestQuitMainWithChangedPopup(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	first := e.current
	e.createNewCanvas()
	e.current.buf.InsertText("popup draft")
	e.current = first

	typeKeys(s, "n")
	e.onQuit()
	assert.False(t, e.quit)
}

func TestHelpWindowCannotQuit(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	e.showHelpCanvas()
	help := e.current
	assert.Equal(t, chrome.Embedded, help.variant)
	assert.Contains(t, help.title(), "help")

	e.onQuit()
	assert.False(t, e.quit)
	assert.Same(t, help, e.current)
	assert.Equal(t, "Quit not allowed", e.message)

	e.switchToNextCanvas()
	assert.NotSame(t, help, e.current)
	e.showHelpCanvas()
	assert.Same(t, help, e.current, "the help window is reused")
}

func TestSwitchWithOneWindow(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	c := e.current
	e.switchToNextCanvas()
	assert.Same(t, c, e.current)
	assert.Equal(t, "There are no other windows", e.message)
}

func TestGotoLine(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.session.Load("a\nb\nc", "", "")

	typeKeys(s, "2")
	pressEnter(s)
	e.onGoto()
	assert.Equal(t, "b\n", e.current.buf.SelectedText())

	typeKeys(s, "99")
	pressEnter(s)
	e.onGoto()
	assert.Equal(t, "line number is beyond total numbers of lines", e.message)

	typeKeys(s, "x")
	pressEnter(s)
	e.onGoto()
	assert.Equal(t, "Not a whole number: x", e.message)
}

func TestFindAndFindNext(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.session.Load("Cat and cat", "", "")

	typeKeys(s, "cat")
	pressEnter(s)
	e.onFind()
	buf := e.current.buf
	start, end, ok := buf.Selection()
	require.True(t, ok)
	assert.Equal(t, textnav.Pos{Col: 0}, start)
	assert.Equal(t, textnav.Pos{Col: 3}, end)
	assert.Equal(t, end, buf.Cursor())

	e.onFindNext()
	start, _, _ = buf.Selection()
	assert.Equal(t, textnav.Pos{Col: 8}, start)

	e.onFindNext()
	assert.Equal(t, "word not found", e.message)
}

func TestFindCaseSensitive(t *testing.T) {
	e, s, _ := newTestEditor(t, func(c *config.Config) { c.CaseInsens = false })
	e.current.session.Load("Cat", "", "")

	typeKeys(s, "cat")
	pressEnter(s)
	e.onFind()
	assert.Equal(t, "word not found", e.message)
}

func TestReplace(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.session.Load("cat dog cat", "", "")

	typeKeys(s, "cat")
	pressEnter(s)
	typeKeys(s, "cow")
	pressEnter(s)
	e.onReplace()
	e.replaceNext()
	e.replaceNext()

	assert.Equal(t, "cow dog cow", e.current.buf.Text())
	assert.True(t, e.current.Dirty())

	e.onUndo()
	assert.Equal(t, "cow dog cat", e.current.buf.Text(), "each replacement is one undo step")
}

func TestClipboardCommands(t *testing.T) {
	e, _, clip := newTestEditor(t, nil)
	buf := e.current.buf
	e.current.session.Load("hello world", "", "")

	buf.Select(textnav.Pos{Col: 0}, textnav.Pos{Col: 6})
	e.onCut()
	assert.Equal(t, "hello ", *clip)
	assert.Equal(t, "world", buf.Text())

	*clip = "big\r\n"
	buf.MoveTo(buf.End(), false)
	e.onPaste()
	assert.Equal(t, "worldbig\n", buf.Text())
	assert.Equal(t, "big\n", buf.SelectedText())
	assert.Equal(t, textnav.Pos{Line: 1}, buf.Cursor())

	// pasting over a selection replaces it and selects the new text
	*clip = "BIG"
	buf.Select(textnav.Pos{Col: 0}, textnav.Pos{Col: 5})
	e.onPaste()
	assert.Equal(t, "BIGbig\n", buf.Text())
	assert.Equal(t, "BIG", buf.SelectedText())
	e.onUndo()

	e.onUndo()
	assert.Equal(t, "world", buf.Text())
	e.onRedo()
	assert.Equal(t, "worldbig\n", buf.Text())
}

func TestInsertTime(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	e.current.session.Load("log: ", "", "")
	e.onTime()
	assert.Equal(t, "log: "+testNow.Format(time.ANSIC), e.current.buf.Text())
	assert.Equal(t, textnav.Pos{}, e.current.buf.Cursor())
}

func TestAskString(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)

	typeKeys(s, "  utf-8 ")
	pressEnter(s)
	v, ok := e.AskString(chrome.AppName, "Encoding", "")
	require.True(t, ok)
	assert.Equal(t, "utf-8", v)

	pressEnter(s)
	_, ok = e.AskString(chrome.AppName, "Encoding", "")
	assert.False(t, ok, "empty answer")

	s.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	pressEnter(s)
	v, ok = e.AskString(chrome.AppName, "Encoding", "latin1")
	require.True(t, ok)
	assert.Equal(t, "latin", v)

	s.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)
	_, ok = e.AskString(chrome.AppName, "Encoding", "latin1")
	assert.False(t, ok)
	assert.Nil(t, e.prompt)
}

func TestAskYesNoIgnoresOtherKeys(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	typeKeys(s, "xY")
	assert.True(t, e.AskYesNo(chrome.AppName, "Really?"))

	s.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)
	assert.False(t, e.AskYesNo(chrome.AppName, "Really?"))
}

func TestStatusBar(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	bar := e.statusBar()
	assert.Contains(t, bar, "Untitled - textpad")
	assert.Contains(t, bar, "Ln 1/1, Col 1")
	assert.Contains(t, bar, "[1/1]")
	assert.NotContains(t, bar, "*")

	e.handleKey(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone))
	e.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	bar = e.statusBar()
	assert.Contains(t, bar, "Untitled - textpad *")
	assert.Contains(t, bar, "Ln 2/2, Col 1")
}

func TestMessageExpires(t *testing.T) {
	e, _, _ := newTestEditor(t, nil)
	e.ShowInfo(chrome.AppName, "hi")
	msg, ok := e.activeMessage()
	require.True(t, ok)
	assert.Equal(t, "hi", msg)

	e.now = func() time.Time { return testNow.Add(messageTimeout) }
	_, ok = e.activeMessage()
	assert.False(t, ok)
}

func TestRenderDrawsText(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.current.session.Load("abc\n\tx", "", "")
	e.render()

	cells, w, _ := s.GetContents()
	row := func(y, n int) string {
		var out []rune
		for x := 0; x < n; x++ {
			out = append(out, cells[y*w+x].Runes[0])
		}
		return string(out)
	}
	assert.Equal(t, "abc", row(1, 3))
	assert.Equal(t, "    x", row(2, 5), "tabs expand to the next stop")
}

func TestColourCommands(t *testing.T) {
	e, s, _ := newTestEditor(t, nil)
	e.onNextColours()
	assert.Equal(t, tcell.GetColor(colourPresets[1].fg), e.current.fg)
	assert.Equal(t, tcell.GetColor(colourPresets[1].bg), e.current.bg)

	typeKeys(s, "#000080")
	pressEnter(s)
	e.onPickColour(true)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0x80), e.current.bg)

	typeKeys(s, "mauve?")
	pressEnter(s)
	e.onPickColour(false)
	assert.True(t, e.messageErr)
}
