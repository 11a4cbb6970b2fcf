package main

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"textpad/internal/chrome"
)

// messageTimeout is how long a status message stays on screen.
const messageTimeout = 5 * time.Second

// Prompt represents a prompt for user input.
// Prompt представляет запрос пользовательского ввода.
type Prompt struct {
	Label string
	Value string
	// yesNo prompts take a single y/n key instead of a line.
	yesNo bool
}

// readLine runs a nested event loop until the user accepts (Enter) or
// cancels (Esc) the prompt.
// readLine запускает вложенный цикл событий до Enter или Esc.
func (e *Editor) readLine(label, initial string) (string, bool) {
	p := &Prompt{Label: label, Value: initial}
	e.prompt = p
	defer func() { e.prompt = nil }()

	for {
		e.render()
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return "", false
		case *tcell.EventResize:
			e.refreshSize()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEsc:
				return "", false
			case tcell.KeyEnter:
				return p.Value, true
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if runes := []rune(p.Value); len(runes) > 0 {
					p.Value = string(runes[:len(runes)-1])
				}
			case tcell.KeyCtrlU:
				p.Value = ""
			case tcell.KeyCtrlV:
				text, err := e.clipboardRead()
				if err != nil {
					e.ShowError(chrome.AppName, "Paste error: "+err.Error())
					continue
				}
				text = strings.ReplaceAll(text, "\r\n", "\n")
				text, _, _ = strings.Cut(text, "\n")
				p.Value += text
			case tcell.KeyRune:
				p.Value += string(ev.Rune())
			}
		}
	}
}

// AskString prompts for a line of text. An empty answer counts as no answer.
// AskString запрашивает строку; пустой ответ считается отказом.
func (e *Editor) AskString(title, prompt, initial string) (string, bool) {
	v, ok := e.readLine(prompt, initial)
	v = strings.TrimSpace(v)
	e.log.Debug("prompt answered", "title", title, "prompt", prompt, "answered", ok && v != "")
	return v, ok && v != ""
}

// AskYesNo waits for y or n. Esc answers no.
// AskYesNo ждет y или n; Esc означает нет.
func (e *Editor) AskYesNo(title, prompt string) bool {
	e.prompt = &Prompt{Label: prompt + " (y/n)", yesNo: true}
	defer func() { e.prompt = nil }()

	for {
		e.render()
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventResize:
			e.refreshSize()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEsc {
				return false
			}
			switch ev.Rune() {
			case 'y', 'Y':
				return true
			case 'n', 'N':
				return false
			}
		}
	}
}

// AskInteger prompts for a whole number.
// AskInteger запрашивает целое число.
func (e *Editor) AskInteger(title, prompt string) (int, bool) {
	v, ok := e.AskString(title, prompt, "")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.ShowError(title, "Not a whole number: "+v)
		return 0, false
	}
	return n, true
}

// ShowError displays an error message in the status bar with red background.
// ShowError отображает сообщение об ошибке в строке состояния с красным фоном.
func (e *Editor) ShowError(title, msg string) {
	e.log.Warn(msg, "title", title)
	e.setMessage(msg, true)
}

// ShowInfo displays a message in the status bar.
// ShowInfo отображает сообщение в строке состояния.
func (e *Editor) ShowInfo(title, msg string) {
	if title != chrome.AppName {
		msg = title + ": " + msg
	}
	e.setMessage(msg, false)
}

func (e *Editor) setMessage(msg string, isErr bool) {
	e.message = msg
	e.messageErr = isErr
	e.messageTime = e.now()
}

// activeMessage returns the status message unless it has expired.
func (e *Editor) activeMessage() (string, bool) {
	if e.message == "" || e.now().Sub(e.messageTime) >= messageTimeout {
		return "", false
	}
	return e.message, true
}

// chooseOpenPath asks for a file to open, relative to the start directory.
func (e *Editor) chooseOpenPath() (string, bool) {
	return e.choosePath("Open file (path)", "")
}

// chooseSavePath asks for a file to save to, pre-filled with the current one.
func (e *Editor) chooseSavePath() (string, bool) {
	return e.choosePath("Save as (path)", e.current.session.Path())
}

func (e *Editor) choosePath(label, initial string) (string, bool) {
	p, ok := e.AskString(chrome.AppName, label, initial)
	if !ok {
		return "", false
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.startDir, p)
	}
	return p, true
}
