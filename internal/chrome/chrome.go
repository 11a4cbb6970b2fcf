// Package chrome holds what sits around an editor window: the application
// context listing open windows, the quit policy of each window variant and
// the frame title.
//
// Пакет chrome: контекст приложения со списком окон, правила выхода для
// каждого вида окна и заголовок рамки.
package chrome

import (
	"fmt"
	"slices"
)

// AppName is shown in frame titles and dialogs.
const AppName = "textpad"

// Variant is how a window is hosted.
type Variant int

const (
	// Main is the top-level window; quitting it ends the program.
	Main Variant = iota
	// Popup is a secondary window that closes on its own.
	Popup
	// Embedded is attached to another window and cannot be quit.
	Embedded
)

func (v Variant) String() string {
	switch v {
	case Main:
		return "main"
	case Popup:
		return "popup"
	case Embedded:
		return "embedded"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Outcome is the result of a quit request.
type Outcome int

const (
	Stay Outcome = iota
	CloseWindow
	ExitApp
)

func (o Outcome) String() string {
	switch o {
	case Stay:
		return "stay"
	case CloseWindow:
		return "close window"
	case ExitApp:
		return "exit"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Window is a handle to an open editor window.
type Window interface {
	Dirty() bool
}

// Confirmer is the dialog collaborator used while quitting.
type Confirmer interface {
	AskYesNo(title, prompt string) bool
	ShowInfo(title, msg string)
}

// App is the application context: the windows currently open, in the
// order they were registered.
type App struct {
	windows []Window
}

func NewApp() *App {
	return &App{}
}

// Register adds w unless it is already registered.
func (a *App) Register(w Window) {
	if !slices.Contains(a.windows, w) {
		a.windows = append(a.windows, w)
	}
}

// Unregister removes w. Unknown handles are ignored.
func (a *App) Unregister(w Window) {
	if i := slices.Index(a.windows, w); i != -1 {
		a.windows = slices.Delete(a.windows, i, i+1)
	}
}

// Windows returns a snapshot of the registered windows.
func (a *App) Windows() []Window {
	return slices.Clone(a.windows)
}

// Next returns the window registered after w, wrapping around. It returns w
// when w is the only window or is not registered.
func (a *App) Next(w Window) Window {
	i := slices.Index(a.windows, w)
	if i == -1 || len(a.windows) < 2 {
		return w
	}
	return a.windows[(i+1)%len(a.windows)]
}

// ChangedOthers returns the dirty windows other than w.
func (a *App) ChangedOthers(w Window) []Window {
	var changed []Window
	for _, o := range a.Windows() {
		if o != w && o.Dirty() {
			changed = append(changed, o)
		}
	}
	return changed
}

// Quit applies the quit policy of variant v to window w.
//
// Main asks about its own changes and then about every other changed
// window; Popup asks only about itself and is unregistered on close;
// Embedded never quits.
func (a *App) Quit(w Window, v Variant, c Confirmer) Outcome {
	switch v {
	case Main:
		if w.Dirty() && !c.AskYesNo(AppName, "Discard changes made to file?") {
			return Stay
		}
		if n := len(a.ChangedOthers(w)); n > 0 {
			if !c.AskYesNo(AppName, otherChangedPrompt(n)) {
				return Stay
			}
		}
		return ExitApp
	case Popup:
		if w.Dirty() && !c.AskYesNo(AppName, "Text changed: quit and discard changes?") {
			return Stay
		}
		a.Unregister(w)
		return CloseWindow
	default:
		c.ShowInfo(AppName, "Quit not allowed")
		return Stay
	}
}

func otherChangedPrompt(n int) string {
	plural := ""
	if n > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d other edit window%s changed: quit and discard anyhow?", n, plural)
}

// FrameTitle builds "doc - textpad" or "doc - textpad - kind".
func FrameTitle(docTitle, kind string) string {
	title := docTitle + " - " + AppName
	if kind != "" {
		title += " - " + kind
	}
	return title
}
