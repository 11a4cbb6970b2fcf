package main

import (
	"fmt"
	"os"
	"strings"
)

var hotkeys = []string{
	"File:",
	"  Ctrl-N  New file (asks before discarding changes)",
	"  Ctrl-W  New window",
	"  Ctrl-O  Open file",
	"  Ctrl-S  Save file",
	"  Ctrl-E  Save as",
	"  Ctrl-B  Next window",
	"  Ctrl-Q  Quit window / editor",
	"Edit:",
	"  Ctrl-Z  Undo             Ctrl-Y  Redo",
	"  Ctrl-X  Cut              Ctrl-C  Copy",
	"  Ctrl-V  Paste            Del     Delete",
	"  Ctrl-F  Find             F3      Find next",
	"  Ctrl-R  Replace          F4      Replace next",
	"  Ctrl-G  Go to line       Ctrl-A  Select all",
	"  F5      Insert time and date at the end",
	"Format:",
	"  F6      Next colour preset",
	"  F7      Background colour (name or #rrggbb)",
	"  F8      Foreground colour (name or #rrggbb)",
	"Help:",
	"  Ctrl-J  This help window",
	"  F1      About",
	"Navigation:",
	"  Arrows, Home/End, PgUp/PgDn; with Shift they extend the selection",
}

// printUsage prints the command line help.
// printUsage выводит справку по командной строке.
func printUsage() {
	out := os.Stderr
	fmt.Fprintln(out, "textpad", Version, "- terminal text editor")
	fmt.Fprintln(out, "Usage: textpad [path]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -h, --help         Show this help and usage.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment:")
	fmt.Fprintln(out, "  TEXTPAD_CONFIG     Config file (default: <user config dir>/textpad/config.toml)")
	fmt.Fprintln(out, "  TEXTPAD_LOG        Log file (overrides logFile in the config)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Hotkeys:")
	for _, l := range hotkeys {
		fmt.Fprintln(out, "  "+l)
	}
}

// helpText is shown in the help window.
// helpText показывается в окне справки.
func helpText() string {
	lines := []string{
		"textpad " + Version,
		"",
		"Files are opened and saved through an encoding chain:",
		"  open: given encoding, your answer (openAskUser), openEncoding,",
		"        the locale's encoding, and at last the raw bytes;",
		"  save: the file's known encoding (savesUseKnownEncoding),",
		"        your answer (savesAskUser), savesEncoding, the locale's encoding.",
		"A save that no encoding can represent is refused and the file is not touched.",
		"",
	}
	lines = append(lines, hotkeys...)
	lines = append(lines, "", "Ctrl-B returns to your document. This window cannot be quit.")
	return strings.Join(lines, "\n")
}

func aboutText() string {
	return "textpad " + Version + ", a text editor with encoding negotiation, built on tcell"
}
