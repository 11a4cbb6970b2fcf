package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// colourPreset is a foreground/background pair cycled by F6.
type colourPreset struct {
	fg, bg string
}

var colourPresets = []colourPreset{
	{"black", "white"},
	{"yellow", "black"},
	{"white", "blue"},
	{"black", "beige"},
	{"yellow", "purple"},
	{"black", "brown"},
	{"lightgreen", "darkgreen"},
	{"darkblue", "orange"},
	{"orange", "darkblue"},
}

// parseColour accepts a colour name known to tcell or "#rrggbb".
// parseColour принимает имя цвета или "#rrggbb".
func parseColour(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("unknown colour %q", s)
	}
	return c, nil
}

// fontAttrs maps a font style such as "bold italic" to terminal attributes.
// Family and size have no meaning in a terminal.
func fontAttrs(style string) tcell.AttrMask {
	var attrs tcell.AttrMask
	for _, word := range strings.Fields(strings.ToLower(style)) {
		switch word {
		case "bold":
			attrs |= tcell.AttrBold
		case "italic":
			attrs |= tcell.AttrItalic
		case "underline":
			attrs |= tcell.AttrUnderline
		}
	}
	return attrs
}
