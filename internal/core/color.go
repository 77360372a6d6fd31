package core

import "image/color"

// Color represents a foreground color for a drawable.
// Values map to ANSI 256-color codes in the terminal and to RGBA in a window.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var palette = map[Color]color.RGBA{
	ColorDefault:       {0x20, 0x20, 0x20, 0xff},
	ColorRed:           {0xff, 0x00, 0x00, 0xff},
	ColorGreen:         {0x00, 0xa0, 0x00, 0xff},
	ColorYellow:        {0xc0, 0xc0, 0x00, 0xff},
	ColorBlue:          {0x00, 0x00, 0xff, 0xff},
	ColorMagenta:       {0xff, 0x00, 0xff, 0xff},
	ColorCyan:          {0x00, 0xc0, 0xc0, 0xff},
	ColorWhite:         {0xc0, 0xc0, 0xc0, 0xff},
	ColorBrightRed:     {0xff, 0x55, 0x55, 0xff},
	ColorBrightGreen:   {0x55, 0xff, 0x55, 0xff},
	ColorBrightYellow:  {0xff, 0xff, 0x55, 0xff},
	ColorBrightBlue:    {0x55, 0x55, 0xff, 0xff},
	ColorBrightMagenta: {0xff, 0x55, 0xff, 0xff},
	ColorBrightCyan:    {0x55, 0xff, 0xff, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
}

// RGBA returns the color used by windowed renderers.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[ColorDefault]
}
