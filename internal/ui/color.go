package ui

import (
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/eyestrain/internal/strain"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Level paints a in the accent colour of the strain level.
func Level(l strain.Level, a any) string {
	rgb, err := putils.RGBFromHEX(l.Accent())
	if err != nil {
		return Highlight(a)
	}

	return rgb.Sprint(a)
}
