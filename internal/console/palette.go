package console

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette paints text in the red/white/blue theme
type Palette interface {
	Red(s string) string
	White(s string) string
	Blue(s string) string
	Bright(s string) string
	// Colored reports whether the palette emits escape sequences
	Colored() bool
}

type ansiPalette struct{}

func (ansiPalette) Red(s string) string    { return "\x1b[31m" + s + "\x1b[0m" }
func (ansiPalette) White(s string) string  { return "\x1b[37m" + s + "\x1b[0m" }
func (ansiPalette) Blue(s string) string   { return "\x1b[34m" + s + "\x1b[0m" }
func (ansiPalette) Bright(s string) string { return "\x1b[1m" + s + "\x1b[0m" }
func (ansiPalette) Colored() bool          { return true }

type plainPalette struct{}

func (plainPalette) Red(s string) string    { return s }
func (plainPalette) White(s string) string  { return s }
func (plainPalette) Blue(s string) string   { return s }
func (plainPalette) Bright(s string) string { return s }
func (plainPalette) Colored() bool          { return false }

// NewPalette picks a palette for the color mode.
// In auto mode colors are used only when out is a terminal and NO_COLOR is unset.
func NewPalette(mode string, out *os.File) Palette {
	switch mode {
	case ColorAlways:
		return ansiPalette{}
	case ColorNever:
		return plainPalette{}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return plainPalette{}
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return ansiPalette{}
	}
	return plainPalette{}
}

// Plain returns the palette that never emits escape sequences
func Plain() Palette { return plainPalette{} }
