package printers

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	barFrom, _ = colorful.Hex("#5A56E0")
	barTo, _   = colorful.Hex("#EE6FF8")
	barEmpty   = "#3C3C3C"
)

// Colorful reports whether w is a terminal that should get colors.
func Colorful(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		// color.Output wraps stdout.
		if w != color.Output {
			return false
		}
		f = os.Stdout
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ProgressBar renders ratio in [0, 1] as a bar of width cells. Colored bars
// blend from violet to pink across the filled part.
func ProgressBar(ratio float64, width int, colored bool) string {
	if width <= 0 {
		return ""
	}
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)

	if !colored {
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
	}

	profile := termenv.EnvColorProfile()
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i >= filled {
			b.WriteString(termenv.String("░").Foreground(profile.Color(barEmpty)).String())
			continue
		}
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		hex := barFrom.BlendLuv(barTo, t).Hex()
		b.WriteString(termenv.String("█").Foreground(profile.Color(hex)).String())
	}
	return b.String()
}
