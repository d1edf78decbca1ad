package model

import "math/rand"

// Palette is the fixed set of colors assigned to new tags.
var Palette = []string{
	"#3B82F6", // blue
	"#EF4444", // red
	"#10B981", // green
	"#F59E0B", // yellow
	"#8B5CF6", // purple
	"#F97316", // orange
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#84CC16", // lime
	"#F43F5E", // rose
}

// RandomColor returns a color from Palette chosen uniformly at random.
func RandomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// InPalette reports whether color is one of the palette entries.
func InPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}
