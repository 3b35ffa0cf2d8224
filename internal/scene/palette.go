package scene

import "slices"

// CablePalette is the fixed cycle of cable colours.
var CablePalette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
}

// NextColor returns the palette colour after prev, wrapping around.
// An empty or unknown prev starts the cycle at the first colour.
func NextColor(prev string) string {
	i := slices.Index(CablePalette, prev)
	return CablePalette[(i+1)%len(CablePalette)]
}

// ValidColor reports whether c is one of the palette colours.
func ValidColor(c string) bool {
	return slices.Contains(CablePalette, c)
}

// NextPreferredColor steps a preferred-colour picker through the palette and
// then back to "" (automatic cycling).
func NextPreferredColor(cur string) string {
	i := slices.Index(CablePalette, cur)
	if i == len(CablePalette)-1 {
		return ""
	}
	return CablePalette[i+1]
}
