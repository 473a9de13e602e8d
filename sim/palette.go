package sim

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FaceColors is the pre-shaded triple used for the three visible faces of an
// isometric cube. Top is the base color, Left and Right are progressively
// darker so the cube reads as lit from above.
type FaceColors struct {
	Top, Left, Right RGB
}

var defaultColors = []string{"#f2b64c", "#3aa6b9", "#7bd389", "#e2e8f0"}

var black = colorful.Color{R: 0, G: 0, B: 0}

// shadeColor expands one hex color into a face triple. Shading is done in
// Lab space so the darker faces keep the hue of the base color.
func shadeColor(hex string) (FaceColors, bool) {
	base, err := colorful.Hex(hex)
	if err != nil {
		return FaceColors{}, false
	}
	left := base.BlendLab(black, 0.28).Clamped()
	right := base.BlendLab(black, 0.48).Clamped()
	return FaceColors{
		Top:   toRGB(base),
		Left:  toRGB(left),
		Right: toRGB(right),
	}, true
}

// buildPalette expands every valid hex color. Malformed entries are skipped;
// if nothing remains the built-in palette is used instead.
func buildPalette(hexes []string) []FaceColors {
	out := make([]FaceColors, 0, len(hexes))
	for _, h := range hexes {
		if fc, ok := shadeColor(h); ok {
			out = append(out, fc)
		}
	}
	if len(out) == 0 {
		for _, h := range defaultColors {
			fc, _ := shadeColor(h)
			out = append(out, fc)
		}
	}
	return out
}

func toRGB(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}
