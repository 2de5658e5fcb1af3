package ui

import (
	"fmt"
	"strings"
)

type rgb struct{ r, g, b uint8 }

// parseHex converts "#RRGGBB" to an rgb triple. Malformed input yields black.
func parseHex(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return rgb{}
	}
	var c rgb
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.r, &c.g, &c.b); err != nil {
		return rgb{}
	}
	return c
}

func (c rgb) lerp(to rgb, t float64) rgb {
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
	return rgb{mix(c.r, to.r), mix(c.g, to.g), mix(c.b, to.b)}
}

// Gradient colours text left to right between two truecolor stops.
type Gradient struct {
	from, to rgb
}

func NewGradient(fromHex, toHex string) Gradient {
	return Gradient{from: parseHex(fromHex), to: parseHex(toHex)}
}

// Render applies the gradient across the visible runes of text. Line breaks are
// kept and do not take a colour step. The result always ends with an ANSI reset.
func (g Gradient) Render(text string) string {
	if text == "" {
		return ""
	}
	visible := 0
	for _, r := range text {
		if r != '\n' {
			visible++
		}
	}
	if visible == 0 {
		return text
	}

	var sb strings.Builder
	idx := 0
	for _, r := range text {
		if r == '\n' {
			sb.WriteRune('\n')
			continue
		}
		t := 0.0
		if visible > 1 {
			t = float64(idx) / float64(visible-1)
		}
		c := g.from.lerp(g.to, t)
		fmt.Fprintf(&sb, "\033[38;2;%d;%d;%dm%c", c.r, c.g, c.b, r)
		idx++
	}
	sb.WriteString("\033[0m")
	return sb.String()
}

// GradientText is shorthand for NewGradient(startHex, endHex).Render(text).
func GradientText(text, startHex, endHex string) string {
	return NewGradient(startHex, endHex).Render(text)
}
