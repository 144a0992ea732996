package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// hueColor returns a colour for hue in degrees, wrapping past 360.
func hueColor(hue, s, v float64, alpha uint8) color.NRGBA {
	r, g, b := colorful.Hsv(math.Mod(hue, 360), s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
