package sketch

import "image/color"

var (
	Background = color.RGBA{240, 240, 240, 255}
	Ink        = color.RGBA{40, 40, 40, 255}
	Muted      = color.RGBA{120, 120, 120, 255}
	White      = color.RGBA{255, 255, 255, 255}

	Blue   = color.RGBA{70, 130, 230, 255}
	Red    = color.RGBA{230, 80, 80, 255}
	Green  = color.RGBA{80, 190, 100, 255}
	Orange = color.RGBA{245, 150, 50, 255}
	Yellow = color.RGBA{250, 210, 50, 255}
	Purple = color.RGBA{150, 90, 200, 255}
	Brown  = color.RGBA{150, 100, 60, 255}
	Gray   = color.RGBA{170, 170, 170, 255}
	Dark   = color.RGBA{60, 60, 80, 255}
)

// Alpha returns c with its alpha replaced
func Alpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
