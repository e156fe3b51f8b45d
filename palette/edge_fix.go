// SPDX-License-Identifier: GPL-2.0-or-later

package palette

import (
	"image"
)

// AlphaEdgeFix gives fully transparent pixels the average color of their
// opaque neighbours so filtering does not bleed the transparent color into
// edges. The image wraps at its borders.
func AlphaEdgeFix(img *image.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	offset := func(x, y int) int {
		return img.PixOffset(b.Min.X+(x+w)%w, b.Min.Y+(y+h)%h)
	}
	d := img.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixel := offset(x, y)
			if d[pixel+3] != 0 {
				continue
			}
			r, g, bl, count := 0, 0, 0, 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					p := offset(x+dx, y+dy)
					if d[p+3] != 0 {
						r += int(d[p])
						g += int(d[p+1])
						bl += int(d[p+2])
						count++
					}
				}
			}
			if count != 0 {
				d[pixel] = byte(r / count)
				d[pixel+1] = byte(g / count)
				d[pixel+2] = byte(bl / count)
			}
		}
	}
}
