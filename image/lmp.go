// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"encoding/binary"
	"image"
	"io"

	"github.com/pkg/errors"

	"gotexcache/palette"
)

// decodeLMP reads an 8 bit indexed picture: little endian int32 width and
// height followed by one palette index per pixel.
func decodeLMP(r io.Reader) (image.Image, error) {
	var hdr struct {
		Width, Height int32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrap(err, "lmp header")
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || hdr.Width > 1<<14 || hdr.Height > 1<<14 {
		return nil, errors.Errorf("bad lmp size %dx%d", hdr.Width, hdr.Height)
	}
	w, h := int(hdr.Width), int(hdr.Height)
	idx := make([]byte, w*h)
	if _, err := io.ReadFull(r, idx); err != nil {
		return nil, errors.Wrap(err, "lmp pixels")
	}
	pal := palette.Current()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	hasAlpha := false
	for i, c := range idx {
		p := pal[c]
		copy(img.Pix[4*i:4*i+4], []byte{p.R, p.G, p.B, p.A})
		hasAlpha = hasAlpha || c == palette.Transparent
	}
	if hasAlpha {
		palette.AlphaEdgeFix(img)
	}
	return img, nil
}
