// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"bytes"
	"image"
	"testing"
)

func TestRepack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 4)).(*image.NRGBA)
	got := repack(sub)
	if got.Stride != 8 || got.Rect.Dx() != 2 || got.Rect.Dy() != 3 {
		t.Fatalf("repack bounds %v stride %d", got.Rect, got.Stride)
	}
	for y := 0; y < 3; y++ {
		want := src.Pix[src.PixOffset(1, 1+y) : src.PixOffset(1, 1+y)+8]
		if !bytes.Equal(got.Pix[y*8:(y+1)*8], want) {
			t.Errorf("row %d = %v, want %v", y, got.Pix[y*8:(y+1)*8], want)
		}
	}
}
