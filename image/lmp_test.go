// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"image/color"
	"testing"
)

func lmp(w, h int32, idx ...byte) []byte {
	b := []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24),
		byte(h), byte(h >> 8), byte(h >> 16), byte(h >> 24)}
	return append(b, idx...)
}

func TestDecodeLMP(t *testing.T) {
	img, err := Decode("gfx/conback.lmp", lmp(2, 1, 10, 255))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{10, 10, 10, 255}) {
		t.Errorf("pixel 0 = %v", got)
	}
	// transparent pixels take the color of their neighbours
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{10, 10, 10, 0}) {
		t.Errorf("pixel 1 = %v", got)
	}
}

func TestDecodeLMPInvalid(t *testing.T) {
	tests := map[string][]byte{
		"short header": {1, 0},
		"zero size":    lmp(0, 4),
		"short pixels": lmp(4, 4, 1, 2, 3),
		"palette":      make([]byte, 768),
	}
	for name, data := range tests {
		if _, err := Decode("x.lmp", data); err == nil {
			t.Errorf("%s: Decode succeeded", name)
		}
	}
}
