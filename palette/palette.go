// SPDX-License-Identifier: GPL-2.0-or-later

// Package palette holds the 256 color table used to expand 8 bit indexed
// pictures.
package palette

import (
	"image/color"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Transparent is the index drawn with alpha 0.
const Transparent = 255

type Palette [256]color.NRGBA

var current atomic.Pointer[Palette]

func init() {
	var p Palette
	for i := range p {
		p[i] = color.NRGBA{uint8(i), uint8(i), uint8(i), 255}
	}
	p[Transparent].A = 0
	current.Store(&p)
}

// Parse reads a palette.lmp: 256 rgb triples.
func Parse(b []byte) (*Palette, error) {
	if len(b) != 3*256 {
		return nil, errors.Errorf("Palette has wrong size: %v", len(b))
	}
	var p Palette
	for i := range p {
		p[i] = color.NRGBA{b[3*i], b[3*i+1], b[3*i+2], 255}
	}
	p[Transparent].A = 0
	return &p, nil
}

// Set replaces the palette used by Current. Already expanded pictures are
// not affected.
func Set(p *Palette) {
	if p != nil {
		current.Store(p)
	}
}

// Current returns the palette in use, a gray ramp until Set is called.
func Current() *Palette {
	return current.Load()
}
