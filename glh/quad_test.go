// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"testing"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		n, i       int
		x, y, w, h float32
	}{
		{1, 0, -1, -1, 2, 2},
		{4, 0, -1, 0, 1, 1},
		{4, 3, 0, -1, 1, 1},
		{5, 4, -1.0 / 3, -1.0 / 3, 2.0 / 3, 2.0 / 3},
	}
	for _, tt := range tests {
		x, y, w, h := Grid(tt.n, tt.i)
		if !near(x, tt.x) || !near(y, tt.y) || !near(w, tt.w) || !near(h, tt.h) {
			t.Errorf("Grid(%d, %d) = %v %v %v %v, want %v %v %v %v",
				tt.n, tt.i, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
		}
	}
}

func TestQuadVertices(t *testing.T) {
	v := quadVertices(-1, -1, 2, 2)
	// top left corner samples the first image row
	if v[20] != -1 || v[21] != 1 || v[22] != 0 || v[23] != 0 {
		t.Errorf("top left vertex = %v", v[20:24])
	}
	if v[0] != -1 || v[1] != -1 || v[3] != 1 {
		t.Errorf("bottom left vertex = %v", v[0:4])
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
