// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"gotexcache/texture"
)

const (
	quadVertexSource = `
#version 330
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texcoord;
out vec2 Texcoord;
void main() {
	Texcoord = texcoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

	quadFragmentSource = `
#version 330
in vec2 Texcoord;
out vec4 frag_color;
uniform sampler2D tex;
void main() {
	frag_color = texture(tex, Texcoord);
}
` + "\x00"
)

// QuadDrawer draws textures as screen aligned rectangles.
type QuadDrawer struct {
	prog *Program
	vao  *VertexArray
	vbo  *Buffer
	tex  int32
	data [24]float32
}

func NewQuadDrawer() (*QuadDrawer, error) {
	p, err := NewProgram(quadVertexSource, quadFragmentSource)
	if err != nil {
		return nil, err
	}
	d := &QuadDrawer{
		prog: p,
		vao:  NewVertexArray(),
		vbo:  NewArrayBuffer(),
		tex:  p.UniformLocation("tex"),
	}
	d.vao.Bind()
	d.vbo.Bind()
	d.vbo.SetData(4*len(d.data), gl.Ptr(&d.data[0]))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
	return d, nil
}

// Draw renders t into the rectangle x,y,w,h given in normalized device
// coordinates. Textures without GPU data are skipped.
func (d *QuadDrawer) Draw(t *texture.Texture, x, y, w, h float32) {
	if !t.Uploaded() {
		return
	}
	d.data = quadVertices(x, y, w, h)
	d.prog.Use()
	gl.Uniform1i(d.tex, 0)
	Bind(t, 0)
	d.vao.Bind()
	d.vbo.Bind()
	d.vbo.SetData(4*len(d.data), gl.Ptr(&d.data[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// quadVertices returns two triangles with interleaved position and
// texcoord. Image rows start at the top so v is flipped.
func quadVertices(x, y, w, h float32) [24]float32 {
	x1, y1 := x+w, y+h
	return [24]float32{
		x, y, 0, 1,
		x1, y, 1, 1,
		x1, y1, 1, 0,
		x, y, 0, 1,
		x1, y1, 1, 0,
		x, y1, 0, 0,
	}
}

// Grid lays out n cells in a square grid covering the viewport and
// returns the rectangle of cell i in normalized device coordinates.
func Grid(n, i int) (x, y, w, h float32) {
	cols := 1
	for cols*cols < n {
		cols++
	}
	cw := 2 / float32(cols)
	col, row := i%cols, i/cols
	return -1 + float32(col)*cw, 1 - float32(row+1)*cw, cw, cw
}
