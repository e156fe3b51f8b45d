// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"

	"gotexcache/texture"
)

// Device uploads textures into the current GL context. Upload and Delete
// must run on the thread owning the context.
type Device struct {
	maxAnisotropy float32
	maxSize       int32
	deleteTexture func(id uint32)
}

// NewDevice queries the limits of the current context.
func NewDevice() *Device {
	d := &Device{
		maxAnisotropy: 1,
		deleteTexture: func(id uint32) {
			gl.DeleteTextures(1, &id)
		},
	}
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &d.maxAnisotropy)
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &d.maxSize)
	return d
}

func (d *Device) MaxSize() int32 {
	return d.maxSize
}

func (d *Device) Upload(img *image.NRGBA, flags texture.TexPref) (texture.TexID, error) {
	b := img.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	if d.maxSize > 0 && (w > d.maxSize || h > d.maxSize) {
		return 0, errors.Errorf("%dx%d exceeds GL_MAX_TEXTURE_SIZE %d", w, h, d.maxSize)
	}
	if img.Stride != 4*int(w) {
		// GL wants tightly packed rows
		img = repack(img)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	internalformat := int32(gl.RGB8)
	if flags&texture.TexPrefAlpha != 0 {
		internalformat = gl.RGBA8
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalformat, w, h,
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if flags&texture.TexPrefMipMap != 0 {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	d.setFilterModes(flags)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, errors.Errorf("glTexImage2D failed: 0x%x", e)
	}
	return texture.TexID(id), nil
}

func (d *Device) setFilterModes(flags texture.TexPref) {
	switch {
	case flags&texture.TexPrefNearest != 0:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	case flags&texture.TexPrefMipMap != 0:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, d.maxAnisotropy)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (d *Device) Delete(id texture.TexID) {
	d.deleteTexture(uint32(id))
}

// Bind binds the GL texture of t to unit. Textures without GPU data bind
// the null texture.
func Bind(t *texture.Texture, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	id, ok := t.GLID()
	if !ok {
		id = 0
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func repack(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return dst
}
