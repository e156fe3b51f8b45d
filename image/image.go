// SPDX-License-Identifier: GPL-2.0-or-later

// Package image turns raw asset bytes into NRGBA pixel buffers and writes
// them back out for debugging.
package image

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type decodeFunc func(io.Reader) (image.Image, error)

// tga has no magic number, so formats are picked by extension and only
// unknown extensions fall back to sniffing. Anything unrecognised is
// assumed to be tga.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
	".lmp":  decodeLMP,
}

func ext(name string) string {
	i := strings.LastIndexAny(name, "./\\")
	if i < 0 || name[i] != '.' {
		return ""
	}
	return strings.ToLower(name[i:])
}

// Decode decodes data using the decoder registered for the extension of
// name.
func Decode(name string, data []byte) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	d, ok := decoders[ext(name)]
	if !ok {
		d = sniff(data)
	}
	img, err = d(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.Errorf("decode %s: empty image", name)
	}
	return toNRGBA(img), nil
}

var magics = []struct {
	prefix string
	ext    string
}{
	{"\x89PNG\r\n\x1a\n", ".png"},
	{"\xff\xd8", ".jpg"},
	{"GIF8", ".gif"},
	{"BM", ".bmp"},
	{"II*\x00", ".tif"},
	{"MM\x00*", ".tif"},
}

func sniff(data []byte) decodeFunc {
	for _, m := range magics {
		if bytes.HasPrefix(data, []byte(m.prefix)) {
			return decoders[m.ext]
		}
	}
	if len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
		return webp.Decode
	}
	return tga.Decode
}

// Clone returns a private NRGBA copy of src that shares no memory with it.
func Clone(src image.Image) (*image.NRGBA, error) {
	if src == nil {
		return nil, errors.New("nil image")
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, errors.Errorf("image has no pixels: %v", b)
	}
	if n, ok := src.(*image.NRGBA); ok {
		if len(n.Pix) < n.PixOffset(b.Max.X-1, b.Max.Y-1)+4 {
			return nil, errors.Errorf("pixel buffer too short for %v", b)
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Fit shrinks img by picmip powers of two and then, if maxSize is positive,
// until neither side exceeds maxSize. The aspect ratio is kept.
func Fit(img *image.NRGBA, maxSize int, picmip uint) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	nw, nh := w>>picmip, h>>picmip
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if maxSize > 0 {
		if nw > maxSize {
			nh = max(1, nh*maxSize/nw)
			nw = maxSize
		}
		if nh > maxSize {
			nw = max(1, nw*maxSize/nh)
			nh = maxSize
		}
	}
	if nw == w && nh == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Write stores img at name as lossless WebP or, for a .png name, as PNG.
func Write(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext(name) {
	case ".png":
		err = png.Encode(f, img)
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = errors.Errorf("no encoder for %s", name)
	}
	if err != nil {
		return errors.Wrap(err, name)
	}
	return f.Close()
}
