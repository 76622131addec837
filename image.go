package png

import (
	"image"
	"image/color"
)

// Image is the decoder's final output: a canonical RGBA8 raster (spec
// §4.11, §6). Bytes is owned exclusively by the caller once Decode
// returns; nothing in this package retains a reference to it.
type Image struct {
	Width, Height int
	Pitch         int
	BitsPerPixel  uint8
	Bytes         []byte
}

// ColorModel, Bounds and At let Image satisfy the standard image.Image
// interface, so it can be fed straight into golang.org/x/image/bmp or any
// other stdlib-compatible encoder without a copy.
func (img *Image) ColorModel() color.Model { return color.RGBAModel }

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

func (img *Image) At(x, y int) color.Color {
	off := y*img.Pitch + x*4
	return color.RGBA{img.Bytes[off], img.Bytes[off+1], img.Bytes[off+2], img.Bytes[off+3]}
}
