package raster

// BytesPerSample returns how many bytes one exploded sample occupies: 1
// for every bit depth up to and including 8 (Explode already normalized
// anything narrower up to 8), 2 for bitDepth 16.
func BytesPerSample(bitDepth int) int {
	if bitDepth > 8 {
		return 2
	}
	return 1
}

// Assemble reassembles a set of defiltered, exploded reduced images into
// one full-size pixel grid. For non-interlaced input there is exactly one
// image already at full size, so this is a pass-through copy. For Adam7,
// each pass's samples are scattered into the target grid at
// (startCol + x*colIncr, startRow + y*rowIncr), copying
// samplesPerPixel*bytesPerSample bytes per pixel (spec §4.9), grounded on
// mi-v-viewshed-server's mergePassInto generalized from single-bit
// color-index copies to arbitrary pixel width.
func Assemble(images []*ReducedImage, width, height, samplesPerPixel, bytesPerSample int) []byte {
	stride := width * samplesPerPixel * bytesPerSample
	out := make([]byte, height*stride)

	if len(images) == 1 {
		copy(out, images[0].PixelBytes)
		return out
	}

	pixelBytes := samplesPerPixel * bytesPerSample
	for passIdx, img := range images {
		if img == nil {
			continue
		}
		p := Passes[passIdx]
		srcStride := img.Width * pixelBytes
		for y := 0; y < img.Height; y++ {
			dstY := p.StartRow + y*p.RowIncr
			for x := 0; x < img.Width; x++ {
				dstX := p.StartCol + x*p.ColIncr
				srcOff := y*srcStride + x*pixelBytes
				dstOff := dstY*stride + dstX*pixelBytes
				copy(out[dstOff:dstOff+pixelBytes], img.PixelBytes[srcOff:srcOff+pixelBytes])
			}
		}
	}
	return out
}
