package raster

import "github.com/adampollak/pngraster/internal/pngerr"

// ReducedImage is one of the up-to-seven sub-images the inflated stream
// decomposes into (one for non-interlaced, seven for Adam7 — spec §3).
// FilterBytes and PixelBytes are still in filtered, bit-packed form as
// they came off the wire; Defilter rewrites PixelBytes in place, and
// Explode then returns a new image with one byte per sample.
type ReducedImage struct {
	Width, Height   int
	SamplesPerPixel int
	BitDepth        int
	ScanlineBytes   int
	FilterBytes     []byte // one entry per row
	PixelBytes      []byte // height * ScanlineBytes
}

// Split slices one reduced image's worth of filter-byte-prefixed scanlines
// off the front of data, returning the reduced image and the bytes left
// over. Every row must start with a filter byte in {0..4}; anything else
// is BadFilterType.
func Split(data []byte, width, height, samplesPerPixel, bitDepth int) (*ReducedImage, []byte, error) {
	scanlineBytes := BytesPerScanline(width, samplesPerPixel, bitDepth)
	rowBytes := 1 + scanlineBytes

	img := &ReducedImage{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		BitDepth:        bitDepth,
		ScanlineBytes:   scanlineBytes,
		FilterBytes:     make([]byte, height),
		PixelBytes:      make([]byte, height*scanlineBytes),
	}

	for y := 0; y < height; y++ {
		offset := y * rowBytes
		if offset+rowBytes > len(data) {
			return nil, nil, pngerr.New(pngerr.PayloadUnderrun, "not enough inflated data for scanline %d", y)
		}
		ft := data[offset]
		if ft > 4 {
			return nil, nil, pngerr.New(pngerr.BadFilterType, "filter type %d at row %d", ft, y)
		}
		img.FilterBytes[y] = ft
		copy(img.PixelBytes[y*scanlineBytes:(y+1)*scanlineBytes], data[offset+1:offset+rowBytes])
	}

	consumed := height * rowBytes
	return img, data[consumed:], nil
}

// SplitAll partitions the inflated stream into reduced images according to
// the interlace method: one non-interlaced image, or seven Adam7 passes
// (nil entries for passes with zero width or height).
func SplitAll(data []byte, width, height, samplesPerPixel, bitDepth int, adam7 bool) ([]*ReducedImage, error) {
	if !adam7 {
		img, rest, err := Split(data, width, height, samplesPerPixel, bitDepth)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, pngerr.New(pngerr.PayloadOverrun, "%d unread bytes after non-interlaced image", len(rest))
		}
		return []*ReducedImage{img}, nil
	}

	images := make([]*ReducedImage, 7)
	remaining := data
	for i, p := range Passes {
		pw, ph := p.PassDimensions(width, height)
		if pw == 0 || ph == 0 {
			continue
		}
		img, rest, err := Split(remaining, pw, ph, samplesPerPixel, bitDepth)
		if err != nil {
			return nil, err
		}
		images[i] = img
		remaining = rest
	}
	if len(remaining) != 0 {
		return nil, pngerr.New(pngerr.PayloadOverrun, "%d unread bytes after interlaced passes", len(remaining))
	}
	return images, nil
}

// Explode unpacks a sub-8-bit reduced image into one byte per sample,
// preserving sample order and zero-extending into the low bits. Images
// already at bitDepth >= 8 pass through unchanged (spec §4.7).
func Explode(img *ReducedImage) *ReducedImage {
	if img.BitDepth >= 8 {
		return img
	}

	samplesPerRow := img.Width * img.SamplesPerPixel
	out := &ReducedImage{
		Width:           img.Width,
		Height:          img.Height,
		SamplesPerPixel: img.SamplesPerPixel,
		BitDepth:        8,
		ScanlineBytes:   samplesPerRow,
		FilterBytes:     img.FilterBytes,
		PixelBytes:      make([]byte, img.Height*samplesPerRow),
	}

	samplesPerByte := 8 / img.BitDepth
	mask := byte(1<<img.BitDepth) - 1

	for y := 0; y < img.Height; y++ {
		src := img.PixelBytes[y*img.ScanlineBytes : (y+1)*img.ScanlineBytes]
		dst := out.PixelBytes[y*samplesPerRow : (y+1)*samplesPerRow]
		for i := 0; i < samplesPerRow; i++ {
			byteIdx := i / samplesPerByte
			shift := uint(8 - img.BitDepth - (i%samplesPerByte)*img.BitDepth)
			dst[i] = (src[byteIdx] >> shift) & mask
		}
	}
	return out
}
