package encoder

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/iox/imagex"
)

// RGBAImage wraps top-row-first RGBA pixels as an image.
func RGBAImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("have %d bytes for a %dx%d image", len(pixels), width, height)
	}
	return &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// SaveImage writes pixels to filename, the format following the extension.
func SaveImage(filename string, pixels []byte, width, height int) error {
	img, err := RGBAImage(pixels, width, height)
	if err != nil {
		return err
	}
	if err := imagex.Save(img, filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// FlipRows reverses the order of the rows of stride bytes in pix, turning
// bottom-up GL readback into top-down image order.
func FlipRows(pix []byte, stride int) {
	if stride <= 0 {
		return
	}
	rows := len(pix) / stride
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, b)
		copy(b, tmp)
	}
}
