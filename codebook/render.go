package codebook

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Render draws the codeword with the given id as a sidePixels x sidePixels
// grayscale image. The marker bits are surrounded by borderBits cells of
// black; set bits are white. The one pixel per cell canvas is scaled up with
// nearest neighbour sampling.
func (c *Codebook) Render(id int, sidePixels int, borderBits int) (*image.Gray, error) {
	return c.RenderWith(id, sidePixels, borderBits, draw.NearestNeighbor)
}

// RenderWith is Render using a caller supplied scaler for the final resample.
func (c *Codebook) RenderWith(id int, sidePixels int, borderBits int, scaler draw.Scaler) (*image.Gray, error) {
	if sidePixels <= c.markerSize {
		return nil, ErrBadSide
	}
	if borderBits <= 0 {
		return nil, ErrBadBorder
	}
	bits, err := c.Bits(id)
	if err != nil {
		return nil, err
	}

	cells := c.markerSize + 2*borderBits
	tiny := image.NewGray(image.Rect(0, 0, cells, cells))
	for row := 0; row < c.markerSize; row++ {
		for col := 0; col < c.markerSize; col++ {
			if bits.At(row, col) {
				tiny.SetGray(borderBits+col, borderBits+row, color.Gray{Y: 0xff})
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, sidePixels, sidePixels))
	scaler.Scale(out, out.Bounds(), tiny, tiny.Bounds(), draw.Src, nil)
	return out, nil
}
