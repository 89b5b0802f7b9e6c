// This file is part of Videochain.
//
// Videochain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Videochain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Videochain.  If not, see <https://www.gnu.org/licenses/>.

package lut

import (
	"bufio"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/preset"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Error patterns used by the lut package.
const (
	LoadError = "lut: %s: %v"
)

// MaxSize is the largest width or height of a lookup texture.
const MaxSize = 4096

// Load the image for each LUT declaration.
func Load(specs []preset.LUT) ([]chain.LUT, error) {
	luts := make([]chain.LUT, 0, len(specs))
	for _, s := range specs {
		l, err := Open(s.ID, s.Path, s.Filter)
		if err != nil {
			return nil, err
		}
		luts = append(luts, l)
	}
	return luts, nil
}

// Open reads the image file at path and returns it as a LUT.
func Open(id string, path string, filter chain.Filter) (chain.LUT, error) {
	f, err := os.Open(path)
	if err != nil {
		return chain.LUT{}, curated.Errorf(LoadError, id, err)
	}
	defer f.Close()

	l, err := Decode(id, bufio.NewReader(f), filter)
	if err != nil {
		return chain.LUT{}, err
	}

	logger.Logf(logger.Allow, "lut", "%s: %s (%dx%d)", id, path, l.Width, l.Height)
	return l, nil
}

// Decode an image from the reader and return it as a LUT.
func Decode(id string, r io.Reader, filter chain.Filter) (chain.LUT, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return chain.LUT{}, curated.Errorf(LoadError, id, err)
	}

	l, err := FromImage(id, img, filter)
	if err != nil {
		return chain.LUT{}, err
	}

	logger.Logf(logger.Allow, "lut", "%s: decoded %s", id, format)
	return l, nil
}

// FromImage converts an image to a LUT.
func FromImage(id string, img image.Image, filter chain.Filter) (chain.LUT, error) {
	b := img.Bounds()
	if b.Empty() {
		return chain.LUT{}, curated.Errorf(LoadError, id, "image is empty")
	}

	w, h := fit(b.Dx(), b.Dy())
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		logger.Logf(logger.Allow, "lut", "%s: scaling %dx%d to %dx%d", id, b.Dx(), b.Dy(), w, h)
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}

	return chain.LUT{
		ID:     id,
		Filter: filter,
		Width:  w,
		Height: h,
		Pixels: argb(rgba),
	}, nil
}

// fit returns the dimensions scaled so that neither is larger than MaxSize.
func fit(w, h int) (int, int) {
	if w <= MaxSize && h <= MaxSize {
		return w, h
	}
	if w >= h {
		return MaxSize, max(1, h*MaxSize/w)
	}
	return max(1, w*MaxSize/h), MaxSize
}

// argb converts RGBA pixels to the byte order of the chain.ARGB format. the
// alpha channel is kept and the colour channels are unpremultiplied.
func argb(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	px := make([]byte, 0, w*h*chain.ARGB.Size())
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			r, g, b, a := row[x], row[x+1], row[x+2], row[x+3]
			if a != 0 && a != 0xff {
				r = uint8(uint16(r) * 0xff / uint16(a))
				g = uint8(uint16(g) * 0xff / uint16(a))
				b = uint8(uint16(b) * 0xff / uint16(a))
			}
			px = append(px, b, g, r, a)
		}
	}
	return px
}
