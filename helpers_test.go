package spritekit

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// frameColor is the fill color of sheet cell i in test sheets.
func frameColor(i int) color.NRGBA {
	return color.NRGBA{R: uint8(10 + i*20), G: uint8(200 - i*10), B: uint8(i * 7), A: 255}
}

// newSheetImage builds a w x h image whose fw x fh cells are filled with
// frameColor(index), indices running left to right, top to bottom.
func newSheetImage(w, h, fw, fh int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cols := w / fw
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col, row := x/fw, y/fh
			if col >= cols {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
				continue
			}
			img.SetNRGBA(x, y, frameColor(row*cols+col))
		}
	}
	return img
}

// newGradientImage builds an image where every pixel differs.
func newGradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8(x + y), A: uint8(255 - x - y)})
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeTestPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
	return path
}

// samePixels reports whether a and b have the same size and pixels,
// regardless of their bounds origin.
func samePixels(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if a.NRGBAAt(ab.Min.X+x, ab.Min.Y+y) != b.NRGBAAt(bb.Min.X+x, bb.Min.Y+y) {
				return false
			}
		}
	}
	return true
}

// subImage returns a copy of r within img, rebased to the origin.
func subImage(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return cloneNRGBA(img, r)
}

func countEvents(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}
