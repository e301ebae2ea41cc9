package spritekit

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageExtensions lists the file extensions of the formats registered above.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether path has the extension of a format
// FileDecoder can decode.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Decoder turns a source path into a decoded image. Implementations report a
// missing source or undecodable data with an error; SpriteCache wraps it in
// ErrLoadFailure.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// FileDecoder decodes images from the local filesystem. PNG, JPEG, GIF, BMP
// and WebP are registered.
type FileDecoder struct{}

// Decode opens path and decodes it with the registered image formats.
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeReader(f, path)
}

func decodeReader(r io.Reader, path string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// cloneNRGBA copies the r sub-rectangle of src into a new straight-alpha
// image whose bounds start at (0, 0).
func cloneNRGBA(src image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if s, ok := src.(*image.NRGBA); ok {
		for y := 0; y < r.Dy(); y++ {
			si := s.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*r.Dx()], s.Pix[si:si+4*r.Dx()])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
