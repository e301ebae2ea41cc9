package spritekit

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RenderOptions selects the effects applied to a sprite frame. Start from
// DefaultRenderOptions: the zero value has Scale 0, which is invalid.
type RenderOptions struct {
	// Scale resizes the image uniformly. 1 leaves it unchanged.
	Scale float64
	// Rotation rotates clockwise by this many degrees. The canvas grows to
	// fit the rotated image.
	Rotation float64
	// FlipH and FlipV mirror the image horizontally and vertically.
	FlipH, FlipV bool
	// Opacity multiplies the alpha channel. Values are clamped to [0, 1].
	Opacity float64
	// Tint multiplies the color channels. ColorWhite leaves them unchanged;
	// Tint.A scales how strongly the tint applies.
	Tint Color
	// Frame selects a sheet frame for Renderer.RenderSprite. Negative means
	// the whole image.
	Frame int
}

// DefaultRenderOptions returns options that leave an image untouched.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scale:   1,
		Opacity: 1,
		Tint:    ColorWhite,
		Frame:   -1,
	}
}

// Validate reports options no pipeline stage can honour.
func (o RenderOptions) Validate() error {
	if math.IsNaN(o.Scale) || o.Scale <= 0 || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("spritekit: scale %v: %w", o.Scale, ErrInvalidArgument)
	}
	if math.IsNaN(o.Rotation) || math.IsInf(o.Rotation, 0) {
		return fmt.Errorf("spritekit: rotation %v: %w", o.Rotation, ErrInvalidArgument)
	}
	if math.IsNaN(o.Opacity) {
		return fmt.Errorf("spritekit: opacity %v: %w", o.Opacity, ErrInvalidArgument)
	}
	return nil
}

// ApplyEffects runs img through the effect pipeline and returns a new image:
// scale, rotate, flip, opacity, tint, in that order. Each stage is skipped
// when its option holds the no-op value, so DefaultRenderOptions yields a
// pixel-identical copy. Tint runs after opacity and keeps the reduced alpha.
//
// ApplyEffects returns nil if img is nil or opts fails Validate.
func ApplyEffects(img image.Image, opts RenderOptions) *image.NRGBA {
	if img == nil || opts.Validate() != nil {
		return nil
	}
	return applyEffects(cloneNRGBA(img, img.Bounds()), opts)
}

// applyEffects may return img itself or modify it in place; callers pass an
// image they own.
func applyEffects(img *image.NRGBA, opts RenderOptions) *image.NRGBA {
	if opts.Scale != 1 {
		img = scaleImage(img, opts.Scale)
	}
	if deg := normalizeDegrees(opts.Rotation); deg != 0 {
		img = rotateImage(img, deg)
	}
	if opts.FlipH || opts.FlipV {
		img = flipImage(img, opts.FlipH, opts.FlipV)
	}
	if opts.Opacity < 1 {
		fadeImage(img, math.Max(opts.Opacity, 0))
	}
	if opts.Tint != ColorWhite {
		tintImage(img, opts.Tint)
	}
	return img
}

func scaleImage(src *image.NRGBA, s float64) *image.NRGBA {
	b := src.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*s)))
	h := max(1, int(math.Round(float64(b.Dy())*s)))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// normalizeDegrees maps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// rotateImage rotates src clockwise by deg in [0, 360) about its center onto
// a canvas sized to the rotated bounding box.
func rotateImage(src *image.NRGBA, deg float64) *image.NRGBA {
	var sin, cos float64
	interp := xdraw.Interpolator(xdraw.BiLinear)
	switch deg {
	case 90:
		sin, cos = 1, 0
	case 180:
		sin, cos = 0, -1
	case 270:
		sin, cos = -1, 0
	default:
		sin, cos = math.Sincos(deg * math.Pi / 180)
	}
	if sin == 0 || cos == 0 {
		// Right angles map pixel centers onto pixel centers.
		interp = xdraw.NearestNeighbor
	}

	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	nw := max(1, int(math.Ceil(math.Abs(w*cos)+math.Abs(h*sin)-1e-9)))
	nh := max(1, int(math.Ceil(math.Abs(w*sin)+math.Abs(h*cos)-1e-9)))
	cx, cy := w/2, h/2
	ncx, ncy := float64(nw)/2, float64(nh)/2

	// Source to destination: translate to the origin, rotate (Y points
	// down, so positive angles turn clockwise), translate to the new center.
	s2d := f64.Aff3{
		cos, -sin, ncx - cos*cx + sin*cy,
		sin, cos, ncy - sin*cx - cos*cy,
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	interp.Transform(dst, s2d, src, b, xdraw.Src, nil)
	return dst
}

// flipImage mirrors src in a single pass.
func flipImage(src *image.NRGBA, horizontal, vertical bool) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := y
		if vertical {
			sy = h - 1 - y
		}
		for x := 0; x < w; x++ {
			sx := x
			if horizontal {
				sx = w - 1 - x
			}
			si := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// fadeImage multiplies every alpha value by opacity in place.
func fadeImage(img *image.NRGBA, opacity float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			a := &img.Pix[i+4*x+3]
			*a = uint8(math.Round(float64(*a) * opacity))
		}
	}
}

// tintImage multiply-blends the color channels with tint and leaves the
// alpha channel as it was.
func tintImage(img *image.NRGBA, tint Color) {
	k := clamp01(tint.A)
	fr := 1 - k + k*clamp01(tint.R)
	fg := 1 - k + k*clamp01(tint.G)
	fb := 1 - k + k*clamp01(tint.B)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[i+4*x : i+4*x+3 : i+4*x+3]
			p[0] = uint8(math.Round(float64(p[0]) * fr))
			p[1] = uint8(math.Round(float64(p[1]) * fg))
			p[2] = uint8(math.Round(float64(p[2]) * fb))
		}
	}
}

func clamp01(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
