package spritekit

import "fmt"

// SheetGrid describes how a sprite sheet is cut into equally sized frames.
// Frames are numbered left to right, top to bottom, starting at 0.
type SheetGrid struct {
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	Columns     int // floor(image width / FrameWidth)
	Rows        int // floor(image height / FrameHeight)
}

// newSheetGrid validates the frame geometry against an image of the given
// size. Columns and rows are truncated; with strict set, an image that is not
// an exact multiple of the frame size is rejected instead.
func newSheetGrid(size Size, frameW, frameH, frameCount int, strict bool) (SheetGrid, error) {
	if frameW <= 0 || frameH <= 0 || frameCount <= 0 {
		return SheetGrid{}, fmt.Errorf("frame %dx%d x%d: %w", frameW, frameH, frameCount, ErrInvalidArgument)
	}
	if frameW > size.Width || frameH > size.Height {
		return SheetGrid{}, fmt.Errorf("frame %dx%d larger than image %dx%d: %w",
			frameW, frameH, size.Width, size.Height, ErrInvalidArgument)
	}
	if strict && (size.Width%frameW != 0 || size.Height%frameH != 0) {
		return SheetGrid{}, fmt.Errorf("image %dx%d is not a multiple of frame %dx%d: %w",
			size.Width, size.Height, frameW, frameH, ErrInvalidArgument)
	}
	g := SheetGrid{
		FrameWidth:  frameW,
		FrameHeight: frameH,
		FrameCount:  frameCount,
		Columns:     size.Width / frameW,
		Rows:        size.Height / frameH,
	}
	if frameCount > g.Columns*g.Rows {
		return SheetGrid{}, fmt.Errorf("%d frames do not fit a %dx%d grid: %w",
			frameCount, g.Columns, g.Rows, ErrInvalidArgument)
	}
	return g, nil
}

// FrameRect returns the pixel rectangle of frame index. It reports false for
// an index outside [0, FrameCount).
func (g SheetGrid) FrameRect(index int) (Rect, bool) {
	if index < 0 || index >= g.FrameCount || g.Columns <= 0 {
		return Rect{}, false
	}
	col := index % g.Columns
	row := index / g.Columns
	return Rect{
		X:      col * g.FrameWidth,
		Y:      row * g.FrameHeight,
		Width:  g.FrameWidth,
		Height: g.FrameHeight,
	}, true
}
