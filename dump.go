package spritekit

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// DumpFrames writes every frame of the named sprite, rendered with opts, as
// PNG files into dir (created if missing). Files are named
// "<sprite>_<index>.png"; a plain sprite produces a single file. It returns
// the paths written.
func (r *Renderer) DumpFrames(name, dir string, opts RenderOptions) ([]string, error) {
	info, ok := r.SpriteInfo(name)
	if !ok {
		return nil, fmt.Errorf("spritekit: dump %q: %w", name, ErrNotFound)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spritekit: dump %q: mkdir %s: %w", name, dir, err)
	}
	safe := sanitizeLabel(name)
	var paths []string
	for i := 0; i < info.FrameCount; i++ {
		opts.Frame = i
		img, ok := r.RenderSprite(name, opts)
		if !ok {
			return paths, fmt.Errorf("spritekit: dump %q frame %d: %w", name, i, ErrInvalidArgument)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%03d.png", safe, i))
		if err := WritePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
