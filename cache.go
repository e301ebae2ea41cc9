package spritekit

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"
)

// spriteRecord is one cached, decoded image.
type spriteRecord struct {
	name   string
	path   string
	img    *image.NRGBA
	size   Size
	sheet  bool
	grid   SheetGrid
	loaded bool
}

// SpriteInfo is a metadata snapshot of a cached sprite.
type SpriteInfo struct {
	Name       string
	Path       string // empty for images stored with LoadImage
	Size       Size   // original pixel size
	IsSheet    bool
	FrameCount int // 1 for plain sprites
	FrameSize  Size
	Columns    int
	Rows       int
	Loaded     bool
}

// SpriteCache owns decoded images keyed by name and understands sprite-sheet
// grid geometry. Images handed out are always copies, so replacing or
// unloading a sprite never alters an image a caller already holds.
//
// SpriteCache is not safe for concurrent use; all calls must come from the
// goroutine that runs the host frame loop.
type SpriteCache struct {
	records map[string]*spriteRecord
	decoder Decoder
	events  EventHandler
	sink    MessageSink
	strict  bool
}

// NewSpriteCache creates an empty cache.
func NewSpriteCache(cfg Config) *SpriteCache {
	cfg = cfg.withDefaults()
	return &SpriteCache{
		records: make(map[string]*spriteRecord),
		decoder: cfg.Decoder,
		events:  cfg.Events,
		sink:    cfg.Sink,
		strict:  cfg.StrictSheetGrid,
	}
}

// Load decodes the image at path and stores it under name as a plain sprite,
// replacing any sprite already stored under that name.
func (c *SpriteCache) Load(name, path string) error {
	if name == "" || path == "" {
		return c.invalid(fmt.Errorf("spritekit: load sprite %q from %q: %w", name, path, ErrInvalidArgument))
	}
	img, err := c.decode(name, path)
	if err != nil {
		return err
	}
	c.store(&spriteRecord{name: name, path: path, img: img})
	return nil
}

// LoadSheet decodes the image at path and stores it under name as a sprite
// sheet of frameCount frames, each frameW x frameH pixels. The grid is
// validated before anything is stored.
func (c *SpriteCache) LoadSheet(name, path string, frameW, frameH, frameCount int) error {
	if name == "" || path == "" || frameW <= 0 || frameH <= 0 || frameCount <= 0 {
		return c.invalid(fmt.Errorf("spritekit: load sheet %q from %q (%dx%d x%d): %w",
			name, path, frameW, frameH, frameCount, ErrInvalidArgument))
	}
	img, err := c.decode(name, path)
	if err != nil {
		return err
	}
	grid, err := newSheetGrid(imageSize(img), frameW, frameH, frameCount, c.strict)
	if err != nil {
		return c.invalid(fmt.Errorf("spritekit: load sheet %q: %w", name, err))
	}
	c.store(&spriteRecord{name: name, path: path, img: img, sheet: true, grid: grid})
	return nil
}

// LoadImage stores an already decoded image under name as a plain sprite. The
// image is copied; the caller keeps ownership of img. A nil or empty image is
// rejected like an empty name.
func (c *SpriteCache) LoadImage(name string, img image.Image) error {
	if name == "" || img == nil || img.Bounds().Empty() {
		return c.invalid(fmt.Errorf("spritekit: load image %q: %w", name, ErrInvalidArgument))
	}
	c.store(&spriteRecord{name: name, img: cloneNRGBA(img, img.Bounds())})
	return nil
}

// LoadSheetImage is LoadImage for a sprite sheet.
func (c *SpriteCache) LoadSheetImage(name string, img image.Image, frameW, frameH, frameCount int) error {
	if name == "" || img == nil || img.Bounds().Empty() {
		return c.invalid(fmt.Errorf("spritekit: load sheet image %q: %w", name, ErrInvalidArgument))
	}
	grid, err := newSheetGrid(imageSize(img), frameW, frameH, frameCount, c.strict)
	if err != nil {
		return c.invalid(fmt.Errorf("spritekit: load sheet image %q: %w", name, err))
	}
	c.store(&spriteRecord{name: name, img: cloneNRGBA(img, img.Bounds()), sheet: true, grid: grid})
	return nil
}

func (c *SpriteCache) decode(name, path string) (*image.NRGBA, error) {
	img, err := c.decoder.Decode(path)
	if err != nil {
		err = fmt.Errorf("spritekit: load sprite %q: %w: %w", name, ErrLoadFailure, err)
		c.sink.Message(SeverityWarning, err.Error(), CategorySprite)
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		err = fmt.Errorf("spritekit: load sprite %q from %q: empty image: %w", name, path, ErrLoadFailure)
		c.sink.Message(SeverityWarning, err.Error(), CategorySprite)
		return nil, err
	}
	return cloneNRGBA(img, img.Bounds()), nil
}

func (c *SpriteCache) invalid(err error) error {
	c.sink.Message(SeverityWarning, err.Error(), CategorySprite)
	return err
}

// store inserts rec, dropping any record with the same name.
func (c *SpriteCache) store(rec *spriteRecord) {
	rec.size = imageSize(rec.img)
	rec.loaded = true
	if !rec.sheet {
		rec.grid = SheetGrid{
			FrameWidth:  rec.size.Width,
			FrameHeight: rec.size.Height,
			FrameCount:  1,
			Columns:     1,
			Rows:        1,
		}
	}
	before := len(c.records)
	if _, ok := c.records[rec.name]; ok {
		c.sink.Message(SeverityDebug, fmt.Sprintf("replacing sprite %q", rec.name), CategorySprite)
	}
	c.records[rec.name] = rec
	c.sink.Message(SeverityDebug, fmt.Sprintf("loaded sprite %q %dx%d", rec.name, rec.size.Width, rec.size.Height), CategorySprite)
	c.events.HandleEvent(Event{Type: EventSpriteLoaded, Name: rec.name})
	if len(c.records) != before {
		c.events.HandleEvent(Event{Type: EventCacheSizeChanged, Count: len(c.records)})
	}
}

// Reload re-decodes every sprite loaded from path, keeping its sheet layout.
// A sprite whose new image fails to decode or no longer fits its grid keeps
// its old pixels. Reload returns the names that were refreshed.
func (c *SpriteCache) Reload(path string) []string {
	if path == "" {
		return nil
	}
	var reloaded []string
	for _, name := range c.Names() {
		rec := c.records[name]
		if rec.path == "" || !samePath(rec.path, path) {
			continue
		}
		img, err := c.decode(name, rec.path)
		if err != nil {
			continue
		}
		next := &spriteRecord{name: name, path: rec.path, img: img, sheet: rec.sheet}
		if rec.sheet {
			g := rec.grid
			grid, err := newSheetGrid(imageSize(img), g.FrameWidth, g.FrameHeight, g.FrameCount, c.strict)
			if err != nil {
				c.invalid(fmt.Errorf("spritekit: reload sheet %q: %w", name, err))
				continue
			}
			next.grid = grid
		}
		c.store(next)
		reloaded = append(reloaded, name)
	}
	return reloaded
}

// Unload removes the sprite stored under name. It is a no-op when the name
// is unknown.
func (c *SpriteCache) Unload(name string) {
	if _, ok := c.records[name]; !ok {
		return
	}
	delete(c.records, name)
	c.sink.Message(SeverityDebug, fmt.Sprintf("unloaded sprite %q", name), CategorySprite)
	c.events.HandleEvent(Event{Type: EventSpriteUnloaded, Name: name})
	c.events.HandleEvent(Event{Type: EventCacheSizeChanged, Count: len(c.records)})
}

// Clear releases every sprite.
func (c *SpriteCache) Clear() {
	n := len(c.records)
	clear(c.records)
	c.sink.Message(SeverityDebug, fmt.Sprintf("cleared %d sprites", n), CategorySprite)
	c.events.HandleEvent(Event{Type: EventCacheCleared})
	if n > 0 {
		c.events.HandleEvent(Event{Type: EventCacheSizeChanged, Count: 0})
	}
}

// Has reports whether a sprite is stored under name.
func (c *SpriteCache) Has(name string) bool {
	rec, ok := c.records[name]
	return ok && rec.loaded
}

// Len returns the number of cached sprites.
func (c *SpriteCache) Len() int {
	return len(c.records)
}

// Names returns the cached sprite names in ascending order.
func (c *SpriteCache) Names() []string {
	names := make([]string, 0, len(c.records))
	for name, rec := range c.records {
		if rec.loaded {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Info returns a metadata snapshot of the sprite stored under name.
func (c *SpriteCache) Info(name string) (SpriteInfo, bool) {
	rec, ok := c.lookup(name)
	if !ok {
		return SpriteInfo{}, false
	}
	return SpriteInfo{
		Name:       rec.name,
		Path:       rec.path,
		Size:       rec.size,
		IsSheet:    rec.sheet,
		FrameCount: rec.grid.FrameCount,
		FrameSize:  Size{rec.grid.FrameWidth, rec.grid.FrameHeight},
		Columns:    rec.grid.Columns,
		Rows:       rec.grid.Rows,
		Loaded:     rec.loaded,
	}, true
}

// Get returns a copy of the full image stored under name. For a sprite sheet
// that is the whole sheet.
func (c *SpriteCache) Get(name string) (*image.NRGBA, bool) {
	rec, ok := c.lookup(name)
	if !ok {
		return nil, false
	}
	return cloneNRGBA(rec.img, rec.img.Bounds()), true
}

// GetFrame returns a copy of one frame. Plain sprites ignore index and return
// the whole image. For sheets, an index outside [0, FrameCount) yields
// (nil, false).
func (c *SpriteCache) GetFrame(name string, index int) (*image.NRGBA, bool) {
	rec, ok := c.lookup(name)
	if !ok {
		return nil, false
	}
	if !rec.sheet {
		return cloneNRGBA(rec.img, rec.img.Bounds()), true
	}
	r, ok := rec.grid.FrameRect(index)
	if !ok {
		c.sink.Message(SeverityWarning, fmt.Sprintf("frame %d out of range for sheet %q (%d frames)",
			index, name, rec.grid.FrameCount), CategorySprite)
		return nil, false
	}
	return cloneNRGBA(rec.img, r.image()), true
}

func (c *SpriteCache) lookup(name string) (*spriteRecord, bool) {
	rec, ok := c.records[name]
	if !ok || !rec.loaded {
		c.sink.Message(SeverityWarning, fmt.Sprintf("sprite %q not loaded", name), CategorySprite)
		return nil, false
	}
	return rec, true
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func imageSize(img image.Image) Size {
	b := img.Bounds()
	return Size{b.Dx(), b.Dy()}
}
