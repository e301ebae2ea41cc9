package spritekit

import "github.com/hajimehoshi/ebiten/v2"

// DefaultTextureCapacity is the TextureCache size used when none is given.
const DefaultTextureCapacity = 256

type textureKey struct {
	name string
	opts RenderOptions
}

type textureEntry struct {
	img *ebiten.Image
	seq uint64
}

// TextureCache uploads rendered sprites to the GPU as *ebiten.Image and keeps
// them until the sprite changes. Register it as (part of) Config.Events so
// loads, unloads and cache clears invalidate stale textures:
//
//	tc := spritekit.NewTextureCache(0)
//	r := spritekit.NewRenderer(spritekit.Config{Events: tc})
//	...
//	img, ok := tc.Texture(r, "hero", opts) // in Draw
//
// Textures are owned by the cache; do not Deallocate them.
type TextureCache struct {
	entries  map[textureKey]textureEntry
	capacity int
	seq      uint64
}

// NewTextureCache creates a cache holding at most capacity textures. A
// non-positive capacity uses DefaultTextureCapacity.
func NewTextureCache(capacity int) *TextureCache {
	if capacity <= 0 {
		capacity = DefaultTextureCapacity
	}
	return &TextureCache{
		entries:  make(map[textureKey]textureEntry),
		capacity: capacity,
	}
}

// Texture returns the GPU texture of name rendered with opts, rendering and
// uploading it on first use.
func (tc *TextureCache) Texture(r *Renderer, name string, opts RenderOptions) (*ebiten.Image, bool) {
	key := textureKey{name: name, opts: opts}
	tc.seq++
	if e, ok := tc.entries[key]; ok {
		e.seq = tc.seq
		tc.entries[key] = e
		return e.img, true
	}
	src, ok := r.RenderSprite(name, opts)
	if !ok {
		return nil, false
	}
	if len(tc.entries) >= tc.capacity {
		tc.evictOldest()
	}
	img := ebiten.NewImageFromImage(src)
	tc.entries[key] = textureEntry{img: img, seq: tc.seq}
	return img, true
}

// Len returns the number of resident textures.
func (tc *TextureCache) Len() int {
	return len(tc.entries)
}

// Invalidate drops every texture of the named sprite.
func (tc *TextureCache) Invalidate(name string) {
	for k, e := range tc.entries {
		if k.name == name {
			e.img.Deallocate()
			delete(tc.entries, k)
		}
	}
}

// InvalidateAll drops every texture.
func (tc *TextureCache) InvalidateAll() {
	for k, e := range tc.entries {
		e.img.Deallocate()
		delete(tc.entries, k)
	}
}

// HandleEvent implements EventHandler.
func (tc *TextureCache) HandleEvent(e Event) {
	switch e.Type {
	case EventSpriteLoaded, EventSpriteUnloaded:
		tc.Invalidate(e.Name)
	case EventCacheCleared, EventRenderEnabledChanged:
		tc.InvalidateAll()
	}
}

func (tc *TextureCache) evictOldest() {
	var oldest textureKey
	var found bool
	var oldestSeq uint64
	for k, e := range tc.entries {
		if !found || e.seq < oldestSeq {
			oldest, oldestSeq, found = k, e.seq, true
		}
	}
	if found {
		tc.entries[oldest].img.Deallocate()
		delete(tc.entries, oldest)
	}
}
