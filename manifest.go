package spritekit

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the sprites and animations of a scene so that a host can
// set them up from a data file instead of code:
//
//	sprites:
//	  - name: hero
//	    path: hero.png
//	    frameWidth: 32
//	    frameHeight: 32
//	    frameCount: 8
//	animations:
//	  - name: walk
//	    sprite: hero
//	    frames: [0, 1, 2, 3]
//	    frameDuration: 120
//	    autoplay: true
type Manifest struct {
	Sprites    []SpriteSpec    `yaml:"sprites"`
	Animations []AnimationSpec `yaml:"animations"`
}

// SpriteSpec describes one sprite. A non-zero FrameCount makes it a sheet.
type SpriteSpec struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	FrameWidth  int    `yaml:"frameWidth"`
	FrameHeight int    `yaml:"frameHeight"`
	FrameCount  int    `yaml:"frameCount"`
}

// AnimationSpec describes one animation. Loop defaults to true.
type AnimationSpec struct {
	Name          string  `yaml:"name"`
	Sprite        string  `yaml:"sprite"`
	Frames        []int   `yaml:"frames"`
	FrameDuration float64 `yaml:"frameDuration"`
	Loop          *bool   `yaml:"loop"`
	Speed         float64 `yaml:"speed"`
	Autoplay      bool    `yaml:"autoplay"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("spritekit: parse manifest: %w", err)
	}
	if len(m.Sprites) == 0 && len(m.Animations) == 0 {
		return nil, fmt.Errorf("spritekit: parse manifest: no sprites or animations")
	}
	return &m, nil
}

// ReadManifest reads and decodes the YAML manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spritekit: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Apply loads every sprite into r and creates every animation in s. Relative
// sprite paths are resolved against baseDir. It stops at the first error and
// returns the ids created so far, keyed by animation name.
func (m *Manifest) Apply(r *Renderer, s *Scheduler, baseDir string) (map[string]int, error) {
	for _, sp := range m.Sprites {
		path := sp.Path
		if path != "" && !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		var err error
		if sp.FrameCount > 0 {
			err = r.LoadSpriteSheet(sp.Name, path, sp.FrameWidth, sp.FrameHeight, sp.FrameCount)
		} else {
			err = r.LoadSprite(sp.Name, path)
		}
		if err != nil {
			return nil, err
		}
	}

	ids := make(map[string]int, len(m.Animations))
	for _, as := range m.Animations {
		if !r.HasSprite(as.Sprite) {
			return ids, fmt.Errorf("spritekit: animation %q: sprite %q: %w", as.Name, as.Sprite, ErrNotFound)
		}
		if _, dup := ids[as.Name]; dup {
			return ids, fmt.Errorf("spritekit: animation %q defined twice: %w", as.Name, ErrInvalidArgument)
		}
		loop := as.Loop == nil || *as.Loop
		id, err := s.CreateAnimation(as.Name, as.Sprite, as.Frames, as.FrameDuration, loop)
		if err != nil {
			return ids, err
		}
		ids[as.Name] = id
		if as.Speed != 0 {
			if err := s.SetAnimationSpeed(id, as.Speed); err != nil {
				return ids, err
			}
		}
		if as.Autoplay {
			if err := s.PlayAnimation(id); err != nil {
				return ids, err
			}
		}
	}
	return ids, nil
}
