// Package spritekit is the sprite cache, effect pipeline and animation
// scheduler behind a 2D game client's rendering, built for [Ebitengine].
//
// It has three parts, each usable on its own:
//
//   - [SpriteCache] owns decoded images keyed by name and cuts sprite sheets
//     into grid frames.
//   - [ApplyEffects] is a pure pipeline (scale, rotate, flip, opacity, tint)
//     that turns a frame plus [RenderOptions] into a new image.
//   - [Scheduler] owns animation definitions and their playback state and is
//     advanced by the host frame loop.
//
// [Renderer] ties the cache and the pipeline together and is what a render
// layer normally holds.
//
// # Quick start
//
//	events := &spritekit.EventQueue{}
//	r := spritekit.NewRenderer(spritekit.Config{Events: events})
//	s := spritekit.NewScheduler(spritekit.Config{Events: events})
//
//	if err := r.LoadSpriteSheet("hero", "hero.png", 32, 32, 8); err != nil {
//		log.Fatal(err)
//	}
//	walk, _ := s.CreateAnimation("walk", "hero", []int{0, 1, 2, 3}, 120, true)
//	_ = s.PlayAnimation(walk)
//
// Then, once per frame:
//
//	s.Tick(1000.0 / float64(ebiten.TPS()))
//	for _, e := range events.Drain() {
//		if e.Type == spritekit.EventFrameChanged {
//			opts := spritekit.DefaultRenderOptions()
//			opts.Frame = e.Frame
//			img, _ := r.RenderSprite("hero", opts)
//			// draw img
//		}
//	}
//
// # Threading
//
// Nothing in this package locks or spawns goroutines (except the optional
// [Watcher]). All calls must come from the goroutine that runs the frame
// loop. Images returned by the cache and the pipeline are copies the caller
// may keep and modify.
//
// # Loading from data
//
// A YAML [Manifest] declares sprites and animations; [PackResources] bundles
// the image files into a bbolt resource file that [OpenResourceFile] serves
// as a [Decoder]. [TextureCache] uploads rendered frames as *ebiten.Image.
//
// [Ebitengine]: https://ebitengine.org
package spritekit
