package spritekit

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// MaxSpeed caps the per-animation and global speed multipliers.
const MaxSpeed = 1e6

// AnimationDefinition is the immutable description of an animation.
type AnimationDefinition struct {
	ID              int
	Name            string
	Sprite          string  // name of the sprite or sheet the frames index into
	Frames          []int   // sheet frame indices, in playback order
	FrameDurationMs float64 // time each entry of Frames is shown
	TotalMs         float64 // len(Frames) * FrameDurationMs
	Loop            bool
}

// animation is a definition plus its playback state.
type animation struct {
	def     AnimationDefinition
	state   State
	elapsed float64 // ms, scaled by instance and global speed
	pos     int     // index into def.Frames
	speed   float64
	removed bool
}

// Scheduler owns animation definitions and their playback state. The host
// frame loop calls Tick once per frame; there are no timers and no
// goroutines. FrameChanged and the other playback events are delivered
// synchronously from Tick and from the control methods.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	anims       map[int]*animation
	active      []*animation // exactly the Playing animations, in play order
	scratch     []*animation
	ticking     bool
	nextID      int
	globalSpeed float64
	enabled     bool
	minSpeed    float64
	events      EventHandler
	sink        MessageSink
}

// NewScheduler creates an enabled scheduler with global speed 1.
func NewScheduler(cfg Config) *Scheduler {
	cfg = cfg.withDefaults()
	return &Scheduler{
		anims:       make(map[int]*animation),
		nextID:      1,
		globalSpeed: 1,
		enabled:     true,
		minSpeed:    cfg.MinAnimationSpeed,
		events:      cfg.Events,
		sink:        cfg.Sink,
	}
}

// CreateAnimation defines a new animation over the frames of sprite and
// returns its id. Ids start at 1 and are never reused. The animation starts
// Stopped at frame position 0.
func (s *Scheduler) CreateAnimation(name, sprite string, frames []int, frameDurationMs float64, loop bool) (int, error) {
	total := float64(len(frames)) * frameDurationMs
	if name == "" || sprite == "" || len(frames) == 0 ||
		!(frameDurationMs > 0) || math.IsInf(total, 0) {
		err := fmt.Errorf("spritekit: create animation %q on %q (%d frames, %vms): %w",
			name, sprite, len(frames), frameDurationMs, ErrInvalidArgument)
		s.sink.Message(SeverityWarning, err.Error(), CategoryAnimation)
		return 0, err
	}
	id := s.nextID
	s.nextID++
	a := &animation{
		def: AnimationDefinition{
			ID:              id,
			Name:            name,
			Sprite:          sprite,
			Frames:          slices.Clone(frames),
			FrameDurationMs: frameDurationMs,
			TotalMs:         total,
			Loop:            loop,
		},
		speed: 1,
	}
	s.anims[id] = a
	s.sink.Message(SeverityDebug, fmt.Sprintf("created animation %q id %d: %d frames, %vms",
		name, id, len(frames), a.def.TotalMs), CategoryAnimation)
	s.events.HandleEvent(Event{Type: EventAnimationCreated, ID: id, Name: name})
	s.events.HandleEvent(Event{Type: EventAnimationCountChanged, Count: len(s.anims)})
	return id, nil
}

func (s *Scheduler) get(id int) (*animation, error) {
	a, ok := s.anims[id]
	if !ok {
		err := fmt.Errorf("spritekit: animation %d: %w", id, ErrNotFound)
		s.sink.Message(SeverityWarning, err.Error(), CategoryAnimation)
		return nil, err
	}
	return a, nil
}

// RemoveAnimation deletes the animation and its playback state. The id is
// retired: every later call with it fails with ErrNotFound.
func (s *Scheduler) RemoveAnimation(id int) error {
	a, err := s.get(id)
	if err != nil {
		return err
	}
	if a.state == Playing {
		s.removeActive(a)
	}
	a.removed = true
	delete(s.anims, id)
	s.sink.Message(SeverityDebug, fmt.Sprintf("removed animation %q id %d", a.def.Name, id), CategoryAnimation)
	s.events.HandleEvent(Event{Type: EventAnimationRemoved, ID: id})
	s.events.HandleEvent(Event{Type: EventAnimationCountChanged, Count: len(s.anims)})
	return nil
}

// HasAnimation reports whether id names a live animation.
func (s *Scheduler) HasAnimation(id int) bool {
	_, ok := s.anims[id]
	return ok
}

// PlayAnimation starts a Stopped animation or resumes a Paused one where it
// left off. A non-looping animation that already finished restarts from the
// beginning. Playing an animation that is already Playing does nothing.
func (s *Scheduler) PlayAnimation(id int) error {
	a, err := s.get(id)
	if err != nil {
		return err
	}
	if a.state == Playing {
		return nil
	}
	if a.state == Stopped && a.elapsed >= a.def.TotalMs {
		a.elapsed, a.pos = 0, 0
	}
	a.state = Playing
	s.active = append(s.active, a)
	s.events.HandleEvent(Event{Type: EventAnimationStarted, ID: id})
	return nil
}

// PauseAnimation freezes a Playing animation. Other states are left alone.
func (s *Scheduler) PauseAnimation(id int) error {
	a, err := s.get(id)
	if err != nil {
		return err
	}
	if a.state != Playing {
		return nil
	}
	a.state = Paused
	s.removeActive(a)
	s.events.HandleEvent(Event{Type: EventAnimationPaused, ID: id})
	return nil
}

// StopAnimation stops the animation and rewinds it to frame position 0.
func (s *Scheduler) StopAnimation(id int) error {
	a, err := s.get(id)
	if err != nil {
		return err
	}
	s.stop(a)
	return nil
}

// StopAllAnimations stops every Playing or Paused animation.
func (s *Scheduler) StopAllAnimations() {
	for _, id := range s.sortedIDs() {
		a := s.anims[id]
		if a.state == Playing || a.state == Paused {
			s.stop(a)
		}
	}
}

func (s *Scheduler) stop(a *animation) {
	was := a.state
	if was == Playing {
		s.removeActive(a)
	}
	a.state = Stopped
	a.elapsed, a.pos = 0, 0
	if was != Stopped {
		s.events.HandleEvent(Event{Type: EventAnimationStopped, ID: a.def.ID})
	}
}

func (s *Scheduler) removeActive(a *animation) {
	if i := slices.Index(s.active, a); i >= 0 {
		s.active = slices.Delete(s.active, i, i+1)
	}
}

// Tick advances every Playing animation by dtMs milliseconds, scaled by the
// animation's speed and the global speed. It does nothing while the
// scheduler is disabled, the global speed is 0, dtMs is not positive, or no
// animation is Playing. Calling Tick from an event handler is a no-op.
func (s *Scheduler) Tick(dtMs float64) {
	if s.ticking || !s.enabled || !(s.globalSpeed > 0) || !(dtMs > 0) || math.IsInf(dtMs, 0) || len(s.active) == 0 {
		return
	}
	// Handlers may play, pause or remove animations; iterate a snapshot.
	s.ticking = true
	defer func() { s.ticking = false }()
	s.scratch = append(s.scratch[:0], s.active...)
	for i, a := range s.scratch {
		s.scratch[i] = nil
		if a.removed || a.state != Playing {
			continue
		}
		s.advance(a, dtMs)
	}
	s.scratch = s.scratch[:0]
}

func (s *Scheduler) advance(a *animation, dtMs float64) {
	d := &a.def
	a.elapsed += dtMs * a.speed * s.globalSpeed
	if math.IsInf(a.elapsed, 0) || math.IsNaN(a.elapsed) {
		// Overflowed; a loop wraps to its start, anything else runs out.
		a.elapsed = 0
		if !d.Loop {
			a.elapsed = d.TotalMs
		}
	}
	if a.elapsed >= d.TotalMs {
		if !d.Loop {
			a.elapsed = d.TotalMs
			s.setPos(a, len(d.Frames)-1)
			if a.removed || a.state != Playing {
				return
			}
			a.state = Stopped
			s.removeActive(a)
			s.sink.Message(SeverityDebug, fmt.Sprintf("animation %q id %d finished", d.Name, d.ID), CategoryAnimation)
			s.events.HandleEvent(Event{Type: EventAnimationFinished, ID: d.ID})
			return
		}
		a.elapsed = math.Mod(a.elapsed, d.TotalMs)
	}
	s.setPos(a, int(a.elapsed/d.FrameDurationMs)%len(d.Frames))
}

func (s *Scheduler) setPos(a *animation, pos int) {
	if pos == a.pos {
		return
	}
	a.pos = pos
	s.events.HandleEvent(Event{Type: EventFrameChanged, ID: a.def.ID, Frame: a.def.Frames[pos]})
}

// AnimationState returns the playback state of id.
func (s *Scheduler) AnimationState(id int) (State, error) {
	a, err := s.get(id)
	if err != nil {
		return Stopped, err
	}
	return a.state, nil
}

// CurrentFrame returns the sheet frame index currently shown by id.
func (s *Scheduler) CurrentFrame(id int) (int, error) {
	a, err := s.get(id)
	if err != nil {
		return -1, err
	}
	return a.def.Frames[a.pos], nil
}

// AnimationProgress returns elapsed time over total duration, in [0, 1].
func (s *Scheduler) AnimationProgress(id int) (float64, error) {
	a, err := s.get(id)
	if err != nil {
		return 0, err
	}
	return a.elapsed / a.def.TotalMs, nil
}

// AnimationElapsed returns the scaled playback time of id in milliseconds.
func (s *Scheduler) AnimationElapsed(id int) (float64, error) {
	a, err := s.get(id)
	if err != nil {
		return 0, err
	}
	return a.elapsed, nil
}

// Definition returns a copy of the definition of id.
func (s *Scheduler) Definition(id int) (AnimationDefinition, error) {
	a, err := s.get(id)
	if err != nil {
		return AnimationDefinition{}, err
	}
	def := a.def
	def.Frames = slices.Clone(def.Frames)
	return def, nil
}

// SetAnimationSpeed sets the speed multiplier of id. Values below the
// configured minimum (0.1 by default) are raised to it; +Inf is lowered to
// MaxSpeed.
func (s *Scheduler) SetAnimationSpeed(id int, speed float64) error {
	a, err := s.get(id)
	if err != nil {
		return err
	}
	switch {
	case math.IsNaN(speed) || speed < s.minSpeed:
		speed = s.minSpeed
	case speed > MaxSpeed:
		speed = MaxSpeed
	}
	a.speed = speed
	return nil
}

// AnimationSpeed returns the speed multiplier of id.
func (s *Scheduler) AnimationSpeed(id int) (float64, error) {
	a, err := s.get(id)
	if err != nil {
		return 0, err
	}
	return a.speed, nil
}

// SetGlobalSpeed scales every animation. Negative values are clamped to 0,
// which freezes all progression until a positive speed is set, and values
// above MaxSpeed to MaxSpeed.
func (s *Scheduler) SetGlobalSpeed(speed float64) {
	switch {
	case math.IsNaN(speed) || speed < 0:
		speed = 0
	case speed > MaxSpeed:
		speed = MaxSpeed
	}
	s.globalSpeed = speed
	s.sink.Message(SeverityDebug, fmt.Sprintf("global speed %v", speed), CategoryAnimation)
	s.events.HandleEvent(Event{Type: EventGlobalSpeedChanged, Speed: speed})
}

// GlobalSpeed returns the global speed multiplier.
func (s *Scheduler) GlobalSpeed() float64 { return s.globalSpeed }

// SetEnabled halts or resumes all progression. Elapsed times are kept.
func (s *Scheduler) SetEnabled(enabled bool) {
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	s.sink.Message(SeverityDebug, fmt.Sprintf("animation enabled: %v", enabled), CategoryAnimation)
	s.events.HandleEvent(Event{Type: EventAnimationEnabledChanged, Enabled: enabled})
}

// Enabled reports whether Tick advances animations.
func (s *Scheduler) Enabled() bool { return s.enabled }

// ActiveAnimations returns the ids of Playing animations in ascending order.
func (s *Scheduler) ActiveAnimations() []int {
	ids := make([]int, 0, len(s.active))
	for _, a := range s.active {
		ids = append(ids, a.def.ID)
	}
	sort.Ints(ids)
	return ids
}

// AnimationCount returns the number of live animations.
func (s *Scheduler) AnimationCount() int { return len(s.anims) }

func (s *Scheduler) sortedIDs() []int {
	ids := make([]int, 0, len(s.anims))
	for id := range s.anims {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
