package spritekit

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a playback script.
type scriptStep struct {
	Action   string  `json:"action"`
	Anim     string  `json:"anim,omitempty"`
	Sprite   string  `json:"sprite,omitempty"`
	Frames   []int   `json:"frames,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Loop     bool    `json:"loop,omitempty"`
	Ms       float64 `json:"ms,omitempty"`
	Repeat   int     `json:"repeat,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
}

type playbackScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON sequence of scheduler commands, one step per
// call to Step. Animations are referred to by the name given in their
// "create" step:
//
//	{"steps": [
//	  {"action": "create", "anim": "walk", "sprite": "hero", "frames": [0,1,2,3], "duration": 120, "loop": true},
//	  {"action": "play", "anim": "walk"},
//	  {"action": "tick", "ms": 16, "repeat": 8},
//	  {"action": "pause", "anim": "walk"}
//	]}
//
// Supported actions: create, play, pause, stop, stopAll, remove, tick, speed
// (per animation), global, enable, disable.
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
	ids    map[string]int
	done   bool
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script playbackScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("spritekit: parse playback script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("spritekit: parse playback script: no steps")
	}
	return &ScriptRunner{steps: script.Steps, ids: make(map[string]int)}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// ID returns the animation id created for name.
func (r *ScriptRunner) ID(name string) (int, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Run executes every remaining step against s, stopping at the first error.
func (r *ScriptRunner) Run(s *Scheduler) error {
	for !r.done {
		if err := r.Step(s); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the next step against s.
func (r *ScriptRunner) Step(s *Scheduler) error {
	if r.done {
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++
	if r.cursor >= len(r.steps) {
		r.done = true
	}
	if err := r.exec(s, st); err != nil {
		return fmt.Errorf("spritekit: script step %d (%s): %w", r.cursor, st.Action, err)
	}
	return nil
}

func (r *ScriptRunner) exec(s *Scheduler, st scriptStep) error {
	switch st.Action {
	case "create":
		id, err := s.CreateAnimation(st.Anim, st.Sprite, st.Frames, st.Duration, st.Loop)
		if err != nil {
			return err
		}
		r.ids[st.Anim] = id
		return nil
	case "tick":
		n := max(st.Repeat, 1)
		for i := 0; i < n; i++ {
			s.Tick(st.Ms)
		}
		return nil
	case "stopAll":
		s.StopAllAnimations()
		return nil
	case "global":
		s.SetGlobalSpeed(st.Speed)
		return nil
	case "enable":
		s.SetEnabled(true)
		return nil
	case "disable":
		s.SetEnabled(false)
		return nil
	}

	id, ok := r.ids[st.Anim]
	if !ok {
		return fmt.Errorf("animation %q: %w", st.Anim, ErrNotFound)
	}
	switch st.Action {
	case "play":
		return s.PlayAnimation(id)
	case "pause":
		return s.PauseAnimation(id)
	case "stop":
		return s.StopAnimation(id)
	case "remove":
		return s.RemoveAnimation(id)
	case "speed":
		return s.SetAnimationSpeed(id, st.Speed)
	}
	return fmt.Errorf("unknown action %q: %w", st.Action, ErrInvalidArgument)
}
