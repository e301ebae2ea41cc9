package spritekit

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func newTestScheduler(t *testing.T) (*Scheduler, *EventQueue) {
	t.Helper()
	q := &EventQueue{}
	return NewScheduler(Config{Events: q}), q
}

func mustCreate(t *testing.T, s *Scheduler, name string, frames []int, ms float64, loop bool) int {
	t.Helper()
	id, err := s.CreateAnimation(name, "sheet", frames, ms, loop)
	if err != nil {
		t.Fatalf("CreateAnimation(%q): %v", name, err)
	}
	return id
}

func mustPlay(t *testing.T, s *Scheduler, id int) {
	t.Helper()
	if err := s.PlayAnimation(id); err != nil {
		t.Fatalf("PlayAnimation(%d): %v", id, err)
	}
}

func frameOf(t *testing.T, s *Scheduler, id int) int {
	t.Helper()
	f, err := s.CurrentFrame(id)
	if err != nil {
		t.Fatalf("CurrentFrame(%d): %v", id, err)
	}
	return f
}

func stateOf(t *testing.T, s *Scheduler, id int) State {
	t.Helper()
	st, err := s.AnimationState(id)
	if err != nil {
		t.Fatalf("AnimationState(%d): %v", id, err)
	}
	return st
}

// --- CreateAnimation ---

func TestCreateAnimation_SequentialIDs(t *testing.T) {
	s, q := newTestScheduler(t)
	a := mustCreate(t, s, "walk", []int{0, 1}, 100, true)
	b := mustCreate(t, s, "run", []int{2, 3}, 80, false)
	if a != 1 || b != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", a, b)
	}
	if s.AnimationCount() != 2 {
		t.Errorf("AnimationCount = %d, want 2", s.AnimationCount())
	}
	if stateOf(t, s, a) != Stopped || frameOf(t, s, a) != 0 {
		t.Error("new animation should be Stopped at its first frame")
	}

	events := q.Drain()
	want := []Event{
		{Type: EventAnimationCreated, ID: 1, Name: "walk"},
		{Type: EventAnimationCountChanged, Count: 1},
		{Type: EventAnimationCreated, ID: 2, Name: "run"},
		{Type: EventAnimationCountChanged, Count: 2},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestCreateAnimation_InvalidArguments(t *testing.T) {
	s, q := newTestScheduler(t)
	tests := []struct {
		name, anim, sprite string
		frames             []int
		ms                 float64
	}{
		{"empty name", "", "sheet", []int{0}, 100},
		{"empty sprite", "walk", "", []int{0}, 100},
		{"no frames", "walk", "sheet", nil, 100},
		{"zero duration", "walk", "sheet", []int{0}, 0},
		{"negative duration", "walk", "sheet", []int{0}, -16},
		{"NaN duration", "walk", "sheet", []int{0}, math.NaN()},
		{"infinite duration", "walk", "sheet", []int{0}, math.Inf(1)},
		{"total overflows", "walk", "sheet", []int{0, 1}, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.CreateAnimation(tt.anim, tt.sprite, tt.frames, tt.ms, false)
			if !errors.Is(err, ErrInvalidArgument) || id != 0 {
				t.Errorf("CreateAnimation = (%d, %v), want (0, ErrInvalidArgument)", id, err)
			}
		})
	}
	if q.Len() != 0 {
		t.Errorf("rejected creates emitted %d events", q.Len())
	}
	if id := mustCreate(t, s, "walk", []int{0}, 100, false); id != 1 {
		t.Errorf("first valid id = %d, want 1", id)
	}
}

func TestCreateAnimation_CopiesFrames(t *testing.T) {
	s, _ := newTestScheduler(t)
	frames := []int{4, 5, 6}
	id := mustCreate(t, s, "walk", frames, 50, true)
	frames[0] = 99

	def, err := s.Definition(id)
	if err != nil {
		t.Fatal(err)
	}
	if def.Frames[0] != 4 {
		t.Errorf("Frames[0] = %d, want 4", def.Frames[0])
	}
	if def.TotalMs != 150 || def.Name != "walk" || def.Sprite != "sheet" || !def.Loop {
		t.Errorf("Definition = %+v", def)
	}
	def.Frames[1] = 99
	if again, _ := s.Definition(id); again.Frames[1] != 5 {
		t.Error("Definition returned shared frame storage")
	}
}

// --- Tick: non-looping ---

func TestTick_NonLoopingFinishes(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "attack", []int{0, 1, 2}, 100, false)
	mustPlay(t, s, id)
	q.Drain()

	s.Tick(250)
	if f := frameOf(t, s, id); f != 2 {
		t.Errorf("frame after 250ms = %d, want 2", f)
	}
	if stateOf(t, s, id) != Playing {
		t.Error("animation stopped before its total duration")
	}

	s.Tick(100)
	if stateOf(t, s, id) != Stopped {
		t.Errorf("state = %v, want stopped", stateOf(t, s, id))
	}
	if f := frameOf(t, s, id); f != 2 {
		t.Errorf("finished frame = %d, want last frame 2", f)
	}
	if p, _ := s.AnimationProgress(id); p != 1 {
		t.Errorf("progress = %v, want 1", p)
	}

	s.Tick(100)
	events := q.Drain()
	if n := countEvents(events, EventAnimationFinished); n != 1 {
		t.Errorf("finished events = %d, want 1", n)
	}
	if n := countEvents(events, EventFrameChanged); n != 1 {
		t.Errorf("frame-changed events = %d, want 1", n)
	}
	if len(s.ActiveAnimations()) != 0 {
		t.Error("finished animation still active")
	}
}

func TestTick_NonLoopingExactEndFinishes(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "blink", []int{7, 8}, 50, false)
	mustPlay(t, s, id)
	q.Drain()

	s.Tick(100)
	events := q.Drain()
	want := []Event{
		{Type: EventFrameChanged, ID: id, Frame: 8},
		{Type: EventAnimationFinished, ID: id},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestPlay_AfterFinishRestarts(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "once", []int{0, 1}, 100, false)
	mustPlay(t, s, id)
	s.Tick(500)
	q.Drain()

	mustPlay(t, s, id)
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed after replay = %v, want 0", e)
	}
	if f := frameOf(t, s, id); f != 0 {
		t.Errorf("frame after replay = %d, want 0", f)
	}
	if stateOf(t, s, id) != Playing {
		t.Error("replay did not start the animation")
	}
	if got := q.Filter(EventAnimationStarted); len(got) != 1 {
		t.Errorf("started events = %d, want 1", len(got))
	}
}

// --- Tick: looping ---

func TestTick_LoopingWraps(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "idle", []int{0, 1, 2}, 100, true)
	mustPlay(t, s, id)
	q.Drain()

	s.Tick(150)
	if f := frameOf(t, s, id); f != 1 {
		t.Errorf("frame at 150ms = %d, want 1", f)
	}
	s.Tick(200)
	if f := frameOf(t, s, id); f != 0 {
		t.Errorf("frame at 350ms = %d, want 0", f)
	}
	if e, _ := s.AnimationElapsed(id); e != 50 {
		t.Errorf("elapsed = %v, want 50", e)
	}
	if stateOf(t, s, id) != Playing {
		t.Error("looping animation stopped")
	}
	events := q.Drain()
	if countEvents(events, EventAnimationFinished) != 0 {
		t.Error("looping animation emitted finished")
	}
	want := []Event{
		{Type: EventFrameChanged, ID: id, Frame: 1},
		{Type: EventFrameChanged, ID: id, Frame: 0},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestTick_LoopingExactBoundaryWraps(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "idle", []int{3, 4, 5}, 100, true)
	mustPlay(t, s, id)
	s.Tick(300)
	if f := frameOf(t, s, id); f != 3 {
		t.Errorf("frame at exactly one cycle = %d, want 3", f)
	}
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed = %v, want 0", e)
	}
}

func TestTick_WalkCycleFrameChange(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1, 2, 3}, 120, true)
	if err := s.SetAnimationSpeed(id, 1); err != nil {
		t.Fatal(err)
	}
	mustPlay(t, s, id)
	q.Drain()

	for i := 0; i < 3; i++ {
		s.Tick(16)
	}
	if got := q.Filter(EventFrameChanged); len(got) != 0 {
		t.Fatalf("frame changed after 48ms: %+v", got)
	}
	s.Tick(82)
	got := q.Filter(EventFrameChanged)
	want := []Event{{Type: EventFrameChanged, ID: id, Frame: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("frame-changed events = %+v, want %+v", got, want)
	}
}

// --- Speed ---

func TestTick_SpeedScalesElapsed(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1, 2, 3}, 100, true)
	mustPlay(t, s, id)
	if err := s.SetAnimationSpeed(id, 2); err != nil {
		t.Fatal(err)
	}
	s.SetGlobalSpeed(0.5)
	s.Tick(100)
	if e, _ := s.AnimationElapsed(id); e != 100 {
		t.Errorf("elapsed = %v, want 100", e)
	}
	s.SetGlobalSpeed(1)
	s.Tick(100)
	if e, _ := s.AnimationElapsed(id); e != 300 {
		t.Errorf("elapsed = %v, want 300", e)
	}
	if f := frameOf(t, s, id); f != 3 {
		t.Errorf("frame = %d, want 3", f)
	}
}

func TestSetAnimationSpeed_ClampsToMinimum(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0}, 100, true)
	for _, in := range []float64{0, 0.01, -5, math.NaN()} {
		if err := s.SetAnimationSpeed(id, in); err != nil {
			t.Fatal(err)
		}
		if got, _ := s.AnimationSpeed(id); got != DefaultMinAnimationSpeed {
			t.Errorf("SetAnimationSpeed(%v) -> %v, want %v", in, got, DefaultMinAnimationSpeed)
		}
	}
	if err := s.SetAnimationSpeed(id, 3); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.AnimationSpeed(id); got != 3 {
		t.Errorf("speed = %v, want 3", got)
	}
}

func TestSetAnimationSpeed_ConfiguredMinimum(t *testing.T) {
	s := NewScheduler(Config{MinAnimationSpeed: 0.25})
	id, _ := s.CreateAnimation("walk", "sheet", []int{0}, 100, true)
	_ = s.SetAnimationSpeed(id, 0.1)
	if got, _ := s.AnimationSpeed(id); got != 0.25 {
		t.Errorf("speed = %v, want 0.25", got)
	}
}

func TestSetGlobalSpeed_ZeroFreezes(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1}, 100, true)
	mustPlay(t, s, id)
	q.Drain()

	s.SetGlobalSpeed(0)
	s.Tick(1000)
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed with global speed 0 = %v, want 0", e)
	}
	s.SetGlobalSpeed(-2)
	if s.GlobalSpeed() != 0 {
		t.Errorf("GlobalSpeed = %v, want 0 after negative", s.GlobalSpeed())
	}
	s.SetGlobalSpeed(1)
	s.Tick(100)
	if f := frameOf(t, s, id); f != 1 {
		t.Errorf("frame after resuming = %d, want 1", f)
	}

	got := q.Filter(EventGlobalSpeedChanged)
	if len(got) != 3 || got[0].Speed != 0 || got[1].Speed != 0 || got[2].Speed != 1 {
		t.Errorf("global speed events = %+v", got)
	}
}

// --- Pause / Stop ---

func TestPause_PreservesElapsed(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1, 2}, 100, false)
	mustPlay(t, s, id)
	s.Tick(150)
	if err := s.PauseAnimation(id); err != nil {
		t.Fatal(err)
	}
	s.Tick(500)
	if e, _ := s.AnimationElapsed(id); e != 150 {
		t.Errorf("elapsed while paused = %v, want 150", e)
	}
	if stateOf(t, s, id) != Paused {
		t.Error("state should be paused")
	}
	mustPlay(t, s, id)
	s.Tick(100)
	if f := frameOf(t, s, id); f != 2 {
		t.Errorf("frame after resume = %d, want 2", f)
	}
	if len(q.Filter(EventAnimationPaused)) != 1 || len(q.Filter(EventAnimationStarted)) != 2 {
		t.Errorf("events = %+v", q.Drain())
	}
}

func TestPause_IgnoredWhenNotPlaying(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1}, 100, true)
	q.Drain()
	if err := s.PauseAnimation(id); err != nil {
		t.Fatal(err)
	}
	if stateOf(t, s, id) != Stopped || q.Len() != 0 {
		t.Error("pausing a stopped animation changed state or emitted events")
	}
}

func TestStop_Rewinds(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{5, 6, 7}, 100, true)
	mustPlay(t, s, id)
	s.Tick(150)
	q.Drain()

	if err := s.StopAnimation(id); err != nil {
		t.Fatal(err)
	}
	if stateOf(t, s, id) != Stopped || frameOf(t, s, id) != 5 {
		t.Error("stop did not rewind to the first frame")
	}
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed = %v, want 0", e)
	}
	if err := s.StopAnimation(id); err != nil {
		t.Fatal(err)
	}
	got := q.Drain()
	want := []Event{{Type: EventAnimationStopped, ID: id}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %+v, want %+v", got, want)
	}
}

func TestStopAllAnimations(t *testing.T) {
	s, q := newTestScheduler(t)
	a := mustCreate(t, s, "a", []int{0, 1}, 100, true)
	b := mustCreate(t, s, "b", []int{0, 1}, 100, true)
	c := mustCreate(t, s, "c", []int{0, 1}, 100, true)
	mustPlay(t, s, c)
	mustPlay(t, s, a)
	mustPlay(t, s, b)
	if err := s.PauseAnimation(b); err != nil {
		t.Fatal(err)
	}
	s.Tick(10)
	q.Drain()

	s.StopAllAnimations()
	want := []Event{
		{Type: EventAnimationStopped, ID: a},
		{Type: EventAnimationStopped, ID: b},
		{Type: EventAnimationStopped, ID: c},
	}
	if got := q.Drain(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %+v, want %+v", got, want)
	}
	for _, id := range []int{a, b, c} {
		if stateOf(t, s, id) != Stopped {
			t.Errorf("animation %d not stopped", id)
		}
	}
	if len(s.ActiveAnimations()) != 0 {
		t.Error("active list not empty after StopAll")
	}
}

// --- Remove ---

func TestRemoveAnimation(t *testing.T) {
	s, q := newTestScheduler(t)
	a := mustCreate(t, s, "a", []int{0, 1}, 100, true)
	mustPlay(t, s, a)
	q.Drain()

	if err := s.RemoveAnimation(a); err != nil {
		t.Fatal(err)
	}
	if s.HasAnimation(a) || s.AnimationCount() != 0 || len(s.ActiveAnimations()) != 0 {
		t.Error("removed animation still present")
	}
	want := []Event{
		{Type: EventAnimationRemoved, ID: a},
		{Type: EventAnimationCountChanged, Count: 0},
	}
	if got := q.Drain(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %+v, want %+v", got, want)
	}

	calls := map[string]error{
		"remove": s.RemoveAnimation(a),
		"play":   s.PlayAnimation(a),
		"pause":  s.PauseAnimation(a),
		"stop":   s.StopAnimation(a),
		"speed":  s.SetAnimationSpeed(a, 1),
	}
	for name, err := range calls {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%s on removed id = %v, want ErrNotFound", name, err)
		}
	}
	if f, err := s.CurrentFrame(a); f != -1 || !errors.Is(err, ErrNotFound) {
		t.Errorf("CurrentFrame = (%d, %v), want (-1, ErrNotFound)", f, err)
	}
	if _, err := s.AnimationState(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("AnimationState = %v, want ErrNotFound", err)
	}

	if b := mustCreate(t, s, "b", []int{0}, 100, true); b != 2 {
		t.Errorf("id after removal = %d, want 2", b)
	}
}

func TestUnknownAnimation(t *testing.T) {
	s, _ := newTestScheduler(t)
	for _, id := range []int{0, -1, 42} {
		if err := s.PlayAnimation(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("PlayAnimation(%d) = %v, want ErrNotFound", id, err)
		}
		if _, err := s.AnimationProgress(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("AnimationProgress(%d) = %v, want ErrNotFound", id, err)
		}
		if _, err := s.Definition(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Definition(%d) = %v, want ErrNotFound", id, err)
		}
	}
}

// --- Enable / no-op ticks ---

func TestSetEnabled(t *testing.T) {
	s, q := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1}, 100, true)
	mustPlay(t, s, id)
	q.Drain()

	s.SetEnabled(false)
	s.SetEnabled(false)
	s.Tick(150)
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed while disabled = %v, want 0", e)
	}
	if s.Enabled() {
		t.Error("Enabled = true after SetEnabled(false)")
	}
	s.SetEnabled(true)
	s.Tick(150)
	if f := frameOf(t, s, id); f != 1 {
		t.Errorf("frame after enabling = %d, want 1", f)
	}
	got := q.Filter(EventAnimationEnabledChanged)
	if len(got) != 2 || got[0].Enabled || !got[1].Enabled {
		t.Errorf("enabled events = %+v", got)
	}
}

func TestTick_IgnoresNonPositiveDelta(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1}, 100, true)
	mustPlay(t, s, id)
	for _, dt := range []float64{0, -16, math.NaN(), math.Inf(1)} {
		s.Tick(dt)
	}
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed = %v, want 0", e)
	}
}

func TestTick_InfiniteGlobalSpeed(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0, 1, 2}, 100, true)
	mustPlay(t, s, id)

	s.SetGlobalSpeed(math.Inf(1))
	if s.GlobalSpeed() != MaxSpeed {
		t.Errorf("GlobalSpeed = %v, want %v", s.GlobalSpeed(), MaxSpeed)
	}
	s.Tick(16)
	if f := frameOf(t, s, id); f < 0 || f > 2 {
		t.Errorf("frame = %d, want one of the animation frames", f)
	}
	if st := stateOf(t, s, id); st != Playing {
		t.Errorf("state = %v, want playing", st)
	}
}

func TestTick_OverflowingElapsed(t *testing.T) {
	s, q := newTestScheduler(t)
	loop := mustCreate(t, s, "loop", []int{0, 1, 2}, 100, true)
	once := mustCreate(t, s, "once", []int{4, 5, 6}, 100, false)
	mustPlay(t, s, loop)
	mustPlay(t, s, once)
	for _, id := range []int{loop, once} {
		if err := s.SetAnimationSpeed(id, 1e200); err != nil {
			t.Fatal(err)
		}
	}
	s.SetGlobalSpeed(1e200)
	q.Drain()

	// MaxSpeed * MaxSpeed * dt overflows to +Inf.
	s.Tick(math.MaxFloat64 / 2)

	if e, _ := s.AnimationElapsed(loop); e != 0 || frameOf(t, s, loop) != 0 {
		t.Errorf("loop elapsed = %v frame = %d, want wrapped to the start", e, frameOf(t, s, loop))
	}
	if st := stateOf(t, s, once); st != Stopped || frameOf(t, s, once) != 6 {
		t.Errorf("once state = %v frame = %d, want finished on frame 6", st, frameOf(t, s, once))
	}
	if p, _ := s.AnimationProgress(once); p != 1 {
		t.Errorf("once progress = %v, want 1", p)
	}
	if n := len(q.Filter(EventAnimationFinished)); n != 1 {
		t.Errorf("finished events = %d, want 1", n)
	}
}

func TestSetAnimationSpeed_ClampsToMaximum(t *testing.T) {
	s, _ := newTestScheduler(t)
	id := mustCreate(t, s, "walk", []int{0}, 100, true)
	for _, in := range []float64{math.Inf(1), 1e200, MaxSpeed * 2} {
		_ = s.SetAnimationSpeed(id, in)
		if got, _ := s.AnimationSpeed(id); got != MaxSpeed {
			t.Errorf("SetAnimationSpeed(%v) -> %v, want %v", in, got, MaxSpeed)
		}
	}
}

func TestActiveAnimations_Sorted(t *testing.T) {
	s, _ := newTestScheduler(t)
	a := mustCreate(t, s, "a", []int{0}, 100, true)
	b := mustCreate(t, s, "b", []int{0}, 100, true)
	c := mustCreate(t, s, "c", []int{0}, 100, true)
	mustPlay(t, s, c)
	mustPlay(t, s, a)
	mustPlay(t, s, b)
	mustPlay(t, s, b)
	if got := s.ActiveAnimations(); !reflect.DeepEqual(got, []int{a, b, c}) {
		t.Errorf("ActiveAnimations = %v, want %v", got, []int{a, b, c})
	}
	_ = s.PauseAnimation(b)
	if got := s.ActiveAnimations(); !reflect.DeepEqual(got, []int{a, c}) {
		t.Errorf("ActiveAnimations = %v, want %v", got, []int{a, c})
	}
}

// --- Handlers calling back in ---

func TestTick_HandlerReplaysOnFinish(t *testing.T) {
	var s *Scheduler
	q := &EventQueue{}
	replay := EventHandlerFunc(func(e Event) {
		if e.Type == EventAnimationFinished {
			if err := s.PlayAnimation(e.ID); err != nil {
				t.Errorf("PlayAnimation from handler: %v", err)
			}
		}
	})
	s = NewScheduler(Config{Events: MultiHandler{q, replay}})
	id := mustCreate(t, s, "once", []int{0, 1}, 100, false)
	mustPlay(t, s, id)

	s.Tick(250)
	if stateOf(t, s, id) != Playing {
		t.Errorf("state = %v, want playing after replay", stateOf(t, s, id))
	}
	if e, _ := s.AnimationElapsed(id); e != 0 {
		t.Errorf("elapsed = %v, want 0", e)
	}
	if got := s.ActiveAnimations(); !reflect.DeepEqual(got, []int{id}) {
		t.Errorf("ActiveAnimations = %v", got)
	}
	s.Tick(100)
	if f := frameOf(t, s, id); f != 1 {
		t.Errorf("frame = %d, want 1", f)
	}
}

func TestTick_HandlerRemovesOther(t *testing.T) {
	var s *Scheduler
	var victim int
	q := &EventQueue{}
	remover := EventHandlerFunc(func(e Event) {
		if e.Type == EventFrameChanged && e.ID != victim && s.HasAnimation(victim) {
			if err := s.RemoveAnimation(victim); err != nil {
				t.Errorf("RemoveAnimation from handler: %v", err)
			}
			s.Tick(1000)
		}
	})
	s = NewScheduler(Config{Events: MultiHandler{q, remover}})
	first := mustCreate(t, s, "first", []int{0, 1}, 100, true)
	victim = mustCreate(t, s, "victim", []int{0, 1}, 100, true)
	mustPlay(t, s, first)
	mustPlay(t, s, victim)
	q.Drain()

	s.Tick(150)
	for _, e := range q.Filter(EventFrameChanged) {
		if e.ID == victim {
			t.Errorf("removed animation still advanced: %+v", e)
		}
	}
	if e, _ := s.AnimationElapsed(first); e != 150 {
		t.Errorf("nested Tick advanced time: elapsed = %v, want 150", e)
	}
}

func TestTick_SteadyStateAllocs(t *testing.T) {
	s := NewScheduler(Config{})
	for i := 0; i < 8; i++ {
		id, _ := s.CreateAnimation("loop", "sheet", []int{0, 1, 2, 3}, 50, true)
		_ = s.PlayAnimation(id)
	}
	allocs := testing.AllocsPerRun(100, func() { s.Tick(16) })
	if allocs != 0 {
		t.Errorf("Tick allocs = %v, want 0", allocs)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Stopped, "stopped"},
		{Playing, "playing"},
		{Paused, "paused"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
