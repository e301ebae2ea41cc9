package spritekit

// EventType identifies a lifecycle or playback notification.
type EventType uint8

const (
	EventSpriteLoaded            EventType = iota // a sprite or sheet was stored (Name)
	EventSpriteUnloaded                           // a sprite was removed (Name)
	EventCacheCleared                             // every sprite was released
	EventCacheSizeChanged                         // the sprite count changed (Count)
	EventRenderEnabledChanged                     // effects were switched on or off (Enabled)
	EventAnimationCreated                         // a definition was created (ID, Name)
	EventAnimationRemoved                         // a definition was removed (ID)
	EventAnimationStarted                         // Stopped or Paused -> Playing (ID)
	EventAnimationPaused                          // Playing -> Paused (ID)
	EventAnimationStopped                         // Playing or Paused -> Stopped by request (ID)
	EventAnimationFinished                        // a non-looping animation ran out (ID)
	EventFrameChanged                             // the displayed frame changed (ID, Frame)
	EventGlobalSpeedChanged                       // the scheduler speed was set (Speed)
	EventAnimationEnabledChanged                  // the scheduler was enabled or disabled (Enabled)
	EventAnimationCountChanged                    // the definition count changed (Count)
)

var eventNames = [...]string{
	EventSpriteLoaded:            "sprite-loaded",
	EventSpriteUnloaded:          "sprite-unloaded",
	EventCacheCleared:            "cache-cleared",
	EventCacheSizeChanged:        "cache-size-changed",
	EventRenderEnabledChanged:    "render-enabled-changed",
	EventAnimationCreated:        "animation-created",
	EventAnimationRemoved:        "animation-removed",
	EventAnimationStarted:        "animation-started",
	EventAnimationPaused:         "animation-paused",
	EventAnimationStopped:        "animation-stopped",
	EventAnimationFinished:       "animation-finished",
	EventFrameChanged:            "frame-changed",
	EventGlobalSpeedChanged:      "global-speed-changed",
	EventAnimationEnabledChanged: "animation-enabled-changed",
	EventAnimationCountChanged:   "animation-count-changed",
}

// String returns a stable kebab-case name for the event type.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event carries the payload of a notification. Only the fields listed next to
// each EventType constant are meaningful.
type Event struct {
	Type    EventType
	Name    string  // sprite name, or animation display name for EventAnimationCreated
	ID      int     // animation id
	Frame   int     // sheet frame index for EventFrameChanged
	Count   int     // cache size or animation count
	Speed   float64 // global speed
	Enabled bool
}

// EventHandler receives notifications synchronously, on the goroutine that
// performed the operation. Handlers may call back into the cache or scheduler.
type EventHandler interface {
	HandleEvent(Event)
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(Event)

// HandleEvent calls f(e).
func (f EventHandlerFunc) HandleEvent(e Event) { f(e) }

// MultiHandler fans every event out to each handler in order. Nil entries are
// skipped.
type MultiHandler []EventHandler

// HandleEvent implements EventHandler.
func (m MultiHandler) HandleEvent(e Event) {
	for _, h := range m {
		if h != nil {
			h.HandleEvent(e)
		}
	}
}

// EventQueue buffers events until the host drains them, for render or UI
// layers that prefer polling once per frame over callbacks.
type EventQueue struct {
	events []Event
}

// HandleEvent appends e to the queue.
func (q *EventQueue) HandleEvent(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns the buffered events in delivery order and empties the queue.
// The returned slice is owned by the caller.
func (q *EventQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Filter returns the buffered events of type t without draining.
func (q *EventQueue) Filter(t EventType) []Event {
	var out []Event
	for _, e := range q.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type nopHandler struct{}

func (nopHandler) HandleEvent(Event) {}
