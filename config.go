package spritekit

// DefaultMinAnimationSpeed is the floor applied to per-animation speed.
const DefaultMinAnimationSpeed = 0.1

// Config configures a Renderer and a Scheduler. The zero value is usable:
// unset fields fall back to the defaults noted on each field.
type Config struct {
	// Decoder turns a path into pixels. Defaults to FileDecoder{}.
	Decoder Decoder
	// Events receives lifecycle and playback notifications. Defaults to a
	// handler that drops everything.
	Events EventHandler
	// Sink receives warnings and debug messages. Defaults to NopSink.
	Sink MessageSink
	// MinAnimationSpeed is the lowest per-animation speed multiplier.
	// Defaults to DefaultMinAnimationSpeed.
	MinAnimationSpeed float64
	// StrictSheetGrid rejects sprite sheets whose pixel size is not an exact
	// multiple of the frame size. When false the remainder is ignored.
	StrictSheetGrid bool
}

func (c Config) withDefaults() Config {
	if c.Decoder == nil {
		c.Decoder = FileDecoder{}
	}
	if c.Events == nil {
		c.Events = nopHandler{}
	}
	if c.Sink == nil {
		c.Sink = NopSink
	}
	if !(c.MinAnimationSpeed > 0) {
		c.MinAnimationSpeed = DefaultMinAnimationSpeed
	}
	return c
}
