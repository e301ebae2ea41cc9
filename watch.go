package spritekit

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow is the minimum time between two reports of the same file.
// Editors often write a file several times when saving it.
const DebounceWindow = 100 * time.Millisecond

// Watcher reports image files that change on disk so the host can reload
// them. One goroutine forwards paths; the sprite cache is only touched by
// Poll, which the host calls from its frame loop.
type Watcher struct {
	// Changed receives the path of every image file written, created or
	// renamed in a watched directory. Hosts that do not use Poll may read it
	// directly.
	Changed <-chan string
	// Errors receives watch errors. An error arriving while the previous
	// one is still unread is dropped.
	Errors <-chan error

	fsw     *fsnotify.Watcher
	changed chan string
	errs    chan error
	done    chan struct{}
	closing sync.Once
}

// NewWatcher watches the given directories for image writes. Nested
// directories are not watched.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := newWatcher(16)
	w.fsw = fsw
	go w.forward(fsw.Events, fsw.Errors)
	return w, nil
}

func newWatcher(buffer int) *Watcher {
	w := &Watcher{
		changed: make(chan string, buffer),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.Changed, w.Errors = w.changed, w.errs
	return w
}

// Close stops watching. It is safe to call more than once. Changed and
// Errors are left open.
func (w *Watcher) Close() error {
	var err error
	w.closing.Do(func() {
		close(w.done)
		if w.fsw != nil {
			err = w.fsw.Close()
		}
	})
	return err
}

// forward filters raw notifications down to debounced image changes.
func (w *Watcher) forward(events <-chan fsnotify.Event, errs <-chan error) {
	seen := debouncer{}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !imageChange(ev) || !seen.allow(ev.Name, time.Now()) {
				continue
			}
			select {
			case w.changed <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func imageChange(ev fsnotify.Event) bool {
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && IsImageFile(ev.Name)
}

// debouncer remembers when each path was last reported.
type debouncer map[string]time.Time

func (d debouncer) allow(path string, now time.Time) bool {
	if last, ok := d[path]; ok && now.Sub(last) < DebounceWindow {
		return false
	}
	d[path] = now
	return true
}

// Poll drains pending change notifications without blocking and reloads the
// affected sprites in c. It returns the names that were reloaded.
func (w *Watcher) Poll(c *SpriteCache) []string {
	var names []string
	for {
		select {
		case path := <-w.changed:
			names = append(names, c.Reload(path)...)
		default:
			return names
		}
	}
}
