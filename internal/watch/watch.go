// Package watch observes the repository's .git directory for index changes
// so `comet watch` can refresh its suggestions whenever the staged set
// changes. Events are debounced: git rewrites the index file through a
// rename, which fires several filesystem events per staging operation.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a .git directory and signals staged-set changes.
type Watcher struct {
	// Changes receives one signal per debounced index change.
	Changes <-chan struct{}

	changes chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// debounce collapses the event bursts of a single staging operation.
const debounce = 400 * time.Millisecond

// New creates a watcher for the given .git directory.
func New(gitDir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(gitDir); err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	w := &Watcher{
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	go w.loop()
	return w, nil
}

// Stop closes the watcher and its channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending bool
	var last time.Time
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			pending = true
			last = time.Now()

		case <-ticker.C:
			if pending && time.Since(last) >= debounce {
				pending = false
				// Non-blocking send: a pending refresh already covers this
				// change.
				select {
				case w.changes <- struct{}{}:
				default:
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// relevant filters for index rewrites. Staging updates .git/index via a
// temporary index.lock rename; both names count.
func relevant(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	return base == "index" || base == "index.lock"
}
