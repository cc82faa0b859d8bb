package story

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/ambience/core"
)

// Watcher reloads a story file when it changes and publishes every version that validates
// The parent directory is watched so editors that replace the file are seen
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Story)

	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching path; onChange runs on the watcher goroutine
func NewWatcher(path string, onChange func(*Story)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve story path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch story dir: %w", err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  watcher,
		onChange: onChange,
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	core.Go(w.watchLoop)

	log.Printf("STORY: watching %s", abs)
	return w, nil
}

func (w *Watcher) watchLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.closed:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			s, err := Load(w.path)
			if err != nil {
				log.Printf("STORY: hot reload failed: %v", err)
				continue
			}
			log.Printf("STORY: reloaded %s, %d scenes", filepath.Base(w.path), len(s.Scenes))
			if w.onChange != nil {
				w.onChange(s)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("STORY: watcher error: %v", err)
		}
	}
}

// Close stops watching and waits for the loop to exit
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closed)
		err = w.watcher.Close()
		<-w.done
		log.Printf("STORY: watcher stopped")
	})
	return err
}
