package scene

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a scene file whenever it changes on disk.
//
// Reloaded scenes are delivered on Scenes and load failures on Errors. Both
// channels are closed by Close. The receiving side must drain them from its
// own goroutine; the watcher never touches anything else.
type Watcher struct {
	Scenes chan *Scene
	Errors chan error

	filename string
	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	logger   *slog.Logger
}

// NewWatcher starts watching filename. The containing directory is watched
// so that atomic rename-on-save is picked up.
func NewWatcher(filename string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher := &Watcher{
		Scenes:   make(chan *Scene, 1),
		Errors:   make(chan error, 1),
		filename: abs,
		watcher:  w,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.With("scene", abs),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Scenes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-timer.C:
			s, err := Load(w.filename)
			if err != nil {
				w.logger.Warn("scene reload failed", "error", err)
				w.sendErr(err)
				continue
			}
			w.logger.Info("scene reloaded", "instances", s.Len())
			w.sendScene(s)
		case <-w.closeCh:
			return
		}
	}
}

// sendScene replaces any scene the receiver has not picked up yet.
func (w *Watcher) sendScene(s *Scene) {
	for {
		select {
		case w.Scenes <- s:
			return
		default:
		}
		select {
		case <-w.Scenes:
		default:
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
