// Package assets loads the game's images in the background and reports when all of them are
// available.
package assets

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Names of the four images a round needs.
const (
	Background = "background"
	Region     = "box"
	Entering   = "circle_in"
	Exiting    = "circle_out"
)

// File maps an asset name to its file under the asset directory.
type File struct {
	Name string
	Path string
}

// DefaultFiles lists the images the game loads.
func DefaultFiles() []File {
	return []File{
		{Name: Region, Path: "box.png"},
		{Name: Entering, Path: "circle_in.png"},
		{Name: Exiting, Path: "circle_out.png"},
		{Name: Background, Path: "background.jpg"},
	}
}

// LoadFunc decodes one file into a frontend-specific value.
type LoadFunc[T any] func(path string) (T, error)

// Loader loads a fixed set of files concurrently. Loaded and Ready may be polled from any
// goroutine while loading is in progress.
type Loader[T any] struct {
	dir    string
	files  []File
	load   LoadFunc[T]
	logger zerolog.Logger

	mu     sync.RWMutex
	items  map[string]T
	loaded atomic.Int32

	started atomic.Bool
	done    chan struct{}
	err     error
}

// NewLoader creates a loader for files under dir.
func NewLoader[T any](dir string, files []File, load LoadFunc[T], logger zerolog.Logger) *Loader[T] {
	return &Loader[T]{
		dir:    dir,
		files:  files,
		load:   load,
		logger: logger.With().Str("component", "assets").Logger(),
		items:  make(map[string]T, len(files)),
		done:   make(chan struct{}),
	}
}

// Start begins loading every file in the background. Later calls do nothing.
func (l *Loader[T]) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}

	var g errgroup.Group
	for _, f := range l.files {
		g.Go(func() error {
			path := filepath.Join(l.dir, f.Path)
			item, err := l.load(path)
			if err != nil {
				l.logger.Error().Err(err).Str("asset", f.Name).Str("path", path).Msg("failed to load asset")
				return fmt.Errorf("failed to load %s: %w", f.Name, err)
			}

			l.mu.Lock()
			l.items[f.Name] = item
			l.mu.Unlock()

			n := l.loaded.Add(1)
			l.logger.Debug().Str("asset", f.Name).Int32("loaded", n).Int("total", len(l.files)).Msg("asset loaded")
			return nil
		})
	}

	go func() {
		l.err = g.Wait()
		if l.err == nil {
			l.logger.Info().Int("count", len(l.files)).Msg("all assets loaded")
		}
		close(l.done)
	}()
}

// Wait starts loading if Start has not been called, blocks until every load has finished and
// returns the first failure.
func (l *Loader[T]) Wait() error {
	l.Start()
	<-l.done
	return l.err
}

// Loaded returns how many files have finished loading successfully.
func (l *Loader[T]) Loaded() int {
	return int(l.loaded.Load())
}

// Total returns how many files the loader was given.
func (l *Loader[T]) Total() int {
	return len(l.files)
}

// Ready reports whether every file has loaded.
func (l *Loader[T]) Ready() bool {
	return l.Loaded() == l.Total()
}

// Get returns a loaded item by name.
func (l *Loader[T]) Get(name string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[name]
	return item, ok
}
