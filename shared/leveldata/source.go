package leveldata

import (
	"io/fs"
	"sync"
)

// Source resolves level files. Request starts resolution and Poll reports the
// result without blocking; ok is false while the level is still pending.
type Source interface {
	Request(ref LevelRef)
	Poll(id string) (level *Level, ok bool, err error)
}

type result struct {
	level *Level
	err   error
}

// AsyncLoader parses each requested level on its own goroutine.
type AsyncLoader struct {
	fsys           fs.FS
	collisionLayer int

	mu      sync.Mutex
	results map[string]result
	pending map[string]struct{}
}

func NewAsyncLoader(fsys fs.FS, collisionLayer int) *AsyncLoader {
	return &AsyncLoader{
		fsys:           fsys,
		collisionLayer: collisionLayer,
		results:        make(map[string]result),
		pending:        make(map[string]struct{}),
	}
}

// Request starts loading ref unless a load for the same id is in flight. A
// finished result is discarded so the file is read again, which is what a
// respawn wants.
func (l *AsyncLoader) Request(ref LevelRef) {
	l.mu.Lock()
	if _, busy := l.pending[ref.ID]; busy {
		l.mu.Unlock()
		return
	}
	delete(l.results, ref.ID)
	l.pending[ref.ID] = struct{}{}
	l.mu.Unlock()

	go func() {
		level, err := LoadLevel(l.fsys, ref, l.collisionLayer)
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.pending, ref.ID)
		l.results[ref.ID] = result{level: level, err: err}
	}()
}

// Poll hands out a finished result once.
func (l *AsyncLoader) Poll(id string) (*Level, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.results[id]
	if !ok {
		return nil, false, nil
	}
	delete(l.results, id)
	return r.level, true, r.err
}

// Loader parses levels synchronously inside Request. Results are still handed
// out through Poll, so callers treat it exactly like AsyncLoader.
type Loader struct {
	fsys           fs.FS
	collisionLayer int
	results        map[string]result
}

func NewLoader(fsys fs.FS, collisionLayer int) *Loader {
	return &Loader{
		fsys:           fsys,
		collisionLayer: collisionLayer,
		results:        make(map[string]result),
	}
}

func (l *Loader) Request(ref LevelRef) {
	level, err := LoadLevel(l.fsys, ref, l.collisionLayer)
	l.results[ref.ID] = result{level: level, err: err}
}

func (l *Loader) Poll(id string) (*Level, bool, error) {
	r, ok := l.results[id]
	if !ok {
		return nil, false, nil
	}
	delete(l.results, id)
	return r.level, true, r.err
}
