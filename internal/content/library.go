package content

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
)

// Library owns the current Store. Readers call Store once per request and
// keep using that snapshot; Reload replaces it without mutating the old one.
type Library struct {
	fsys    fs.FS
	current atomic.Pointer[Store]

	mu        sync.Mutex
	listeners []func(*Store) error
}

// ErrReloadListener marks a reload whose snapshot was published but where at
// least one listener failed to catch up with it.
var ErrReloadListener = errors.New("reload listener failed")

// NewLibrary loads the initial snapshot from fsys.
func NewLibrary(fsys fs.FS) (*Library, error) {
	s, err := Load(fsys)
	if err != nil {
		return nil, err
	}
	l := &Library{fsys: fsys}
	l.current.Store(s)
	return l, nil
}

func (l *Library) Store() *Store { return l.current.Load() }

// OnReload registers fn to run after every successful reload.
func (l *Library) OnReload(fn func(*Store) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Reload loads a fresh snapshot. On a load error the previous snapshot stays
// current and no listener runs. Otherwise the new snapshot is published, every
// listener runs, and their failures are returned wrapped in ErrReloadListener.
func (l *Library) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, err := Load(l.fsys)
	if err != nil {
		return err
	}
	l.current.Store(s)

	var errs []error
	for _, fn := range l.listeners {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrReloadListener, errors.Join(errs...))
	}
	return nil
}
