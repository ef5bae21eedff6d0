package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

var (
	// ErrNotDir is returned when the asset root exists but is not a directory.
	ErrNotDir = errors.New("asset root is not a directory")
	// ErrReleased is returned by loader calls made after Release.
	ErrReleased = errors.New("asset loader released")
	// ErrLeakedStreams reports streams that were still open at release time.
	ErrLeakedStreams = errors.New("asset streams left open")
)

// Loader reads files below a validated Root. Streams opened through the
// loader are closed on Release if the caller forgot to close them.
type Loader struct {
	root Root
	fsys fs.FS

	mu       sync.Mutex
	open     map[*stream]struct{}
	opened   int
	released bool
}

// Open validates root and returns a loader scoped to it.
func Open(root Root) (*Loader, error) {
	if root.IsZero() {
		return nil, fmt.Errorf("open asset root: %w", fs.ErrNotExist)
	}
	info, err := os.Stat(root.Path())
	if err != nil {
		return nil, fmt.Errorf("open asset root %q: %w", root.Path(), err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open asset root %q: %w", root.Path(), ErrNotDir)
	}
	return &Loader{
		root: root,
		fsys: os.DirFS(root.Path()),
		open: make(map[*stream]struct{}),
	}, nil
}

// Root returns the root the loader was opened on.
func (l *Loader) Root() Root { return l.root }

// Exists reports whether rel names an existing file or directory.
func (l *Loader) Exists(rel string) bool {
	if err := l.check(); err != nil {
		return false
	}
	_, err := fs.Stat(l.fsys, rel)
	return err == nil
}

// ReadFile returns the contents of rel.
func (l *Loader) ReadFile(rel string) ([]byte, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", rel, err)
	}
	return data, nil
}

// Glob lists asset paths matching pattern.
func (l *Loader) Glob(pattern string) ([]string, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	return fs.Glob(l.fsys, pattern)
}

// OpenStream opens rel for reading. The stream stays tracked until closed.
func (l *Loader) OpenStream(rel string) (io.ReadCloser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return nil, ErrReleased
	}
	f, err := l.fsys.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("open asset %q: %w", rel, err)
	}
	s := &stream{File: f, owner: l}
	l.open[s] = struct{}{}
	l.opened++
	return s, nil
}

// DecodeTOML decodes the TOML manifest at rel into v.
func (l *Loader) DecodeTOML(rel string, v any) (toml.MetaData, error) {
	data, err := l.ReadFile(rel)
	if err != nil {
		return toml.MetaData{}, err
	}
	meta, err := toml.Decode(string(data), v)
	if err != nil {
		return meta, fmt.Errorf("decode manifest %q: %w", rel, err)
	}
	return meta, nil
}

// OpenStreams reports how many streams are currently open.
func (l *Loader) OpenStreams() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.open)
}

// Opened reports how many streams were opened over the loader's lifetime.
func (l *Loader) Opened() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opened
}

// Release closes any stream still open and invalidates the loader.
func (l *Loader) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return nil
	}
	l.released = true

	leaked := len(l.open)
	var errs []error
	for s := range l.open {
		if err := s.File.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(l.open, s)
	}
	if leaked > 0 {
		errs = append([]error{fmt.Errorf("%w: %d", ErrLeakedStreams, leaked)}, errs...)
	}
	return errors.Join(errs...)
}

func (l *Loader) check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return ErrReleased
	}
	return nil
}

type stream struct {
	fs.File
	owner  *Loader
	closed bool
}

func (s *stream) Close() error {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if _, ok := s.owner.open[s]; !ok {
		// already closed by Release
		return nil
	}
	delete(s.owner.open, s)
	return s.File.Close()
}
