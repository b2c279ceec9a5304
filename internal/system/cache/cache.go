// Released under an MIT license. See LICENSE.

// Package cache keeps the contents of source files read during a session.
//
// A cached source is reused while the file's size and modification time
// are unchanged. All access goes through a single service goroutine that
// runs until the cache is closed.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ternlang/tern/internal/reader/source"
)

type entry struct {
	modified time.Time
	size     int64
	source   *source.T
}

// ErrClosed is returned for requests made after the cache is closed.
var ErrClosed = errors.New("source cache closed")

// T is a source file cache.
type T struct {
	closed   chan struct{}
	entries  map[string]entry
	once     sync.Once
	requestq chan func()
	stopped  chan struct{}
}

type cache = T

// New creates a cache and starts its service goroutine.
func New() *cache {
	c := &cache{
		closed:   make(chan struct{}),
		entries:  map[string]entry{},
		requestq: make(chan func(), 1),
		stopped:  make(chan struct{}),
	}

	go c.service()

	return c
}

// Close stops the service goroutine and waits for it to exit. It is safe
// to call more than once.
func (c *cache) Close() {
	c.once.Do(func() {
		close(c.closed)
	})

	<-c.stopped
}

// Forget drops any cached source for path.
func (c *cache) Forget(path string) {
	key := clean(path)

	done := make(chan struct{})

	if !c.submit(func() {
		delete(c.entries, key)
		close(done)
	}) {
		return
	}

	<-done
}

// Source returns the source for the file at path, reading it if it is not
// cached or has changed since it was cached.
func (c *cache) Source(path string) (*source.T, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	key := clean(path)

	resultq := make(chan *source.T, 1)

	if !c.submit(func() {
		e, ok := c.entries[key]
		if ok && e.size == info.Size() && e.modified.Equal(info.ModTime()) {
			resultq <- e.source
		}

		close(resultq)
	}) {
		return nil, ErrClosed
	}

	if s := <-resultq; s != nil {
		return s, nil
	}

	s, err := source.File(path)
	if err != nil {
		return nil, err
	}

	c.submit(func() {
		c.entries[key] = entry{
			modified: info.ModTime(),
			size:     info.Size(),
			source:   s,
		}
	})

	return s, nil
}

func (c *cache) service() {
	defer close(c.stopped)

	for {
		select {
		case <-c.closed:
			return
		case f := <-c.requestq:
			f()
		}
	}
}

// submit queues f for the service goroutine. It returns false, without
// running f, if the cache is closed.
func (c *cache) submit(f func()) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case <-c.closed:
		return false
	case c.requestq <- f:
		return true
	}
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}
