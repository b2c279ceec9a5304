// Released under an MIT license. See LICENSE.

// Package sys provides the services shared by every program in a session:
// the standard namespace, library loading, console output, logging and the
// interrupt flag.
//
// A T is constructed explicitly and passed to each program. There is no
// process wide instance.
package sys

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync/atomic"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/boot"
	"github.com/ternlang/tern/internal/engine/commands"
	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/engine/namespace"
	"github.com/ternlang/tern/internal/engine/program"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/system/cache"
)

// DefaultMaxDepth is the default limit on nested non-tail calls.
const DefaultMaxDepth = 25000

// Options configures a new system.
type Options struct {
	Console  io.Writer    // Defaults to os.Stderr.
	Logger   *slog.Logger // Defaults to discarding everything.
	MaxDepth int          // Defaults to DefaultMaxDepth. Negative is unlimited.
	NoStdlib bool         // Skip the standard library.
	Stdlib   string       // Replaces the embedded standard library.
	Libs     []string     // Library files loaded after the standard library.
}

// T holds the shared state of a session.
type T struct {
	console     io.Writer
	interrupted atomic.Bool
	logger      *slog.Logger
	maxDepth    int
	ns          *namespace.T
	sources     *cache.T
}

type system = T

// New creates a system with the builtins and requested libraries loaded.
func New(opts Options) (*system, error) {
	s := &system{
		console:  opts.Console,
		logger:   opts.Logger,
		maxDepth: opts.MaxDepth,
		ns:       namespace.New(),
		sources:  cache.New(),
	}

	if s.console == nil {
		s.console = os.Stderr
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	switch {
	case s.maxDepth == 0:
		s.maxDepth = DefaultMaxDepth
	case s.maxDepth < 0:
		s.maxDepth = 0
	}

	constants := commands.Constants()
	for _, k := range slices.Sorted(maps.Keys(constants)) {
		s.ns.Define(k, constants[k])
	}

	functions := commands.Functions()
	for _, k := range slices.Sorted(maps.Keys(functions)) {
		s.ns.Define(k, functions[k])
	}

	if !opts.NoStdlib {
		var err error

		if opts.Stdlib != "" {
			err = s.LoadFile(opts.Stdlib)
		} else {
			err = s.LoadLibrary(source.New("std", boot.Library()))
		}

		if err != nil {
			s.Close()

			return nil, fmt.Errorf("standard library: %w", err)
		}
	}

	for _, path := range opts.Libs {
		if err := s.LoadFile(path); err != nil {
			s.Close()

			return nil, err
		}
	}

	return s, nil
}

// Close releases the system's resources. Loading files afterwards fails.
func (s *system) Close() {
	s.sources.Close()
}

// Console returns the writer used for diagnostic and print output.
func (s *system) Console() io.Writer {
	return s.console
}

// Interrupt asks any evaluation in progress to stop.
func (s *system) Interrupt() {
	s.interrupted.Store(true)
}

// Interrupted reports whether an interrupt is pending.
func (s *system) Interrupted() bool {
	return s.interrupted.Load()
}

// Load compiles and evaluates the file at path on behalf of caller. A
// definition block yields a record. Failures are raised, not returned.
func (s *system) Load(path string, caller *eval.Frame) value.I {
	if s.maxDepth > 0 && caller.Depth() >= s.maxDepth {
		exception.Raise(exception.Depth, caller.Site(),
			"stack depth exceeded (%d nested calls)", s.maxDepth)
	}

	src, err := s.sources.Source(path)
	if err != nil {
		panic(err)
	}

	p := program.New(src, s, program.FileFrame(caller))

	if err = p.Compile(nil); err != nil {
		panic(err)
	}

	if p.IsDefinition() {
		m, err := p.Module()
		if err != nil {
			panic(err)
		}

		return m
	}

	v, err := p.Eval()
	if err != nil {
		panic(err)
	}

	return v
}

// LoadFile reads the library at path and loads it.
func (s *system) LoadFile(path string) error {
	src, err := s.sources.Source(path)
	if err != nil {
		return err
	}

	return s.LoadLibrary(src)
}

// LoadLibrary compiles src as a definition block in the scope of the
// standard namespace and, if that succeeds, adds its bindings to the
// standard namespace. On failure the namespace is unchanged.
func (s *system) LoadLibrary(src *source.T) error {
	p := program.New(src, s)

	if err := p.Compile(nil); err != nil {
		return err
	}

	m, err := p.Module()
	if err != nil {
		return err
	}

	s.ns.Merge(m)

	s.logger.Debug("loaded library", "name", src.Name(), "names", m.Len())

	return nil
}

// Logger returns the session logger.
func (s *system) Logger() *slog.Logger {
	return s.logger
}

// MaxDepth returns the limit on nested non-tail calls. Zero is unlimited.
func (s *system) MaxDepth() int {
	return s.maxDepth
}

// Namespace returns the standard namespace.
func (s *system) Namespace() *namespace.T {
	return s.ns
}

// Reset clears a pending interrupt.
func (s *system) Reset() {
	s.interrupted.Store(false)
}

// Sources returns the cache of source files read by the system.
func (s *system) Sources() *cache.T {
	return s.sources
}

func implements() { //nolint:deadcode,unused
	var t system

	// The system type provides the services programs need.
	_ = program.System(&t)
}
