// Released under an MIT license. See LICENSE.

// Package engine provides a facade in front of the machinery for evaluating
// tern programs non-interactively.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/program"
	"github.com/ternlang/tern/internal/engine/sys"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/system/live"
)

// T (engine) evaluates whole programs and prints what they denote.
type T struct {
	errs   io.Writer
	out    io.Writer
	system *sys.T
}

// New creates an engine that prints values to out and errors to errs.
func New(s *sys.T, out, errs io.Writer) *T {
	return &T{
		errs:   errs,
		out:    out,
		system: s,
	}
}

// Evaluate compiles and runs src in the standard namespace. It prints the
// record a definition block denotes or each value an expression program
// produces.
func (e *T) Evaluate(src *source.T) error {
	e.system.Reset()

	p := program.New(src, e.system)

	if err := p.Compile(nil); err != nil {
		return err
	}

	m, vs, err := p.Denotes()
	if err != nil {
		return err
	}

	if m != nil {
		fmt.Fprintln(e.out, m.String())
	}

	for _, v := range vs {
		fmt.Fprintln(e.out, v.String())
	}

	return nil
}

// File evaluates the program in the file at path.
func (e *T) File(path string) error {
	src, err := e.system.Sources().Source(path)
	if err != nil {
		return err
	}

	return e.Evaluate(src)
}

// Live evaluates the program at path every time it changes, reporting
// errors and carrying on, until ctx is done or the editor, if any, exits.
func (e *T) Live(ctx context.Context, path, editor string, interval time.Duration) error {
	return live.Run(ctx, live.Options{
		Path:     path,
		Editor:   editor,
		Interval: interval,
		Logger:   e.system.Logger(),
		Changed: func() {
			e.system.Sources().Forget(path)
			e.system.Interrupt()
		},
	}, func() {
		if err := e.File(path); err != nil {
			Report(e.errs, err)
		}
	})
}

// Report prints err the way every front end does.
func Report(w io.Writer, err error) {
	if errors.Is(err, exception.ErrInterrupted) {
		fmt.Fprintln(w, "interrupted")

		return
	}

	fmt.Fprintln(w, "ERROR: "+err.Error())
}
