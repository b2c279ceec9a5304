// Released under an MIT license. See LICENSE.

// Package ui provides an interactive session for the tern language.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/ternlang/tern/internal/engine"
	"github.com/ternlang/tern/internal/engine/namespace"
	"github.com/ternlang/tern/internal/engine/program"
	"github.com/ternlang/tern/internal/engine/sys"
	"github.com/ternlang/tern/internal/reader"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/system/history"
)

// Last is the name bound to the most recently displayed value.
const Last = "_"

// Session holds the state of an interactive session. Definitions entered
// at the prompt extend the session's namespace; the system's standard
// namespace is never changed.
type Session struct {
	ns     *namespace.T
	out    io.Writer
	system *sys.T
}

// New creates a session that writes results to out.
func New(s *sys.T, out io.Writer) *Session {
	return &Session{
		ns:     s.Namespace().Clone(),
		out:    out,
		system: s,
	}
}

// Namespace returns the session namespace.
func (s *Session) Namespace() *namespace.T {
	return s.ns
}

// Evaluate compiles and runs text in the session namespace, printing any
// values it produces. Definitions are added to the namespace. Errors are
// printed and leave the namespace unchanged.
func (s *Session) Evaluate(text string) {
	s.system.Reset()

	p := program.New(source.New("repl", text), s.system)

	if err := p.Compile(s.ns); err != nil {
		engine.Report(s.out, err)

		return
	}

	m, vs, err := p.Denotes()
	if err != nil {
		engine.Report(s.out, err)

		return
	}

	if m != nil {
		s.ns.Merge(m)

		s.system.Logger().Debug("defined", "names", m.Names())
	}

	for _, v := range vs {
		fmt.Fprintln(s.out, v.String())
	}

	if len(vs) == 1 {
		s.ns.Define(Last, vs[0])
	}
}

// Run prompts for lines and evaluates them until end of input. History is
// loaded from and saved to historyPath, if not empty.
func Run(s *Session, historyPath string) error {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	if historyPath != "" {
		if err := history.Load(historyPath, cli.ReadHistory); err != nil {
			s.system.Logger().Warn("cannot read history", "path", historyPath, "error", err)
		}
	}

	defer func() {
		if historyPath == "" {
			return
		}

		if err := history.Save(historyPath, cli.WriteHistory); err != nil {
			s.system.Logger().Warn("cannot write history", "path", historyPath, "error", err)
		}
	}()

	r := reader.New("repl")

	for {
		prompt := "tern> "
		if r.Pending() {
			prompt = "....> "
		}

		line, err := cli.Prompt(prompt)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			r.Reset()

			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)

			return nil
		default:
			return err
		}

		if strings.TrimSpace(line) == "" && !r.Pending() {
			continue
		}

		cli.AppendHistory(line)

		text, ok, err := r.Scan(line)
		if err != nil {
			engine.Report(s.out, err)

			continue
		} else if !ok {
			continue
		}

		// Evaluate with the terminal in its original mode so that ^C
		// interrupts evaluation.
		if err := cooked.ApplyMode(); err != nil {
			return err
		}

		s.Evaluate(text)
	}
}
