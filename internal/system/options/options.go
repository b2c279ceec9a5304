// Released under an MIT license. See LICENSE.

// Package options parses tern's command line.
package options

import (
	"errors"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by --version.
const Version = "tern 0.1.0"

// ErrEditorWithoutLive is returned by Validate when -e is given without -l.
var ErrEditorWithoutLive = errors.New("-e flag specified without -l flag")

//nolint:gochecknoglobals
var (
	config      string
	editor      bool
	expression  string
	includes    []string
	interactive bool
	live        bool
	noStdlib    bool
	script      string
	usage       = `tern

Usage:
  tern [-n] [-c FILE] [-i LIB]... [-l [-e]] SCRIPT
  tern [-n] [-c FILE] [-i LIB]... -x EXPR
  tern [-n] [-c FILE] [-i LIB]...
  tern -h
  tern -v

Arguments:
  SCRIPT  Path to a tern program. Its value is printed.

Options:
  -c, --config=FILE   Read settings from FILE.
  -e, --editor        In live mode, also edit SCRIPT. Exit when the editor does.
  -i, --include=LIB   Load the library LIB. May be repeated.
  -l, --live          Evaluate SCRIPT again whenever it changes.
  -n, --no-stdlib     Do not load the standard library.
  -x, --expr=EXPR     Evaluate EXPR and print its value.
  -h, --help          Display this help.
  -v, --version       Print tern version.

If tern's stdin is a TTY and neither SCRIPT nor EXPR is given, tern starts
an interactive session. Otherwise, tern reads a program from stdin.
`
)

// Config returns the settings file given on the command line, if any.
func Config() string {
	return config
}

// Editor returns true if the editor should be launched in live mode.
func Editor() bool {
	return editor
}

// Expression returns the expression given on the command line, if any.
func Expression() string {
	return expression
}

// Includes returns the libraries to load, in order.
func Includes() []string {
	return includes
}

// Interactive returns true if tern should start an interactive session.
func Interactive() bool {
	return interactive
}

// Live returns true if SCRIPT should be evaluated whenever it changes.
func Live() bool {
	return live
}

// NoStdlib returns true if the standard library should not be loaded.
func NoStdlib() bool {
	return noStdlib
}

// Parse parses the process's command line.
func Parse() {
	opts, err := docopt.ParseArgs(usage, nil, Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	set(opts, isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// Validate reports combinations of options that the usage cannot express.
func Validate() error {
	if editor && !live {
		return ErrEditorWithoutLive
	}

	return nil
}

// Script returns the path of the program to run, if any.
func Script() string {
	return script
}

func set(opts docopt.Opts, tty bool) {
	config, _ = opts.String("--config")
	editor, _ = opts.Bool("--editor")
	expression, _ = opts.String("--expr")
	live, _ = opts.Bool("--live")
	noStdlib, _ = opts.Bool("--no-stdlib")
	script, _ = opts.String("SCRIPT")

	includes = unique(opts["--include"])

	interactive = script == "" && expression == "" && tty
}

// unique returns the libraries named by v, dropping repeats. Each -i
// may be reported once per usage pattern that mentions it.
func unique(v interface{}) []string {
	all, _ := v.([]string)

	seen := map[string]bool{}
	libs := make([]string, 0, len(all))

	for _, lib := range all {
		if !seen[lib] {
			seen[lib] = true
			libs = append(libs, lib)
		}
	}

	return libs
}
