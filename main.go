// Released under an MIT license. See LICENSE.

/*
Tern is a small expression language with first class functions, records
and mutually recursive definitions.

	tern                      interactive session
	tern file.tern            print the value of file.tern
	tern -x '1 + 2'           print the value of an expression
	tern -l -e file.tern      edit file.tern and print its value on every save

Settings are read from $HOME/.config/tern/config.yaml, or the file named by
$TERN_CONFIG or -c, and from TERN_ environment variables.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ternlang/tern/internal/engine"
	"github.com/ternlang/tern/internal/engine/sys"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/system/config"
	"github.com/ternlang/tern/internal/system/options"
	"github.com/ternlang/tern/internal/system/process"
	"github.com/ternlang/tern/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	options.Parse()

	if err := options.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: "+err.Error())

		return 2 //nolint:gomnd
	}

	path := options.Config()
	if path == "" {
		path = config.Path()
	}

	overrides := map[string]interface{}{}
	if options.NoStdlib() {
		overrides["no_stdlib"] = true
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: "+err.Error())

		return 2 //nolint:gomnd
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, "WARNING: "+err.Error())
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.File != "" {
		logger.Debug("read settings", "file", cfg.File)
	}

	s, err := sys.New(sys.Options{
		Console:  os.Stderr,
		Libs:     append(cfg.Libs, options.Includes()...),
		Logger:   logger,
		MaxDepth: cfg.MaxDepth,
		NoStdlib: cfg.NoStdlib,
		Stdlib:   cfg.Stdlib,
	})
	if err != nil {
		engine.Report(os.Stderr, err)

		return 1
	}

	defer s.Close()

	stop := process.OnInterrupt(s.Interrupt)
	defer stop()

	e := engine.New(s, os.Stdout, os.Stderr)

	switch {
	case options.Live():
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		process.OnTerminate(cancel)

		err = e.Live(ctx, options.Script(), editor(cfg, options.Editor()), cfg.PollInterval)
	case options.Expression() != "":
		err = e.Evaluate(source.New("expr", options.Expression()))
	case options.Script() != "":
		err = e.File(options.Script())
	case options.Interactive():
		err = ui.Run(ui.New(s, os.Stdout), cfg.History)
	default:
		err = stdin(e)
	}

	if err != nil {
		engine.Report(os.Stderr, err)

		return 1
	}

	return 0
}

func editor(cfg *config.Config, enabled bool) string {
	if !enabled {
		return ""
	}

	if cfg.Editor != "" {
		return cfg.Editor
	}

	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}

	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}

	return "vi"
}

func stdin(e *engine.T) error {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("cannot read stdin: %w", err)
	}

	return e.Evaluate(source.New("stdin", string(b)))
}
