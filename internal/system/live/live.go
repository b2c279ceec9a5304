// Released under an MIT license. See LICENSE.

// Package live evaluates a program again every time its file changes and,
// optionally, runs an editor on the file for as long as the session lasts.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/ternlang/tern/internal/system/process"
)

// Options configures a live session.
type Options struct {
	Path     string        // File to watch.
	Editor   string        // Editor command. Empty means no editor.
	Interval time.Duration // Quiet period after a change before evaluating.
	Logger   *slog.Logger

	// Changed is called as soon as the file changes, before the quiet
	// period, so that a stale evaluation can be interrupted.
	Changed func()
}

var errEditorExited = errors.New("editor exited")

// Run calls evaluate once and then again after every change to the file
// until ctx is done or the editor exits. Calls to evaluate are serialized.
// When the session ends, Changed is called to stop an evaluation in progress.
func Run(ctx context.Context, opts Options, evaluate func()) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.Changed == nil {
		opts.Changed = func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	path := filepath.Clean(opts.Path)

	// Editors often replace a file rather than write it, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	stop := context.AfterFunc(ctx, opts.Changed)
	defer stop()

	changed := make(chan struct{}, 1)

	eg.Go(func() error {
		return watch(ctx, watcher, path, opts, changed)
	})

	if opts.Editor != "" {
		eg.Go(func() error {
			return edit(ctx, opts.Editor, path)
		})
	}

	eg.Go(func() error {
		evaluate()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				evaluate()
			}
		}
	})

	err = eg.Wait()
	if errors.Is(err, errEditorExited) {
		return nil
	}

	return err
}

func edit(ctx context.Context, editor, path string) error {
	argv := append(strings.Fields(editor), path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error {
		process.Terminate(cmd.Process.Pid)

		return nil
	}

	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("editor: %w", err)
	}

	return errEditorExited
}

func watch(ctx context.Context, w *fsnotify.Watcher, path string, opts Options, changed chan<- struct{}) error {
	var debounce *time.Timer

	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			opts.Logger.Debug("file changed", "file", event.Name, "op", event.Op.String())

			opts.Changed()

			if debounce != nil {
				debounce.Stop()
			}

			debounce = time.AfterFunc(opts.Interval, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", "error", err)
		}
	}
}
