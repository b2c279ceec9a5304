// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

// Package process connects tern to the signals sent to its process.
package process

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// OnInterrupt calls interrupt each time the process receives SIGINT. The
// returned function stops delivery.
func OnInterrupt(interrupt func()) (stop func()) {
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(signals, unix.SIGINT)

	go func() {
		for {
			select {
			case <-signals:
				interrupt()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}

// OnTerminate calls terminate once when the process receives SIGTERM or
// SIGHUP.
func OnTerminate(terminate func()) {
	signals := make(chan os.Signal, 1)

	signal.Notify(signals, unix.SIGTERM, unix.SIGHUP)

	go func() {
		<-signals
		signal.Stop(signals)
		terminate()
	}()
}

// Terminate sends a SIGTERM to the process ID pid.
func Terminate(pid int) {
	_ = unix.Kill(pid, unix.SIGTERM)
}
