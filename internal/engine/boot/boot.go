// Released under an MIT license. See LICENSE.

// Package boot provides the tern standard library.
package boot

import _ "embed" // Blank import required by embed.

//go:embed std.tern
var library string //nolint:gochecknoglobals

// Library returns the source of the standard library.
func Library() string {
	return library
}
