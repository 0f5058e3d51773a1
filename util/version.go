// Copyright (c) tkc17.

package util

// Set at build time with
// -ldflags "-X github.com/tkc17/iw-parser/util.version=<version>".
var version = "0.1.0-dev"

// Version returns the agent build version.
func Version() string {
	return version
}
