// SPDX-License-Identifier: MIT
// Command dtwindex is a CLI shell over the session package: each
// invocation runs one operation (every one but set-band-ratio against a
// dataset it loads first) and exits,
// printing a human-readable result on success and a one-line error on
// failure.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
