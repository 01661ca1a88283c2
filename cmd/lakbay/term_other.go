//go:build !unix

package main

import "os"

// isTerminal always reports false; the cleanup prompt is skipped and files
// are kept.
func isTerminal(*os.File) bool {
	return false
}
