//go:build !linux

package trace

import "os"

// readFile falls back to a plain buffered read on platforms without
// the mmap syscall shape the Linux implementation relies on.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
