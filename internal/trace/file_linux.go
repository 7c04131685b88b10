//go:build linux

package trace

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// readFile maps the trace file into memory and returns a copy of its
// bytes. mmap avoids a buffered-read copy for what can be a large
// sequential file.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	defer unix.Munmap(data)

	// Copy out of the mapping before it is unmapped, so the returned
	// slice stays valid after readFile returns.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
