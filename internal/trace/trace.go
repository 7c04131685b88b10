// Package trace loads per-core memory reference traces from disk.
//
// Each trace file is a sequence of lines "<op> <hex_addr>" where op is
// R or W and hex_addr is a 32-bit address, with or without a leading
// 0x. Bulk trace data is mapped directly into memory rather than read
// through buffered I/O: on Linux, trace files are mapped via
// golang.org/x/sys/unix.Mmap; elsewhere a plain os.ReadFile stub is
// used, split across platform-tagged files the way low-level I/O
// paths are usually split in this codebase.
package trace

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cachelab/mesi4sim/internal/logging"
)

// Op identifies whether a reference is a read or a write.
type Op byte

const (
	Read  Op = 'R'
	Write Op = 'W'
)

// Reference is one memory access: an operation and a 32-bit byte address.
type Reference struct {
	Op   Op
	Addr uint32
}

// Trace is one core's ordered sequence of references.
type Trace []Reference

// NumCores is the fixed number of per-core trace files the simulator reads.
const NumCores = 4

// LoadAll reads prefix_proc0.trace .. prefix_proc(NumCores-1).trace and
// returns one Trace per core in core order.
func LoadAll(prefix string) ([NumCores]Trace, error) {
	var traces [NumCores]Trace
	for core := 0; core < NumCores; core++ {
		path := fmt.Sprintf("%s_proc%d.trace", prefix, core)
		data, err := readFile(path)
		if err != nil {
			return traces, fmt.Errorf("opening trace file %s: %w", path, err)
		}
		tr, err := parse(data)
		if err != nil {
			return traces, fmt.Errorf("parsing trace file %s: %w", path, err)
		}
		traces[core] = tr
		logging.Default().Debug("loaded trace", "core", core, "path", path, "references", len(tr))
	}
	return traces, nil
}

// parse turns raw file bytes into a Trace. Blank lines are not
// expected by the format, but trailing newlines and incidental blank
// lines are tolerated; any other malformed line is a parse error.
func parse(data []byte) (Trace, error) {
	var tr Trace
	lineNo := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"<op> <hex_addr>\", got %q", lineNo, line)
		}
		op, err := parseOp(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		addrStr := string(bytes.TrimPrefix(bytes.TrimPrefix(fields[1], []byte("0x")), []byte("0X")))
		addr, err := strconv.ParseUint(addrStr, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex address %q: %w", lineNo, fields[1], err)
		}
		tr = append(tr, Reference{Op: op, Addr: uint32(addr)})
	}
	return tr, nil
}

func parseOp(field []byte) (Op, error) {
	if len(field) != 1 {
		return 0, fmt.Errorf("invalid operation %q, expected R or W", field)
	}
	switch field[0] {
	case 'R', 'r':
		return Read, nil
	case 'W', 'w':
		return Write, nil
	default:
		return 0, fmt.Errorf("invalid operation %q, expected R or W", field)
	}
}
