package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTraceFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644)
	require.NoError(t, err)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeTraceFile(t, dir, "demo_proc0.trace", "R 0x00000000\nW 0x10\n")
	writeTraceFile(t, dir, "demo_proc1.trace", "R 0x20\n")
	writeTraceFile(t, dir, "demo_proc2.trace", "")
	writeTraceFile(t, dir, "demo_proc3.trace", "")

	traces, err := LoadAll(filepath.Join(dir, "demo"))
	require.NoError(t, err)

	require.Len(t, traces[0], 2)
	require.Equal(t, Reference{Op: Read, Addr: 0x0}, traces[0][0])
	require.Equal(t, Reference{Op: Write, Addr: 0x10}, traces[0][1])
	require.Len(t, traces[1], 1)
	require.Empty(t, traces[2])
	require.Empty(t, traces[3])
}

func TestLoadAllMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadAll(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := parse([]byte("X 0x0\n"))
	require.Error(t, err)

	_, err = parse([]byte("R notahexaddr\n"))
	require.Error(t, err)

	_, err = parse([]byte("R\n"))
	require.Error(t, err)
}

func TestParseAcceptsWithAndWithoutHexPrefix(t *testing.T) {
	tr, err := parse([]byte("R 0x1A\nW 1A\n"))
	require.NoError(t, err)
	require.Len(t, tr, 2)
	require.Equal(t, uint32(0x1A), tr[0].Addr)
	require.Equal(t, uint32(0x1A), tr[1].Addr)
}

func TestParseIgnoresBlankLines(t *testing.T) {
	tr, err := parse([]byte("R 0x0\n\n\nW 0x4\n"))
	require.NoError(t, err)
	require.Len(t, tr, 2)
}
