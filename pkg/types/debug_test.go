package types

import (
	"io"
	"os"
	"strings"
	"testing"
)

// capture redirects *target (os.Stdout or os.Stderr) for the duration of fn
// and returns what was written.
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	*target = w
	fn()
	w.Close()
	*target = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(out)
}

func TestLevelGating(t *testing.T) {
	defer SetDebugLevel(G_DEBUG_LEVEL)

	SetDebugLevel(FS_WARN)
	if out := capture(t, &os.Stdout, func() { Fs_info("hidden") }); out != "" {
		t.Errorf("Fs_info printed %q at warn level", out)
	}
	if out := capture(t, &os.Stdout, func() { Fs_debug("hidden") }); out != "" {
		t.Errorf("Fs_debug printed %q at warn level", out)
	}
	if out := capture(t, &os.Stdout, func() { Debug(FS_DBG, "hidden") }); out != "" {
		t.Errorf("Debug printed %q at warn level", out)
	}
	if out := capture(t, &os.Stdout, func() { Fs_warn("shown %d", 1) }); !strings.Contains(out, "[WARN] shown 1") {
		t.Errorf("Fs_warn printed %q", out)
	}

	SetDebugLevel(FS_DBG)
	if out := capture(t, &os.Stdout, func() { Fs_info("shown") }); !strings.Contains(out, "[INFO] shown") {
		t.Errorf("Fs_info printed %q", out)
	}
	if out := capture(t, &os.Stdout, func() { Fs_debug("shown") }); !strings.Contains(out, "[DEBUG] shown") {
		t.Errorf("Fs_debug printed %q", out)
	}
	if out := capture(t, &os.Stdout, func() { DumpHex([]byte{0xde, 0xad}, "hdr") }); !strings.Contains(out, "hdr: de ad") {
		t.Errorf("DumpHex printed %q", out)
	}
}

// Errors always print, and to stderr: stdout is reserved for the checker's
// rule diagnostics.
func TestErrorsGoToStderr(t *testing.T) {
	defer SetDebugLevel(G_DEBUG_LEVEL)
	SetDebugLevel(FS_ERR)

	var stdout string
	stderr := capture(t, &os.Stderr, func() {
		stdout = capture(t, &os.Stdout, func() { Fs_err("broken %s", "thing") })
	})
	if !strings.Contains(stderr, "[ERROR] broken thing") {
		t.Errorf("Fs_err wrote %q to stderr", stderr)
	}
	if stdout != "" {
		t.Errorf("Fs_err wrote %q to stdout", stdout)
	}
}
