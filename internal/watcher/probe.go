package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

type probeResult struct {
	supported bool
	reason    string
}

// probe tests whether fsnotify reliably reports events in dir by doing a
// real create+rename round trip. Network and overlay filesystems often
// accept watches silently and then never deliver anything.
func probe(dir string) probeResult {
	st, err := os.Stat(dir)
	if err != nil {
		return probeResult{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return probeResult{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return probeResult{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return probeResult{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	tmp := filepath.Join(dir, ".snapkeeper_probe_tmp")
	final := filepath.Join(dir, ".snapkeeper_probe")

	if f, err := os.Create(tmp); err == nil {
		f.Close()
	} else {
		return probeResult{false, fmt.Sprintf("cannot create temp file: %v", err)}
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return probeResult{false, fmt.Sprintf("rename failed: %v", err)}
	}
	defer os.Remove(final)

	timeout := time.After(200 * time.Millisecond)
	for {
		select {
		case ev := <-w.Events:
			if ev.Op&(fsnotify.Rename|fsnotify.Create|fsnotify.Write) != 0 {
				return probeResult{true, ""}
			}
		case <-timeout:
			return probeResult{false, "no events received"}
		}
	}
}
