package bridge

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Aurelbuche/skill-mode/internal/logging"
)

// Tailer follows the vendor session log and delivers complete lines as they
// are appended. File change notifications wake the reader; a ticker covers
// filesystems where notifications are unreliable.
type Tailer struct {
	path     string
	logger   *logging.Logger
	interval time.Duration
}

// NewTailer returns a tailer for the log at path. interval is the polling
// fallback period; zero means one second.
func NewTailer(path string, logger *logging.Logger, interval time.Duration) *Tailer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Tailer{path: path, logger: logger, interval: interval}
}

// Tail streams appended lines to fn until ctx is done. Existing content is
// skipped; only lines written after the call are delivered. The log being
// truncated (session restart) resets the read position.
func (t *Tailer) Tail(ctx context.Context, fn func(line string)) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer func() { _ = watcher.Close() }()
		// Watch the directory: the log may be rotated in place.
		if werr := watcher.Add(filepath.Dir(t.path)); werr != nil {
			t.logger.Warn("Log watch unavailable, polling only", map[string]interface{}{
				"path": t.path, "error": werr.Error(),
			})
		}
	} else {
		t.logger.Warn("fsnotify unavailable, polling only", map[string]interface{}{
			"error": err.Error(),
		})
		watcher = nil
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if watcher != nil {
		events = watcher.Events
		errs = watcher.Errors
	}

	for {
		offset, err = t.drain(f, offset, fn)
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case ev := <-events:
			if ev.Name != t.path {
				continue
			}
		case werr := <-errs:
			// The ticker keeps the tail alive when the watcher degrades.
			t.logger.Warn("Log watch error", map[string]interface{}{
				"path": t.path, "error": werr.Error(),
			})
		}
	}
}

// drain reads complete lines from offset to the current end of file.
func (t *Tailer) drain(f *os.File, offset int64, fn func(line string)) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return offset, err
	}
	if info.Size() < offset {
		// Truncated; start over from the top.
		offset = 0
	}
	if info.Size() == offset {
		return offset, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// Partial trailing line: leave it for the next wake-up.
			return offset, nil
		}
		offset += int64(len(line))
		fn(line[:len(line)-1])
	}
}
