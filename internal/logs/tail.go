package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// DefaultPollInterval is how often Follow checks the file for new lines.
const DefaultPollInterval = 250 * time.Millisecond

// Window is a run of log lines and the byte offset just past the last one.
type Window struct {
	Lines  []string
	Offset int64
}

// Last returns the final n lines of path. n <= 0 returns every line. A missing
// file yields an empty window.
func Last(path string, n int) (Window, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return Window{}, err
	}
	defer file.Close()

	var ring []string
	if n > 0 {
		ring = make([]string, 0, n)
	}
	offset, err := scanComplete(file, func(line string) {
		if n > 0 && len(ring) == n {
			copy(ring, ring[1:])
			ring = ring[:n-1]
		}
		ring = append(ring, line)
	})
	if err != nil {
		return Window{}, err
	}
	return Window{Lines: ring, Offset: offset}, nil
}

// Since returns the complete lines written after offset. When the file has
// shrunk below offset it was truncated or replaced, so reading restarts at 0.
func Since(path string, offset int64) (Window, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return Window{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Window{Offset: offset}, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Window{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	read, err := scanComplete(file, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return Window{Offset: offset}, err
	}
	return Window{Lines: lines, Offset: offset + read}, nil
}

// Follow polls path every interval, handing each new line to emit, until ctx
// is done. Cancellation is a normal exit and returns nil.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		window, err := Since(path, offset)
		if err != nil {
			return err
		}
		for _, line := range window.Lines {
			emit(line)
		}
		offset = window.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func openLog(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

// scanComplete feeds newline-terminated lines to fn and returns the bytes
// consumed. A trailing partial line is left for the next read.
func scanComplete(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return consumed, nil
			}
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		fn(strings.TrimRight(line, "\r\n"))
	}
}
