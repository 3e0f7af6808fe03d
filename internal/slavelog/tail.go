package slavelog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const tailBlockSize = 32 * 1024

// Tail returns the last lines lines of the file at path as a single blob,
// oldest first, with the original line endings intact. A file holding fewer
// lines than requested comes back whole. Reads walk backwards from the end of
// the file in fixed-size blocks, so memory stays proportional to the tail
// rather than the file.
func Tail(path string, lines int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("log path %q is a directory", path)
	}
	if lines <= 0 || info.Size() == 0 {
		return "", nil
	}

	var buf []byte
	offset := info.Size()
	for offset > 0 && !hasEnoughLines(buf, lines) {
		step := int64(tailBlockSize)
		if step > offset {
			step = offset
		}
		offset -= step
		block := make([]byte, step)
		if _, err := file.ReadAt(block, offset); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read log file: %w", err)
		}
		buf = append(block, buf...)
	}

	return string(buf[tailStart(buf, lines):]), nil
}

// hasEnoughLines reports whether buf already spans at least lines complete
// lines plus the newline that precedes them, so no further backward reads are
// needed.
func hasEnoughLines(buf []byte, lines int) bool {
	return bytes.Count(trimTerminator(buf), []byte{'\n'}) >= lines
}

// tailStart locates the byte offset where the last lines lines begin.
func tailStart(buf []byte, lines int) int {
	search := trimTerminator(buf)
	idx := len(search)
	for i := 0; i < lines; i++ {
		j := bytes.LastIndexByte(search[:idx], '\n')
		if j < 0 {
			return 0
		}
		idx = j
	}
	return idx + 1
}

// trimTerminator drops a trailing newline so it terminates the final line
// instead of counting as an empty line after it.
func trimTerminator(buf []byte) []byte {
	if len(buf) > 0 && buf[len(buf)-1] == '\n' {
		return buf[:len(buf)-1]
	}
	return buf
}
