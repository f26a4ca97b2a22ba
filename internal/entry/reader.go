package entry

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"github.com/archer884/roll-report/internal/model"
)

const maxLineBytes = 1 << 20

// ReadFile parses every line of path in order and hands each entry to fn.
// It stops at the first open, read, parse or callback failure and returns
// the number of lines consumed so far.
func ReadFile(path string, fn func(model.Entry) error) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	lines, err := Read(file, fn)
	if ioErr, ok := err.(*IOError); ok {
		ioErr.Path = path
	}
	return lines, err
}

func Read(r io.Reader, fn func(model.Entry) error) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := 0
	for scanner.Scan() {
		lines++
		if !utf8.Valid(scanner.Bytes()) {
			return lines, &IOError{Op: "read", Err: ErrInvalidUTF8}
		}
		parsed, err := Parse(scanner.Text())
		if err != nil {
			return lines, &LineError{Line: lines, Err: err}
		}
		if err := fn(parsed); err != nil {
			return lines, err
		}
	}
	if err := scanner.Err(); err != nil {
		return lines, &IOError{Op: "read", Err: err}
	}
	return lines, nil
}
