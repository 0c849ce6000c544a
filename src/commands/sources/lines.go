// Package sources reads raw text lines for the decode engine. It is the
// only place that touches the byte-level input; the engine itself works
// on an already-materialized line sequence.
package sources

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LineSource reads raw text lines from a file or stdin.
type LineSource struct {
	reader  io.ReadCloser
	scanner *bufio.Scanner
	isStdin bool
}

// Open creates a LineSource for the given path. An empty path or "-"
// reads from stdin.
func Open(path string) (*LineSource, error) {
	if path == "" || path == "-" {
		logrus.Debug("Reading from stdin")
		return newLineSource(os.Stdin, true), nil
	}

	logrus.Debugf("Reading from '%s'", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return newLineSource(file, false), nil
}

func newLineSource(reader io.ReadCloser, isStdin bool) *LineSource {
	return &LineSource{
		reader:  reader,
		scanner: bufio.NewScanner(reader),
		isStdin: isStdin,
	}
}

// ReadAll materializes every remaining line, split on line boundaries
// with line endings stripped.
func (s *LineSource) ReadAll() ([]string, error) {
	var lines []string
	for s.scanner.Scan() {
		lines = append(lines, s.scanner.Text())
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return lines, nil
}

// Close closes the underlying reader if it's not stdin
func (s *LineSource) Close() error {
	if !s.isStdin && s.reader != nil {
		return s.reader.Close()
	}
	return nil
}
