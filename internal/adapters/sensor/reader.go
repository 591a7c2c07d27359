package sensor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource is the source name that selects standard input
const StdinSource = "-"

// ReadReadings splits r into raw reading tokens. Readings may be separated
// by any whitespace; blank lines are skipped and '#' starts a comment that
// runs to the end of the line.
func ReadReadings(r io.Reader) ([]string, error) {
	var readings []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		readings = append(readings, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sensor readings: %w", err)
	}

	return readings, nil
}

// Open returns a reader for the named source, with StdinSource mapping to
// stdin. The caller closes the result.
func Open(source string, stdin io.Reader) (io.ReadCloser, error) {
	if source == StdinSource {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open readings source: %w", err)
	}
	return f, nil
}

// Load opens source and reads all tokens from it
func Load(source string, stdin io.Reader) ([]string, error) {
	rc, err := Open(source, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadReadings(rc)
}
