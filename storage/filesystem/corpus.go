package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/jst/storage"
)

const maxLineSize = 16 * 1024 * 1024

// ReadCorpus reads the document lines of the corpus file at path.
func ReadCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: corpus %s: %v", storage.ErrResourceOpen, path, err)
	}
	defer f.Close()

	lines, err := ScanCorpus(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return lines, nil
}

// ScanCorpus returns the lines of r, one document per line. Lines that are
// blank after trimming are not documents and are dropped.
func ScanCorpus(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
