package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/revelaction/jst/tokenize"
)

// ErrMalformedWordmap is returned when the count line of a wordmap is
// missing or not a number.
var ErrMalformedWordmap = errors.New("malformed wordmap")

// Write serializes v as a wordmap: the number of words on the first line,
// then one "word id" line per word in id order.
//
// Words are written verbatim. A word containing a separator character can
// not be read back.
func Write(w io.Writer, v *Vocabulary) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d\n", v.Len()); err != nil {
		return err
	}

	err := v.Each(func(word string, e Entry) error {
		_, err := fmt.Fprintf(bw, "%s %d\n", word, e.Id)
		return err
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}

// ReadIdToWord reads a wordmap into an id to word mapping.
func ReadIdToWord(r io.Reader, warn io.Writer) (map[int]string, error) {
	m := map[int]string{}
	err := read(r, warn, func(word string, id int) {
		if _, ok := m[id]; !ok {
			m[id] = word
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReadWordToId reads a wordmap into a word to id mapping.
func ReadWordToId(r io.Reader, warn io.Writer) (map[string]int, error) {
	m := map[string]int{}
	err := read(r, warn, func(word string, id int) {
		if _, ok := m[word]; !ok {
			m[word] = id
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// read parses the count line and then at most count pair lines. A line that
// is not exactly "word id" is reported to warn and skipped; it still counts
// as one of the declared lines. A duplicated key keeps its first pair.
func read(r io.Reader, warn io.Writer, fn func(word string, id int)) error {
	if warn == nil {
		warn = io.Discard
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: missing word count", ErrMalformedWordmap)
	}

	nwords, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || nwords < 0 {
		return fmt.Errorf("%w: invalid word count %q", ErrMalformedWordmap, scanner.Text())
	}

	for i := 0; i < nwords && scanner.Scan(); i++ {
		fields := tokenize.Fields(scanner.Text())
		if len(fields) != 2 {
			fmt.Fprintf(warn, "warning: wordmap line %d has %d fields, want 2\n", i+2, len(fields))
			continue
		}

		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(warn, "warning: wordmap line %d has invalid id %q\n", i+2, fields[1])
			continue
		}

		fn(fields[0], id)
	}

	return scanner.Err()
}
