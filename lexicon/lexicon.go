// Package lexicon loads sentiment lexicons: one word per line followed by the
// word's score for each sentiment label.
//
//	great 0.1 0.8 0.1
//
// A Lexicon is immutable after loading and safe for concurrent readers.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/tokenize"
)

// ErrLexiconEmpty is returned when a lexicon source yields no entries.
var ErrLexiconEmpty = errors.New("sentiment lexicon is empty")

const maxLineSize = 1024 * 1024

// Entry is the sentiment information of a lexicon word.
type Entry struct {
	// LabelId is the index of the dominant label in Distribution.
	LabelId int `json:"label"`

	Distribution []float64 `json:"dist"`
}

type Lexicon struct {
	words     map[string]Entry
	numLabels int
}

// Load opens the lexicon file at path and parses it. Malformed lines are
// reported to warn, which may be nil.
func Load(path string, warn io.Writer) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: lexicon %s: %v", storage.ErrResourceOpen, path, err)
	}
	defer f.Close()

	lex, err := Parse(f, warn)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}

	return lex, nil
}

// Parse reads a lexicon from r.
//
// Scores are parsed leniently: a score that is not a number counts as 0.0
// instead of failing the line. Existing lexicons rely on this, and changing
// it would change the dominant labels derived from them.
//
// A word appearing more than once keeps its last line.
func Parse(r io.Reader, warn io.Writer) (*Lexicon, error) {
	if warn == nil {
		warn = io.Discard
	}

	lex := &Lexicon{words: map[string]Entry{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := tokenize.Fields(scanner.Text())
		if len(fields) < 1 {
			fmt.Fprintf(warn, "warning: lexicon line %d has no tokens\n", lineNum)
			continue
		}

		dist := make([]float64, 0, len(fields)-1)
		for _, f := range fields[1:] {
			dist = append(dist, parseScore(f))
		}

		lex.words[fields[0]] = Entry{LabelId: dominant(dist), Distribution: dist}
		if len(dist) > lex.numLabels {
			lex.numLabels = len(dist)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lex.words) == 0 {
		return nil, ErrLexiconEmpty
	}

	return lex, nil
}

// dominant returns the index of the first value strictly greater than every
// value before it, starting from 0.0. An all-zero or all-negative
// distribution has label 0.
func dominant(dist []float64) int {
	max, labelId := 0.0, 0
	for k, v := range dist {
		if max < v {
			max = v
			labelId = k
		}
	}
	return labelId
}

func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v
		}
		return 0.0
	}
	return v
}

// Lookup returns the entry of word. A nil Lexicon contains no words.
func (l *Lexicon) Lookup(word string) (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	e, ok := l.words[word]
	return e, ok
}

// Polarity returns the dominant label of word.
func (l *Lexicon) Polarity(word string) (int, bool) {
	e, ok := l.Lookup(word)
	return e.LabelId, ok
}

func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// NumLabels is the longest distribution found. Lines are not required to
// agree on the number of labels.
func (l *Lexicon) NumLabels() int {
	if l == nil {
		return 0
	}
	return l.numLabels
}

// Words returns the lexicon words sorted alphabetically.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	words := make([]string, 0, len(l.words))
	for w := range l.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
