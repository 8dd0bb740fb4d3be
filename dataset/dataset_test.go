package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/revelaction/jst/tokenize"
	"github.com/revelaction/jst/vocab"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTrained(t *testing.T, lines ...string) *Dataset {
	t.Helper()

	dir := t.TempDir()
	d := New(dir)
	if err := d.ReadSentiLexicon(writeFile(t, dir, "lexicon.txt", "good 0.1 0.9\nbad 0.9 0.1\n")); err != nil {
		t.Fatalf("unexpected lexicon error: %v", err)
	}
	if err := d.AnalyzeCorpus(lines); err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	return d
}

func TestAnalyzeCorpus(t *testing.T) {
	d := newTrained(t, "d0 good movie", "d1 bad movie")

	want := []struct {
		word     string
		id       int
		polarity int
	}{
		{"good", 0, 1},
		{"movie", 1, vocab.Unknown},
		{"bad", 2, 0},
	}

	for _, w := range want {
		e, ok := d.Vocabulary.Lookup(w.word)
		if !ok {
			t.Fatalf("missing word %q", w.word)
		}
		if e.Id != w.id || e.Polarity != w.polarity {
			t.Errorf("word %q: expected id %d polarity %d, got %+v", w.word, w.id, w.polarity, e)
		}
	}

	if d.NumDocs != 2 || d.VocabSize != 3 || d.CorpusSize != 4 || d.AveDocLength != 2 {
		t.Errorf("unexpected aggregates docs=%d vocab=%d corpus=%d ave=%d", d.NumDocs, d.VocabSize, d.CorpusSize, d.AveDocLength)
	}

	if d.Docs[0].Id != "d0" || d.Docs[1].Id != "d1" {
		t.Errorf("unexpected doc ids %q %q", d.Docs[0].Id, d.Docs[1].Id)
	}
	if !reflect.DeepEqual(d.Docs[1].Words, []int{2, 1}) {
		t.Errorf("unexpected words %v", d.Docs[1].Words)
	}
	if !reflect.DeepEqual(d.Docs[1].PriorLabels, []int{0, vocab.Unknown}) {
		t.Errorf("unexpected prior labels %v", d.Docs[1].PriorLabels)
	}

	if !reflect.DeepEqual(d.IdToWord, map[int]string{0: "good", 1: "movie", 2: "bad"}) {
		t.Errorf("unexpected id to word %v", d.IdToWord)
	}

	content, err := os.ReadFile(d.WordmapPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "3\ngood 0\nmovie 1\nbad 2\n" {
		t.Errorf("unexpected wordmap %q", content)
	}
}

func TestAnalyzeCorpusDenseFirstOccurrenceIds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	var lines []string
	for i := 0; i < 40; i++ {
		n := 1 + rng.Intn(8)
		fields := []string{fmt.Sprintf("d%d", i)}
		for k := 0; k < n; k++ {
			fields = append(fields, pool[rng.Intn(len(pool))])
		}
		lines = append(lines, strings.Join(fields, " "))
	}

	d := New(t.TempDir())
	if err := d.AnalyzeCorpus(lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// expected ids from the flattened token stream
	expected := map[string]int{}
	for _, line := range lines {
		for _, w := range tokenize.Fields(line)[1:] {
			if _, ok := expected[w]; !ok {
				expected[w] = len(expected)
			}
		}
	}

	if d.VocabSize != len(expected) {
		t.Fatalf("expected vocabulary size %d, got %d", len(expected), d.VocabSize)
	}
	for w, id := range expected {
		if e, _ := d.Vocabulary.Lookup(w); e.Id != id {
			t.Errorf("word %q: expected id %d, got %d", w, id, e.Id)
		}
	}

	corpusSize := 0
	for _, doc := range d.Docs {
		corpusSize += doc.Len()
		if len(doc.Words) != len(doc.PriorLabels) {
			t.Fatalf("doc %s: unaligned arrays", doc.Id)
		}
		for _, id := range doc.Words {
			if id < 0 || id >= d.VocabSize {
				t.Fatalf("doc %s: id %d out of range", doc.Id, id)
			}
		}
	}
	if corpusSize != d.CorpusSize {
		t.Errorf("expected corpus size %d, got %d", corpusSize, d.CorpusSize)
	}
	if d.AveDocLength != d.CorpusSize/d.NumDocs {
		t.Errorf("unexpected average length %d", d.AveDocLength)
	}
}

func TestAnalyzeCorpusEmptyDocumentRollback(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	err := d.AnalyzeCorpus([]string{"d0 good movie", "d1 bad", "d3"})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	if d.Vocabulary != nil || d.Docs != nil || d.IdToWord != nil {
		t.Error("failed analysis must not leave partial state")
	}
	if d.NumDocs != 0 || d.VocabSize != 0 || d.CorpusSize != 0 {
		t.Error("failed analysis must not leave aggregates")
	}
	if _, err := os.Stat(d.WordmapPath()); !os.IsNotExist(err) {
		t.Error("failed analysis must not write the wordmap")
	}

	// the dataset is still usable
	if err := d.AnalyzeCorpus([]string{"d0 good movie"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeCorpusEmpty(t *testing.T) {
	d := New(t.TempDir())
	if err := d.AnalyzeCorpus(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestAnalyzeCorpusFrozen(t *testing.T) {
	d := newTrained(t, "d0 good movie")
	if err := d.AnalyzeCorpus([]string{"d1 bad"}); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if d.VocabSize != 2 {
		t.Errorf("vocabulary changed to size %d", d.VocabSize)
	}
}

func TestAnalyzeCorpusWithoutLexicon(t *testing.T) {
	d := New(t.TempDir())
	if err := d.AnalyzeCorpus([]string{"d0 good movie"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, l := range d.Docs[0].PriorLabels {
		if l != vocab.Unknown {
			t.Fatalf("expected only unknown labels, got %v", d.Docs[0].PriorLabels)
		}
	}
}

func TestAnalyzeCorpusFilters(t *testing.T) {
	d := New(t.TempDir(), WithFilters(tokenize.LowerFilter(), tokenize.StopwordFilter("en")))
	if err := d.AnalyzeCorpus([]string{"d0 The movie", "d1 a Movie and the plot"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(d.Vocabulary.Words(), []string{"movie", "plot"}) {
		t.Errorf("unexpected vocabulary %q", d.Vocabulary.Words())
	}
	if d.CorpusSize != 3 {
		t.Errorf("expected corpus size 3, got %d", d.CorpusSize)
	}

	d = New(t.TempDir(), WithFilters(tokenize.StopwordFilter("en")))
	if err := d.AnalyzeCorpus([]string{"d0 movie", "d1 the and"}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument for a filtered out document, got %v", err)
	}
}

func TestAnalyzeCorpusProgress(t *testing.T) {
	var names []string
	d := New(t.TempDir(), WithProgress(func(current, total int, name string) {
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		names = append(names, name)
	}))

	if err := d.AnalyzeCorpus([]string{"d0 a", "d1 b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"d0", "d1"}) {
		t.Errorf("unexpected progress names %q", names)
	}
}

func TestReadData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "train.dat", "d0 good movie\n\n  \nd1 bad movie\n")

	d := New(dir)
	if err := d.ReadData(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NumDocs != 2 {
		t.Errorf("expected blank lines to be skipped, got %d docs", d.NumDocs)
	}

	err := New(dir).ReadData(filepath.Join(dir, "missing.dat"))
	if !errors.Is(err, ErrResourceOpen) {
		t.Fatalf("expected ErrResourceOpen, got %v", err)
	}
}

func TestReadDataStream(t *testing.T) {
	d := New(t.TempDir())
	if err := d.ReadDataStream(strings.NewReader("d0 x y\nd1 y z\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.VocabSize != 3 {
		t.Errorf("expected 3 words, got %d", d.VocabSize)
	}
}

type failingRepo struct {
	writeErr error
	readErr  error
}

func (r failingRepo) WriteVocabulary(v *vocab.Vocabulary) error { return r.writeErr }
func (r failingRepo) IdToWord() (map[int]string, error)       { return nil, r.readErr }
func (r failingRepo) WordToId() (map[string]int, error)       { return nil, r.readErr }

func TestAnalyzeCorpusVocabularyIO(t *testing.T) {
	tests := []struct {
		name string
		repo failingRepo
	}{
		{"write", failingRepo{writeErr: errors.New("disk full")}},
		{"read", failingRepo{readErr: errors.New("gone")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(t.TempDir(), WithRepository(tt.repo))
			err := d.AnalyzeCorpus([]string{"d0 good movie"})
			if !errors.Is(err, ErrVocabularyIO) {
				t.Fatalf("expected ErrVocabularyIO, got %v", err)
			}
			if d.Vocabulary != nil || d.Docs != nil || d.NumDocs != 0 {
				t.Error("failed analysis must not leave partial state")
			}
		})
	}
}

func TestAnalyzeCorpusUnwritableResultDir(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing"))
	err := d.AnalyzeCorpus([]string{"d0 good"})
	if !errors.Is(err, ErrVocabularyIO) || !errors.Is(err, ErrResourceOpen) {
		t.Fatalf("expected ErrVocabularyIO wrapping ErrResourceOpen, got %v", err)
	}
}

func TestReadSentiLexiconErrors(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	if err := d.ReadSentiLexicon(filepath.Join(dir, "none.txt")); !errors.Is(err, ErrResourceOpen) {
		t.Errorf("expected ErrResourceOpen, got %v", err)
	}
	if err := d.ReadSentiLexicon(writeFile(t, dir, "empty.txt", "\n")); err == nil {
		t.Error("expected error for empty lexicon")
	}
	if d.Lexicon != nil {
		t.Error("failed load must not install a lexicon")
	}
}

func TestAnalyzeNewCorpus(t *testing.T) {
	d := newTrained(t, "d0 good movie", "d1 bad movie")

	if err := d.AnalyzeNewCorpus([]string{"n0 great movie", "n1 bad plot great"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(d.NewVocabulary.Words(), []string{"great", "movie", "bad", "plot"}) {
		t.Errorf("unexpected new vocabulary %q", d.NewVocabulary.Words())
	}
	if !reflect.DeepEqual(d.NewToTraining, []int{vocab.Unknown, 1, 2, vocab.Unknown}) {
		t.Errorf("unexpected new to training map %v", d.NewToTraining)
	}
	if !reflect.DeepEqual(d.NewWords, []string{"great", "plot"}) {
		t.Errorf("unexpected new words %q", d.NewWords)
	}

	if !reflect.DeepEqual(d.NewDocs[1].Words, []int{2, 3, 0}) {
		t.Errorf("unexpected words %v", d.NewDocs[1].Words)
	}
	if !reflect.DeepEqual(d.NewDocs[1].PriorLabels, []int{0, vocab.Unknown, vocab.Unknown}) {
		t.Errorf("unexpected prior labels %v", d.NewDocs[1].PriorLabels)
	}
	if d.NewNumDocs != 2 || d.NewCorpusSize != 5 || d.NewAveDocLength != 2 {
		t.Errorf("unexpected aggregates docs=%d corpus=%d ave=%d", d.NewNumDocs, d.NewCorpusSize, d.NewAveDocLength)
	}

	// training side untouched
	if d.VocabSize != 3 || d.Vocabulary.Len() != 3 || d.NumDocs != 2 {
		t.Error("training vocabulary must not change")
	}
	if _, ok := d.Vocabulary.Lookup("plot"); ok {
		t.Error("unseen word leaked into the training vocabulary")
	}
}

func TestAnalyzeNewCorpusLexiconFallback(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)
	if err := d.AnalyzeCorpus([]string{"d0 movie"}); err != nil {
		t.Fatal(err)
	}

	// lexicon loaded after training only reaches unseen words
	if err := d.ReadSentiLexicon(writeFile(t, dir, "lex.txt", "good 0.1 0.9\nmovie 0.8 0.2\n")); err != nil {
		t.Fatal(err)
	}
	if err := d.AnalyzeNewCorpus([]string{"n0 movie good"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.NewDocs[0].PriorLabels, []int{vocab.Unknown, 1}) {
		t.Errorf("unexpected prior labels %v", d.NewDocs[0].PriorLabels)
	}
}

func TestAnalyzeNewCorpusNoVocabulary(t *testing.T) {
	d := New(t.TempDir())
	if err := d.AnalyzeNewCorpus([]string{"n0 a"}); !errors.Is(err, ErrNoVocabulary) {
		t.Fatalf("expected ErrNoVocabulary, got %v", err)
	}
}

func TestAnalyzeNewCorpusRollback(t *testing.T) {
	d := newTrained(t, "d0 good movie")
	if err := d.AnalyzeNewCorpus([]string{"n0 good", "n1"}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if d.NewVocabulary != nil || d.NewDocs != nil || d.NewToTraining != nil {
		t.Error("failed analysis must not leave partial state")
	}
}

func TestReadNewDataStreamLoadsVocabulary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultWordmapFile, "2\ngood 0\nmovie 1\n")
	lexPath := writeFile(t, dir, "lex.txt", "good 0.1 0.9\n")

	d := New(dir)
	if err := d.ReadSentiLexicon(lexPath); err != nil {
		t.Fatal(err)
	}
	if err := d.ReadNewDataStream(strings.NewReader("n0 movie good fine\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.VocabSize != 2 {
		t.Errorf("expected loaded vocabulary of 2 words, got %d", d.VocabSize)
	}
	if e, _ := d.Vocabulary.Lookup("good"); e.Polarity != 1 {
		t.Errorf("expected loaded word polarity from lexicon, got %d", e.Polarity)
	}
	if !reflect.DeepEqual(d.NewToTraining, []int{1, 0, vocab.Unknown}) {
		t.Errorf("unexpected new to training map %v", d.NewToTraining)
	}
	if !reflect.DeepEqual(d.NewWords, []string{"fine"}) {
		t.Errorf("unexpected new words %q", d.NewWords)
	}
}

func TestReadNewDataMissingWordmap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.dat", "n0 a b\n")

	err := New(dir).ReadNewData(path)
	if !errors.Is(err, ErrVocabularyIO) || !errors.Is(err, ErrResourceOpen) {
		t.Fatalf("expected ErrVocabularyIO wrapping ErrResourceOpen, got %v", err)
	}
}

func TestLoadVocabularyFrozen(t *testing.T) {
	d := newTrained(t, "d0 a")
	if err := d.LoadVocabulary(); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
}
