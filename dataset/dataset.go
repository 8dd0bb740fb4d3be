// Package dataset turns raw corpus lines into vocabulary-indexed documents
// with prior sentiment labels.
//
// A training corpus is analyzed once with AnalyzeCorpus. It builds the
// vocabulary, writes it to the wordmap and reads it back. After that the
// vocabulary is frozen. New documents are mapped through the frozen
// vocabulary with AnalyzeNewCorpus.
//
// Every analysis is all or nothing: on error the Dataset is left as it was
// before the call.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/lexicon"
	"github.com/revelaction/jst/stat"
	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/storage/filesystem"
	"github.com/revelaction/jst/tokenize"
	"github.com/revelaction/jst/vocab"
)

const DefaultWordmapFile = "wordmap.txt"

var (
	ErrResourceOpen  = storage.ErrResourceOpen
	ErrEmptyDocument = errors.New("invalid (empty) document")
	ErrEmptyCorpus   = errors.New("corpus has no documents")
	ErrVocabularyIO  = errors.New("wordmap IO failed")
	ErrFrozen        = errors.New("vocabulary is already built")
	ErrNoVocabulary  = errors.New("no training vocabulary")
)

type Dataset struct {
	ResultDir   string
	WordmapFile string

	Lexicon *lexicon.Lexicon

	// Training corpus
	Vocabulary   *vocab.Vocabulary
	IdToWord     map[int]string
	Docs         document.Library
	NumDocs      int
	VocabSize    int
	CorpusSize   int
	AveDocLength int
	Stats        stat.Stats

	// New corpus, mapped through the training vocabulary. Word ids of
	// NewDocs belong to NewVocabulary; NewToTraining translates them to
	// training ids, with vocab.Unknown for words not in the training
	// vocabulary. Those words are also listed in NewWords.
	NewVocabulary   *vocab.Vocabulary
	NewToTraining   []int
	NewWords        []string
	NewDocs         document.Library
	NewNumDocs      int
	NewCorpusSize   int
	NewAveDocLength int
	NewStats        stat.Stats

	repo     storage.VocabularyRepository
	warn     io.Writer
	filters  []tokenize.Filter
	progress func(current, total int, name string)
}

type Option func(*Dataset)

// WithRepository stores the vocabulary in r instead of the wordmap file of
// the result directory.
func WithRepository(r storage.VocabularyRepository) Option {
	return func(d *Dataset) {
		d.repo = r
	}
}

// WithWarnings sets the writer for warnings about malformed lexicon and
// wordmap lines.
func WithWarnings(w io.Writer) Option {
	return func(d *Dataset) {
		d.warn = w
	}
}

// WithFilters applies filters to the words of every document before they
// are resolved.
func WithFilters(filters ...tokenize.Filter) Option {
	return func(d *Dataset) {
		d.filters = filters
	}
}

// WithProgress sets a callback called after each analyzed document.
func WithProgress(cb func(current, total int, name string)) Option {
	return func(d *Dataset) {
		d.progress = cb
	}
}

// New returns an empty Dataset writing its wordmap to resultDir.
func New(resultDir string, opts ...Option) *Dataset {
	if resultDir == "" {
		resultDir = "."
	}

	d := &Dataset{
		ResultDir:   resultDir,
		WordmapFile: DefaultWordmapFile,
		warn:        io.Discard,
	}

	for _, applyOpt := range opts {
		applyOpt(d)
	}

	if d.warn == nil {
		d.warn = io.Discard
	}
	if d.repo == nil {
		d.repo = filesystem.NewWordmapStore(d.WordmapPath(), d.warn)
	}

	return d
}

// WordmapPath is the location of the wordmap file in the result directory.
func (d *Dataset) WordmapPath() string {
	return filepath.Join(d.ResultDir, d.WordmapFile)
}

// ReadSentiLexicon loads the sentiment lexicon. It must be called before
// the corpus is analyzed for words to get prior labels.
func (d *Dataset) ReadSentiLexicon(path string) error {
	lex, err := lexicon.Load(path, d.warn)
	if err != nil {
		return err
	}

	d.Lexicon = lex
	return nil
}

// ReadData reads and analyzes the training corpus file at path.
func (d *Dataset) ReadData(path string) error {
	lines, err := filesystem.ReadCorpus(path)
	if err != nil {
		return err
	}
	return d.AnalyzeCorpus(lines)
}

// ReadDataStream reads and analyzes a training corpus from r.
func (d *Dataset) ReadDataStream(r io.Reader) error {
	lines, err := filesystem.ScanCorpus(r)
	if err != nil {
		return err
	}
	return d.AnalyzeCorpus(lines)
}

// AnalyzeCorpus builds the vocabulary and the training documents from the
// corpus lines, in order. Each line is "docId word word ...".
func (d *Dataset) AnalyzeCorpus(lines []string) error {
	if d.Vocabulary != nil {
		return ErrFrozen
	}

	b := vocab.NewBuilder(d.Lexicon)
	docs, err := d.analyze(lines, b.Resolve)
	if err != nil {
		return err
	}

	v := b.Vocabulary()
	stats := aggregate(docs)

	if err := d.repo.WriteVocabulary(v); err != nil {
		return fmt.Errorf("%w: can not write wordmap: %w", ErrVocabularyIO, err)
	}

	idToWord, err := d.repo.IdToWord()
	if err != nil {
		return fmt.Errorf("%w: can not read wordmap: %w", ErrVocabularyIO, err)
	}

	d.Vocabulary = v
	d.IdToWord = idToWord
	d.Docs = docs
	d.Stats = stats
	d.NumDocs = stats.NumDocs
	d.VocabSize = v.Len()
	d.CorpusSize = stats.CorpusSize
	d.AveDocLength = stats.AveDocLength

	return nil
}

// LoadVocabulary installs the stored training vocabulary, for datasets
// that only analyze new documents.
func (d *Dataset) LoadVocabulary() error {
	if d.Vocabulary != nil {
		return ErrFrozen
	}

	wordToId, err := d.repo.WordToId()
	if err != nil {
		return fmt.Errorf("%w: can not read wordmap: %w", ErrVocabularyIO, err)
	}

	v, err := vocab.FromWordToId(wordToId, d.Lexicon)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVocabularyIO, err)
	}

	d.Vocabulary = v
	d.IdToWord = v.IdToWord()
	d.VocabSize = v.Len()
	return nil
}

// ReadNewData reads the new corpus file at path and maps it through the
// training vocabulary, loading it from the wordmap if needed.
func (d *Dataset) ReadNewData(path string) error {
	lines, err := filesystem.ReadCorpus(path)
	if err != nil {
		return err
	}
	return d.analyzeNew(lines)
}

// ReadNewDataStream is ReadNewData reading from r.
func (d *Dataset) ReadNewDataStream(r io.Reader) error {
	lines, err := filesystem.ScanCorpus(r)
	if err != nil {
		return err
	}
	return d.analyzeNew(lines)
}

func (d *Dataset) analyzeNew(lines []string) error {
	if d.Vocabulary == nil {
		if err := d.LoadVocabulary(); err != nil {
			return err
		}
	}
	return d.AnalyzeNewCorpus(lines)
}

// AnalyzeNewCorpus maps new corpus lines through the frozen training
// vocabulary, which is never modified.
//
// Every distinct word of the new corpus, seen in training or not, gets an
// id in a separate dense id space in first occurrence order. Its prior label
// is the training one, or the lexicon one for unseen words.
func (d *Dataset) AnalyzeNewCorpus(lines []string) error {
	if d.Vocabulary == nil {
		return ErrNoVocabulary
	}

	b := vocab.NewBuilder(trainingPrior{train: d.Vocabulary, lex: d.Lexicon})

	var newToTraining []int
	var newWords []string
	resolve := func(word string) vocab.Entry {
		n := b.Len()
		e := b.Resolve(word)
		if e.Id < n {
			return e
		}

		if te, ok := d.Vocabulary.Lookup(word); ok {
			newToTraining = append(newToTraining, te.Id)
		} else {
			newToTraining = append(newToTraining, vocab.Unknown)
			newWords = append(newWords, word)
		}
		return e
	}

	docs, err := d.analyze(lines, resolve)
	if err != nil {
		return err
	}

	stats := aggregate(docs)

	d.NewVocabulary = b.Vocabulary()
	d.NewToTraining = newToTraining
	d.NewWords = newWords
	d.NewDocs = docs
	d.NewStats = stats
	d.NewNumDocs = stats.NumDocs
	d.NewCorpusSize = stats.CorpusSize
	d.NewAveDocLength = stats.AveDocLength

	return nil
}

// analyze tokenizes every line and resolves its words left to right. The
// first field of a line is the document id.
func (d *Dataset) analyze(lines []string, resolve func(string) vocab.Entry) (document.Library, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make(document.Library, 0, len(lines))
	for i, line := range lines {
		fields := tokenize.Fields(line)
		if len(fields) <= 1 {
			return nil, fmt.Errorf("%w: line %d %q", ErrEmptyDocument, i+1, line)
		}

		words := tokenize.Apply(fields[1:], d.filters...)
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: line %d, doc %s has no words after filtering", ErrEmptyDocument, i+1, fields[0])
		}

		doc := document.New(i, fields[0], len(words))
		for k, w := range words {
			doc.Set(k, resolve(w))
		}
		docs = append(docs, doc)

		if d.progress != nil {
			d.progress(i+1, len(lines), fields[0])
		}
	}

	return docs, nil
}

func aggregate(docs document.Library) stat.Stats {
	h := stat.NewHandler()
	for _, doc := range docs {
		h.Aggregate(doc)
	}
	return h.Get()
}

// trainingPrior gives known words their training polarity and falls back to
// the lexicon for the others.
type trainingPrior struct {
	train *vocab.Vocabulary
	lex   *lexicon.Lexicon
}

func (p trainingPrior) Polarity(word string) (int, bool) {
	if e, ok := p.train.Lookup(word); ok {
		return e.Polarity, true
	}
	return p.lex.Polarity(word)
}
