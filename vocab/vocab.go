// Package vocab maps corpus words to dense integer ids assigned in first
// occurrence order, each carrying the word's prior sentiment label.
package vocab

import (
	"fmt"
	"sort"
)

// Unknown is the prior polarity of words missing from the sentiment lexicon.
const Unknown = -1

// Entry is the vocabulary attribute of a word.
type Entry struct {
	Id       int `json:"id"`
	Polarity int `json:"polarity"`
}

// Lookuper provides the dominant sentiment label of a word.
type Lookuper interface {
	Polarity(word string) (int, bool)
}

// Vocabulary is a read-only word to Entry mapping that remembers insertion
// order. Words are kept in ascending id order.
type Vocabulary struct {
	words   []string
	entries map[string]Entry
}

func newVocabulary() *Vocabulary {
	return &Vocabulary{entries: map[string]Entry{}}
}

// FromWordToId builds a Vocabulary from a word to id mapping, as read from a
// wordmap. Prior polarities are taken from lex, which may be nil.
func FromWordToId(m map[string]int, lex Lookuper) (*Vocabulary, error) {
	v := &Vocabulary{
		words:   make([]string, 0, len(m)),
		entries: make(map[string]Entry, len(m)),
	}

	seen := make(map[int]string, len(m))
	for word, id := range m {
		if other, ok := seen[id]; ok {
			return nil, fmt.Errorf("words %q and %q share id %d", other, word, id)
		}
		seen[id] = word

		v.words = append(v.words, word)
		v.entries[word] = Entry{Id: id, Polarity: polarity(lex, word)}
	}

	sort.Slice(v.words, func(i, j int) bool {
		return v.entries[v.words[i]].Id < v.entries[v.words[j]].Id
	})

	return v, nil
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// Lookup returns the entry of word.
func (v *Vocabulary) Lookup(word string) (Entry, bool) {
	if v == nil {
		return Entry{}, false
	}
	e, ok := v.entries[word]
	return e, ok
}

// Word returns the word with the given id.
func (v *Vocabulary) Word(id int) (string, bool) {
	if v == nil {
		return "", false
	}

	i := sort.Search(len(v.words), func(i int) bool {
		return v.entries[v.words[i]].Id >= id
	})
	if i < len(v.words) && v.entries[v.words[i]].Id == id {
		return v.words[i], true
	}
	return "", false
}

// Words returns the words in id order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.words...)
}

// Each calls fn for every word in id order.
func (v *Vocabulary) Each(fn func(word string, e Entry) error) error {
	if v == nil {
		return nil
	}
	for _, w := range v.words {
		if err := fn(w, v.entries[w]); err != nil {
			return err
		}
	}
	return nil
}

// IdToWord returns the id to word view of the vocabulary.
func (v *Vocabulary) IdToWord() map[int]string {
	m := make(map[int]string, v.Len())
	_ = v.Each(func(word string, e Entry) error {
		m[e.Id] = word
		return nil
	})
	return m
}

// Builder grows a Vocabulary. It is the only way to add words, and it must
// be fed the corpus tokens in document order, then token order: ids reflect
// first occurrence.
type Builder struct {
	v   *Vocabulary
	lex Lookuper
}

// NewBuilder returns a Builder for an empty vocabulary. lex may be nil, in
// which case every word has Unknown polarity.
func NewBuilder(lex Lookuper) *Builder {
	return &Builder{v: newVocabulary(), lex: lex}
}

// Resolve returns the entry of word, adding it with the next id and its
// lexicon polarity if it has not been seen before.
func (b *Builder) Resolve(word string) Entry {
	if b.v == nil {
		panic("vocab: Resolve called on a finished Builder")
	}

	if e, ok := b.v.entries[word]; ok {
		return e
	}

	e := Entry{Id: len(b.v.words), Polarity: polarity(b.lex, word)}
	b.v.entries[word] = e
	b.v.words = append(b.v.words, word)
	return e
}

func (b *Builder) Len() int {
	return b.v.Len()
}

// Vocabulary finishes the Builder and returns the built vocabulary.
func (b *Builder) Vocabulary() *Vocabulary {
	v := b.v
	b.v = nil
	return v
}

func polarity(lex Lookuper, word string) int {
	if lex == nil {
		return Unknown
	}
	if p, ok := lex.Polarity(word); ok {
		return p
	}
	return Unknown
}
