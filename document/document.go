package document

import (
	"github.com/revelaction/jst/vocab"
)

// Doc is a corpus line reduced to vocabulary ids. Words and PriorLabels are
// positionally aligned: PriorLabels[k] is the prior sentiment label of the
// word with id Words[k].
type Doc struct {
	// Index is the position of the document in its corpus.
	Index int `json:"index"`

	// Id is the document name, the first field of the corpus line.
	Id string `json:"id"`

	Words       []int `json:"words"`
	PriorLabels []int `json:"priors"`
}

// Library is a collection of Doc
type Library []Doc

// New returns a Doc with room for length words.
func New(index int, id string, length int) Doc {
	return Doc{
		Index:       index,
		Id:          id,
		Words:       make([]int, length),
		PriorLabels: make([]int, length),
	}
}

// Set stores the word at position k.
func (d Doc) Set(k int, e vocab.Entry) {
	d.Words[k] = e.Id
	d.PriorLabels[k] = e.Polarity
}

// Len is the number of words of the document.
func (d Doc) Len() int {
	return len(d.Words)
}

// NumLabeled is the number of words with a known prior label.
func (d Doc) NumLabeled() int {
	n := 0
	for _, l := range d.PriorLabels {
		if l != vocab.Unknown {
			n++
		}
	}
	return n
}

// CorpusSize is the total number of words of the library.
func (l Library) CorpusSize() int {
	n := 0
	for _, d := range l {
		n += d.Len()
	}
	return n
}
