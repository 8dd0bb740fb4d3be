package storage

import (
	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/vocab"
)

// VocabularyWriter persists a vocabulary
type VocabularyWriter interface {
	// WriteVocabulary replaces the stored vocabulary with v
	WriteVocabulary(v *vocab.Vocabulary) error
}

// VocabularyReader reads back a stored vocabulary in either direction
type VocabularyReader interface {
	// IdToWord returns the stored vocabulary keyed by id
	IdToWord() (map[int]string, error)

	// WordToId returns the stored vocabulary keyed by word
	WordToId() (map[string]int, error)
}

// VocabularyRepository combines read and write operations
type VocabularyRepository interface {
	VocabularyReader
	VocabularyWriter
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Index, Id) of all documents in corpus order.
	// Content (Words, PriorLabels) is not loaded.
	List() ([]document.Doc, error)

	// Read returns the document at the given corpus index
	Read(index int) (document.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document
	Write(doc document.Doc) error

	// Clear removes every stored document
	Clear() error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}
