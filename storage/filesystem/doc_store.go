package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/storage"
)

type DocStore struct {
	docDir string

	// metadata of the stored docs, by corpus index
	docs []document.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over docDir, one JSON
// file per document.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, fmt.Errorf("%w: doc dir %s: %v", storage.ErrResourceOpen, docDir, err)
	}

	docs := make([]document.Doc, 0, len(files))
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		doc, err := ReadDoc(filepath.Join(docDir, file.Name()))
		if err != nil {
			return nil, err
		}

		docs = append(docs, document.Doc{Index: doc.Index, Id: doc.Id})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Index < docs[j].Index })

	return &DocStore{
		docDir: docDir,
		docs:   docs,
	}, nil
}

func (h *DocStore) List() ([]document.Doc, error) {
	return h.docs, nil
}

func (h *DocStore) Read(index int) (document.Doc, error) {
	i := sort.Search(len(h.docs), func(i int) bool { return h.docs[i].Index >= index })
	if i == len(h.docs) || h.docs[i].Index != index {
		return document.Doc{}, fmt.Errorf("doc index out of range: %d", index)
	}

	return ReadDoc(h.docPath(index))
}

func (h *DocStore) Write(doc document.Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(h.docPath(doc.Index), data, 0644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	meta := document.Doc{Index: doc.Index, Id: doc.Id}
	i := sort.Search(len(h.docs), func(i int) bool { return h.docs[i].Index >= doc.Index })
	if i < len(h.docs) && h.docs[i].Index == doc.Index {
		h.docs[i] = meta
		return nil
	}

	h.docs = append(h.docs, document.Doc{})
	copy(h.docs[i+1:], h.docs[i:])
	h.docs[i] = meta
	return nil
}

// Clear removes the JSON files of the store. Other files in the directory,
// like the wordmap, are kept.
func (h *DocStore) Clear() error {
	files, err := filepath.Glob(filepath.Join(h.docDir, "*.json"))
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("IO error: %w", err)
		}
	}

	h.docs = []document.Doc{}
	return nil
}

func (h *DocStore) docPath(index int) string {
	return filepath.Join(h.docDir, fmt.Sprintf("%08d.json", index))
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (document.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return document.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc document.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return document.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
