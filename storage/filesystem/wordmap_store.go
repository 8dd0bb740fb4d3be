package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/vocab"
)

// WordmapStore keeps a vocabulary in a wordmap text file.
type WordmapStore struct {
	path string
	warn io.Writer
}

var _ storage.VocabularyRepository = (*WordmapStore)(nil)

// NewWordmapStore returns a store for the wordmap at path. Warnings about
// malformed lines are written to warn, which may be nil.
func NewWordmapStore(path string, warn io.Writer) *WordmapStore {
	if warn == nil {
		warn = io.Discard
	}
	return &WordmapStore{path: path, warn: warn}
}

func (s *WordmapStore) Path() string {
	return s.path
}

// WriteVocabulary writes v to a temporary file in the wordmap directory and
// renames it over the wordmap. On error the previous wordmap is untouched.
func (s *WordmapStore) WriteVocabulary(v *vocab.Vocabulary) (err error) {
	f, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: wordmap %s: %v", storage.ErrResourceOpen, s.path, err)
	}

	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err = vocab.Write(f, v); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	// CreateTemp files are 0600
	if err = os.Chmod(f.Name(), 0644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	if err = os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	return nil
}

func (s *WordmapStore) IdToWord() (map[int]string, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return vocab.ReadIdToWord(f, s.warn)
}

func (s *WordmapStore) WordToId() (map[string]int, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return vocab.ReadWordToId(f, s.warn)
}

func (s *WordmapStore) open() (*os.File, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: wordmap %s: %v", storage.ErrResourceOpen, s.path, err)
	}
	return f, nil
}
