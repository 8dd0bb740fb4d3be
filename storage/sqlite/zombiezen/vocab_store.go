package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/vocab"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// VocabStore keeps a vocabulary in the words table.
type VocabStore struct {
	pool *sqlitex.Pool
}

var _ storage.VocabularyRepository = (*VocabStore)(nil)

func NewVocabStore(pool *sqlitex.Pool) *VocabStore {
	return &VocabStore{pool: pool}
}

// WriteVocabulary replaces the content of the words table with v in a
// single transaction.
func (h *VocabStore) WriteVocabulary(v *vocab.Vocabulary) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if err = sqlitex.Execute(conn, "DELETE FROM words", nil); err != nil {
		return fmt.Errorf("failed to clear words: %w", err)
	}

	return v.Each(func(word string, e vocab.Entry) error {
		err := sqlitex.Execute(conn, "INSERT INTO words (id, word, polarity) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{e.Id, word, e.Polarity},
		})
		if err != nil {
			return fmt.Errorf("failed to insert word %q: %w", word, err)
		}
		return nil
	})
}

func (h *VocabStore) IdToWord() (map[int]string, error) {
	m := map[int]string{}
	err := h.each(func(id int, word string, _ int) {
		m[id] = word
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (h *VocabStore) WordToId() (map[string]int, error) {
	m := map[string]int{}
	err := h.each(func(id int, word string, _ int) {
		m[word] = id
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Polarities returns the stored prior polarity of every word.
func (h *VocabStore) Polarities() (map[string]int, error) {
	m := map[string]int{}
	err := h.each(func(_ int, word string, polarity int) {
		m[word] = polarity
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (h *VocabStore) each(fn func(id int, word string, polarity int)) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, "SELECT id, word, polarity FROM words ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			fn(stmt.ColumnInt(0), stmt.ColumnText(1), stmt.ColumnInt(2))
			return nil
		},
	})
}
