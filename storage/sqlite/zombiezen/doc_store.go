package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]document.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []document.Doc
	err = sqlitex.Execute(conn, "SELECT idx, name FROM docs ORDER BY idx", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			docs = append(docs, document.Doc{
				Index: stmt.ColumnInt(0),
				Id:    stmt.ColumnText(1),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(index int) (document.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return document.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := document.Doc{Index: index}
	found := false

	err = sqlitex.Execute(conn, "SELECT name, words, priors FROM docs WHERE idx = ?", &sqlitex.ExecOptions{
		Args: []interface{}{index},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Id = stmt.ColumnText(0)
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &doc.Words); err != nil {
				return err
			}
			return json.Unmarshal([]byte(stmt.ColumnText(2)), &doc.PriorLabels)
		},
	})
	if err != nil {
		return document.Doc{}, err
	}
	if !found {
		return document.Doc{}, fmt.Errorf("doc not found: %d", index)
	}

	return doc, nil
}

func (h *DocStore) Write(doc document.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	words, err := json.Marshal(doc.Words)
	if err != nil {
		return err
	}
	priors, err := json.Marshal(doc.PriorLabels)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO docs (idx, name, words, priors) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Index, doc.Id, string(words), string(priors)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}

	return nil
}

// Clear deletes every row of the docs table.
func (h *DocStore) Clear() error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	if err := sqlitex.Execute(conn, "DELETE FROM docs", nil); err != nil {
		return fmt.Errorf("failed to clear docs: %w", err)
	}

	return nil
}
