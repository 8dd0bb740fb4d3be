package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/jst/dataset"
	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/storage/filesystem"
	"github.com/revelaction/jst/storage/sqlite/zombiezen"
)

type repoKind int

const (
	kindDir repoKind = iota
	kindSQLite
	kindWordmap
)

var sqliteHeader = []byte("SQLite format 3\x00")

func hasSQLiteExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// kindOf tells a repository directory from a SQLite database and a plain
// wordmap file. Paths with a SQLite extension are SQLite repositories, even
// before they exist.
func kindOf(path string) (repoKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && hasSQLiteExt(path) {
			return kindSQLite, nil
		}
		return 0, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return kindDir, nil
	}

	if hasSQLiteExt(path) {
		return kindSQLite, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", storage.ErrResourceOpen, path, err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err == nil && bytes.Equal(header, sqliteHeader) {
		return kindSQLite, nil
	}

	return kindWordmap, nil
}

// createTarget makes sure an export target exists. Paths with a SQLite
// extension are created by the database, anything else is a directory.
func createTarget(path string) error {
	if hasSQLiteExt(path) {
		return nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	return nil
}

func NewVocabularyRepository(p *Pool, path string, warn io.Writer) (storage.VocabularyRepository, error) {
	kind, err := kindOf(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindDir:
		return filesystem.NewWordmapStore(filepath.Join(path, dataset.DefaultWordmapFile), warn), nil
	case kindWordmap:
		return filesystem.NewWordmapStore(path, warn), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewVocabStore(pool), nil
}

func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	kind, err := kindOf(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindDir:
		return filesystem.NewDocStore(path)
	case kindWordmap:
		return nil, fmt.Errorf("not a document repository: %s", path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}
