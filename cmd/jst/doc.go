package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/render"
	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/storage/filesystem"
	"github.com/revelaction/jst/vocab"
)

func docCommand(opts DocOptions, arg string, ui UI) error {
	var p Pool
	defer p.Close()

	repo, err := NewDocRepository(&p, opts.Repo)
	if err != nil {
		return err
	}

	if arg == "" {
		if opts.JSON {
			docs, err := readAll(repo)
			if err != nil {
				return err
			}
			return render.NewJSONRenderer(ui.Out).Render(docs)
		}
		return listDocs(repo, ui)
	}

	var doc document.Doc
	if info, statErr := os.Stat(arg); statErr == nil && !info.IsDir() {
		doc, err = filesystem.ReadDoc(arg)
		if err != nil {
			absPath, _ := filepath.Abs(arg)
			return fmt.Errorf("filesystem document %q: %w", absPath, err)
		}
	} else {
		index, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return fmt.Errorf("file not found and not a valid doc index: %s", arg)
		}
		doc, err = repo.Read(index)
		if err != nil {
			return err
		}
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Render(document.Library{doc})
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.HasColor = opts.HasColor
	r.HasPrefix = opts.Prefix
	if opts.Format != "" {
		r.Format = opts.Format
	}

	v, err := repoVocabulary(&p, opts.Repo, ui)
	if err != nil {
		fmt.Fprintf(ui.Err, "warning: no vocabulary, showing word ids: %v\n", err)
	} else {
		r.WithVocabulary(v)
	}

	r.Doc(doc)
	return nil
}

// repoVocabulary reads the vocabulary stored next to the documents.
func repoVocabulary(p *Pool, path string, ui UI) (*vocab.Vocabulary, error) {
	vr, err := NewVocabularyRepository(p, path, ui.Err)
	if err != nil {
		return nil, err
	}
	return vocabularyFrom(vr, nil)
}

func readAll(repo storage.DocReader) (document.Library, error) {
	list, err := repo.List()
	if err != nil {
		return nil, err
	}

	docs := make(document.Library, 0, len(list))
	for _, meta := range list {
		doc, err := repo.Read(meta.Index)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func listDocs(repo storage.DocReader, ui UI) error {
	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Index, doc.Id)
	}
	return nil
}
