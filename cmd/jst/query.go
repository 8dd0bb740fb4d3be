package main

import (
	"github.com/revelaction/jst/lexicon"
	"github.com/revelaction/jst/query"
	"github.com/revelaction/jst/render"
	"github.com/revelaction/jst/storage"
	"github.com/revelaction/jst/vocab"
)

// polarities is the stored polarity of each word of a SQLite vocabulary.
type polarities map[string]int

func (p polarities) Polarity(word string) (int, bool) {
	l, ok := p[word]
	return l, ok
}

// vocabularyFrom reads a vocabulary from vr. Without lex, polarities stored
// by the repository are used, if it keeps them.
func vocabularyFrom(vr storage.VocabularyReader, lex vocab.Lookuper) (*vocab.Vocabulary, error) {
	wordToId, err := vr.WordToId()
	if err != nil {
		return nil, err
	}

	if lex == nil {
		if ps, ok := vr.(interface {
			Polarities() (map[string]int, error)
		}); ok {
			stored, err := ps.Polarities()
			if err != nil {
				return nil, err
			}
			lex = polarities(stored)
		}
	}

	return vocab.FromWordToId(wordToId, lex)
}

func queryCommand(path, lexiconPath string, hasColor bool, ui UI) error {
	var p Pool
	defer p.Close()

	vr, err := NewVocabularyRepository(&p, path, ui.Err)
	if err != nil {
		return err
	}

	var lex vocab.Lookuper
	if lexiconPath != "" {
		l, err := lexicon.Load(lexiconPath, ui.Err)
		if err != nil {
			return err
		}
		lex = l
	}

	v, err := vocabularyFrom(vr, lex)
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.HasColor = hasColor

	// now present the REPL
	h := query.NewHandler(v, r)
	h.Out = ui.Out
	return h.Run()
}
