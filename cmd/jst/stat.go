package main

import (
	"fmt"

	"github.com/revelaction/jst/render"
	"github.com/revelaction/jst/stat"
)

func statCommand(repoPath string, dis bool, ui UI) error {
	var p Pool
	defer p.Close()

	repo, err := NewDocRepository(&p, repoPath)
	if err != nil {
		return err
	}

	docs, err := readAll(repo)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return fmt.Errorf("no documents in %s", repoPath)
	}

	hdl := stat.NewHandler()
	for _, doc := range docs {
		hdl.Aggregate(doc)
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.HasPrefix = true

	// stats are printed without vocabulary size if none is stored
	v, _ := repoVocabulary(&p, repoPath, ui)

	stats := hdl.Get()
	r.Stats(stats, v)
	if dis {
		r.LengthDistribution(stats)
	}

	return nil
}
