package main

import (
	"fmt"

	"github.com/revelaction/jst/render"
)

func analyzeCommand(opts DataOptions, showVocab bool, ui UI) error {
	progress, stop := progressOption(opts)
	d, err := newDataset(opts, ui, progress)
	if err != nil {
		stop()
		return err
	}

	err = d.ReadData(opts.Corpus)
	stop()
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.Stats(d.Stats, d.Vocabulary)

	if showVocab {
		r.Vocabulary(d.Vocabulary)
	}

	fmt.Fprintf(ui.Out, "Wordmap written to %s\n", d.WordmapPath())
	return nil
}
