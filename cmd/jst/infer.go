package main

import (
	"fmt"

	"github.com/revelaction/jst/render"
)

func inferCommand(opts DataOptions, iopts InferOptions, ui UI) error {
	progress, stop := progressOption(opts)
	d, err := newDataset(opts, ui, progress)
	if err != nil {
		stop()
		return err
	}

	err = d.ReadNewData(opts.Corpus)
	stop()
	if err != nil {
		return err
	}

	if iopts.JSON {
		return render.NewJSONRenderer(ui.Out).Render(d.NewDocs)
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.Stats(d.NewStats, d.NewVocabulary)
	fmt.Fprintf(ui.Out, "Training vocabulary size %d, unseen words %d\n", d.VocabSize, len(d.NewWords))

	if iopts.Unseen {
		for _, w := range d.NewWords {
			fmt.Fprintf(ui.Out, "✍  %s\n", w)
		}
	}

	return nil
}
