package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/jst/dataset"
)

func exportCommand(opts DataOptions, to string, ui UI) error {
	if err := createTarget(to); err != nil {
		return err
	}

	var p Pool
	defer p.Close()

	vr, err := NewVocabularyRepository(&p, to, ui.Err)
	if err != nil {
		return err
	}

	dr, err := NewDocRepository(&p, to)
	if err != nil {
		return err
	}

	progress, stop := progressOption(opts)
	defer stop()

	d, err := newDataset(opts, ui, progress, dataset.WithRepository(vr))
	if err != nil {
		return err
	}

	if err := d.ReadData(opts.Corpus); err != nil {
		return err
	}

	// documents of an earlier export refer to the replaced vocabulary
	if err := dr.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", to, err)
	}

	var bar *uiprogress.Bar
	if !opts.NoProgress {
		bar = uiprogress.AddBar(len(d.Docs))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	count := 0
	for _, doc := range d.Docs {
		if err := dr.Write(doc); err != nil {
			return fmt.Errorf("failed to write doc %s (index %d): %w", doc.Id, doc.Index, err)
		}
		count++
		if bar != nil {
			bar.Incr()
		}
	}

	fmt.Fprintf(ui.Out, "Successfully exported %d docs and %d words from %s to %s\n", count, d.VocabSize, opts.Corpus, to)
	return nil
}
