package main

import (
	"github.com/gosuri/uiprogress"

	"github.com/revelaction/jst/dataset"
	"github.com/revelaction/jst/tokenize"
)

// newDataset returns a dataset configured from opts, with the lexicon
// loaded if one is given. extra options are applied last.
func newDataset(opts DataOptions, ui UI, extra ...dataset.Option) (*dataset.Dataset, error) {
	var filters []tokenize.Filter
	if opts.Lower {
		filters = append(filters, tokenize.LowerFilter())
	}
	if opts.Stopwords != "" {
		filters = append(filters, tokenize.StopwordFilter(opts.Stopwords))
	}
	if opts.Stem {
		filters = append(filters, tokenize.StemFilter())
	}

	dsOpts := []dataset.Option{dataset.WithWarnings(ui.Err)}
	if len(filters) > 0 {
		dsOpts = append(dsOpts, dataset.WithFilters(filters...))
	}
	dsOpts = append(dsOpts, extra...)

	d := dataset.New(opts.ResultDir, dsOpts...)

	if opts.Lexicon != "" {
		if err := d.ReadSentiLexicon(opts.Lexicon); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// analyzeProgress returns a progress callback drawing a bar with the name
// of the current document, and the function stopping it.
func analyzeProgress() (func(current, total int, name string), func()) {
	uiprogress.Start()
	bar := uiprogress.AddBar(1) // Placeholder, updated in callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	cb := func(current, total int, name string) {
		if bar.Total <= 1 {
			bar.Total = total
			bar.Set(0)
		}
		currentName = name
		bar.Incr()
	}

	return cb, uiprogress.Stop
}

// progressOption returns the dataset progress option for opts, and the
// function stopping the bar.
func progressOption(opts DataOptions) (dataset.Option, func()) {
	if opts.NoProgress {
		return dataset.WithProgress(nil), func() {}
	}

	cb, stop := analyzeProgress()
	return dataset.WithProgress(cb), stop
}
