package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/jst/render"
	"github.com/revelaction/jst/tokenize"
)

// DataOptions are the corpus options shared by the analyzing commands.
type DataOptions struct {
	Corpus     string
	Lexicon    string
	ResultDir  string
	Stopwords  string
	Stem       bool
	Lower      bool
	NoProgress bool
}

type InferOptions struct {
	Unseen bool
	JSON   bool
}

type DocOptions struct {
	Repo     string
	JSON     bool
	HasColor bool
	Prefix   bool
	Format   string
}

func lexiconFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "lexicon",
		Aliases: []string{"l"},
		Usage:   "sentiment lexicon file",
		EnvVars: []string{"JST_LEXICON"},
	}
}

func repoFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "repo",
		Usage:    "exported directory or SQLite file",
		EnvVars:  []string{"JST_REPO"},
		Required: true,
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: fmt.Sprintf("document format, one of %v", render.SupportedFormats()),
		Value: render.Defaultformat,
		Action: func(c *cli.Context, v string) error {
			for _, f := range render.SupportedFormats() {
				if f == v {
					return nil
				}
			}
			return fmt.Errorf("allowed formats are %v", render.SupportedFormats())
		},
	}
}

func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "corpus file, one \"docId word word ...\" document per line",
		},
		lexiconFlag(),
		&cli.StringFlag{
			Name:    "result-dir",
			Aliases: []string{"r"},
			Usage:   "directory of the wordmap",
			EnvVars: []string{"JST_RESULT_DIR"},
			Value:   ".",
		},
		&cli.StringFlag{Name: "stopwords", Usage: "drop the stop words of this language (f.ex. en)"},
		&cli.BoolFlag{Name: "stem", Usage: "replace words by their English stem"},
		&cli.BoolFlag{Name: "lower", Usage: "lowercase words"},
		&cli.BoolFlag{Name: "no-progress", Usage: "do not show a progress bar"},
	}
}

func dataOptions(c *cli.Context) (DataOptions, error) {
	opts := DataOptions{
		Corpus:     c.String("data"),
		Lexicon:    c.String("lexicon"),
		ResultDir:  c.String("result-dir"),
		Stopwords:  c.String("stopwords"),
		Stem:       c.Bool("stem"),
		Lower:      c.Bool("lower"),
		NoProgress: c.Bool("no-progress"),
	}

	if opts.Corpus == "" {
		return opts, errors.New("corpus must be specified via -d")
	}

	if opts.Stopwords != "" {
		lang, err := tokenize.StopwordLanguage(opts.Stopwords)
		if err != nil {
			return opts, err
		}
		opts.Stopwords = lang
	}

	return opts, nil
}
