package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "jst: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "jst",
		Usage:                "build sentiment-labeled vocabularies and documents from a corpus",
		HideVersion:          true,
		EnableBashCompletion: true,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		// errors are printed once, by main
		ExitErrHandler: func(c *cli.Context, err error) {},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze a training corpus and write its wordmap",
				ArgsUsage: " ",
				Flags:     append(dataFlags(), &cli.BoolFlag{Name: "vocab", Usage: "print the vocabulary"}),
				Action: func(c *cli.Context) error {
					opts, err := dataOptions(c)
					if err != nil {
						return err
					}
					return analyzeCommand(opts, c.Bool("vocab"), ui)
				},
			},
			{
				Name:      "infer",
				Usage:     "Map a new corpus through the stored training wordmap",
				ArgsUsage: " ",
				Flags: append(dataFlags(),
					&cli.BoolFlag{Name: "unseen", Usage: "list the words not in the training vocabulary"},
					&cli.BoolFlag{Name: "json", Usage: "print the new documents as JSON"},
				),
				Action: func(c *cli.Context) error {
					opts, err := dataOptions(c)
					if err != nil {
						return err
					}
					return inferCommand(opts, InferOptions{Unseen: c.Bool("unseen"), JSON: c.Bool("json")}, ui)
				},
			},
			{
				Name:      "export",
				Usage:     "Analyze a corpus and store its documents and vocabulary",
				ArgsUsage: " ",
				Flags: append(dataFlags(), &cli.StringFlag{
					Name:     "to",
					Usage:    "target directory or SQLite file (.db, .sqlite)",
					Required: true,
				}),
				Action: func(c *cli.Context) error {
					opts, err := dataOptions(c)
					if err != nil {
						return err
					}
					return exportCommand(opts, c.String("to"), ui)
				},
			},
			{
				Name:      "doc",
				Usage:     "List the stored documents or show one of them",
				ArgsUsage: "[file_path|index]",
				Flags: []cli.Flag{
					repoFlag(),
					&cli.BoolFlag{Name: "json", Usage: "print documents as JSON"},
					&cli.BoolFlag{Name: "color", Usage: "color words by prior label"},
					&cli.BoolFlag{Name: "prefix", Usage: "prefix documents with their name and index"},
					formatFlag(),
				},
				Action: func(c *cli.Context) error {
					if c.NArg() > 1 {
						return fmt.Errorf("doc command accepts at most one argument")
					}
					opts := DocOptions{
						Repo:     c.String("repo"),
						JSON:     c.Bool("json"),
						HasColor: c.Bool("color"),
						Prefix:   c.Bool("prefix"),
						Format:   c.String("format"),
					}
					return docCommand(opts, c.Args().First(), ui)
				},
			},
			{
				Name:      "stat",
				Usage:     "Print statistics of the stored documents",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					repoFlag(),
					&cli.BoolFlag{Name: "dis", Usage: "print the document length distribution"},
				},
				Action: func(c *cli.Context) error {
					return statCommand(c.String("repo"), c.Bool("dis"), ui)
				},
			},
			{
				Name:      "query",
				Usage:     "Interactive word and id lookup",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "wordmap",
						Aliases: []string{"w"},
						Usage:   "wordmap file, result directory or SQLite file",
						EnvVars: []string{"JST_RESULT_DIR"},
						Value:   ".",
					},
					lexiconFlag(),
					&cli.BoolFlag{Name: "color", Usage: "color prior labels"},
				},
				Action: func(c *cli.Context) error {
					return queryCommand(c.String("wordmap"), c.String("lexicon"), c.Bool("color"), ui)
				},
			},
			{
				Name:  "bash",
				Usage: "Print the bash completion script",
				Action: func(c *cli.Context) error {
					return bashCommand(ui)
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}
