package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/revelaction/jst/document"
	"github.com/revelaction/jst/stat"
	"github.com/revelaction/jst/vocab"
)

const (
	Defaultformat = "text"
)

var (
	Red       = "\033[1;31m"
	Purple    = "\033[1;34m"
	Magenta   = "\033[1;35m"
	Teal      = "\033[1;36m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

// labelColors is indexed by prior label. Labels beyond the palette wrap.
var labelColors = []string{Red, Green256, Yellow256, Purple, Teal, Magenta}

func SupportedFormats() []string {
	return []string{"text", "labels", "ids"}
}

type Renderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how the words of a document are written
	//
	// text: the words, colored by prior label
	// labels: word/label pairs
	// ids: id/label pairs, as stored
	Format string

	// Words resolves word ids. Without it documents are rendered as ids.
	Words func(id int) (string, bool)
}

func NewRenderer() *Renderer {
	return &Renderer{Out: os.Stdout, Format: Defaultformat}
}

// WithVocabulary resolves word ids through v.
func (r *Renderer) WithVocabulary(v *vocab.Vocabulary) *Renderer {
	r.Words = v.Word
	return r
}

// Doc writes doc on one line.
func (r *Renderer) Doc(doc document.Doc) {
	fmt.Fprintf(r.Out, "%s%s\n", r.prefix(doc), r.DocString(doc))
}

// DocString returns the words of doc in the current Format.
func (r *Renderer) DocString(doc document.Doc) string {
	format := r.Format
	if r.Words == nil {
		format = "ids"
	}

	parts := make([]string, 0, doc.Len())
	for k, id := range doc.Words {
		label := doc.PriorLabels[k]
		switch format {
		case "ids":
			parts = append(parts, fmt.Sprintf("%d/%s", id, labelString(label)))
		case "labels":
			parts = append(parts, r.word(id)+"/"+r.colorLabel(labelString(label), label))
		default:
			parts = append(parts, r.colorLabel(r.word(id), label))
		}
	}

	return strings.Join(parts, " ")
}

func (r *Renderer) word(id int) string {
	if w, ok := r.Words(id); ok {
		return w
	}
	return "#" + strconv.Itoa(id)
}

func (r *Renderer) colorLabel(s string, label int) string {
	if !r.HasColor || label == vocab.Unknown {
		return s
	}

	return labelColors[label%len(labelColors)] + s + Off
}

func labelString(label int) string {
	if label == vocab.Unknown {
		return "-"
	}
	return strconv.Itoa(label)
}

func (r *Renderer) prefix(doc document.Doc) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%s %5d:%3d] ✍  ", r.title(doc.Id), doc.Index, doc.Len())
}

func (r *Renderer) title(id string) string {
	l := len(id)
	var part string
	if l <= 20 {
		part = fmt.Sprintf("%-20s", id)
	} else {
		part = id[:20]
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// Vocabulary writes one "id word polarity" line per word in id order.
func (r *Renderer) Vocabulary(v *vocab.Vocabulary) {
	_ = v.Each(func(word string, e vocab.Entry) error {
		fmt.Fprintf(r.Out, "%6d %-30s %s\n", e.Id, word, r.colorLabel(labelString(e.Polarity), e.Polarity))
		return nil
	})
}

// Stats writes the corpus statistics and, if v is not nil, the vocabulary
// size.
func (r *Renderer) Stats(s stat.Stats, v *vocab.Vocabulary) {
	fmt.Fprintf(r.Out, "Num docs %d, corpus size %d, average doc length %d\n", s.NumDocs, s.CorpusSize, s.AveDocLength)
	if v != nil {
		fmt.Fprintf(r.Out, "Vocabulary size %d\n", v.Len())
	}
	fmt.Fprintf(r.Out, "Doc length mean %.2f, std dev %.2f\n", s.DocLengthMean, s.DocLengthStdDev)
	fmt.Fprintf(r.Out, "Words with prior label %d (%.1f%%)\n", s.NumLabeled, 100*s.LabeledRatio())
}

// LengthDistribution writes the number of documents per document length,
// shortest first.
func (r *Renderer) LengthDistribution(s stat.Stats) {
	lengths := make([]int, 0, len(s.DocLengthDis))
	for l := range s.DocLengthDis {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	var prefix string
	for _, l := range lengths {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", l)
		}
		fmt.Fprintf(r.Out, "%s%d\n", prefix, s.DocLengthDis[l])
	}
}
