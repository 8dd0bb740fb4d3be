package stat

import (
	"github.com/revelaction/jst/document"

	gstat "gonum.org/v1/gonum/stat"
)

type Handler struct {
	stats   Stats
	lengths []float64
}

type Stats struct {
	NumDocs    int
	CorpusSize int

	// AveDocLength is CorpusSize / NumDocs, truncated.
	AveDocLength int

	DocLengthMean   float64
	DocLengthStdDev float64
	DocLengthDis    map[int]int

	// NumLabeled counts the words with a known prior label.
	NumLabeled int
}

// LabeledRatio is the share of corpus words with a known prior label.
func (s Stats) LabeledRatio() float64 {
	if s.CorpusSize == 0 {
		return 0
	}
	return float64(s.NumLabeled) / float64(s.CorpusSize)
}

func (h *Handler) Get() Stats {
	s := h.stats
	if s.NumDocs == 0 {
		return s
	}

	s.AveDocLength = s.CorpusSize / s.NumDocs
	if len(h.lengths) > 1 {
		s.DocLengthMean, s.DocLengthStdDev = gstat.MeanStdDev(h.lengths, nil)
	} else {
		s.DocLengthMean = gstat.Mean(h.lengths, nil)
	}

	return s
}

func NewHandler() *Handler {
	stats := Stats{DocLengthDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(doc document.Doc) {
	h.stats.NumDocs++
	h.stats.CorpusSize += doc.Len()
	h.stats.NumLabeled += doc.NumLabeled()
	h.stats.DocLengthDis[doc.Len()]++
	h.lengths = append(h.lengths, float64(doc.Len()))
}
