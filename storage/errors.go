package storage

import "errors"

// ErrResourceOpen is wrapped by every failure to open a corpus, lexicon or
// wordmap source.
var ErrResourceOpen = errors.New("cannot open resource")
