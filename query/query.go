package query

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/jst/render"
	"github.com/revelaction/jst/vocab"
)

const (
	completionThreshold = 2

	maxSuggestions = 12

	// idPrefix is the Character in the prompt that prefixes a word id
	idPrefix = "#"
)

type Handler struct {
	Vocabulary *vocab.Vocabulary
	Renderer   *render.Renderer
	Out        io.Writer

	// sorted words, for completion
	sorted []string
}

func NewHandler(v *vocab.Vocabulary, r *render.Renderer) *Handler {
	sorted := v.Words()
	sort.Strings(sorted)

	return &Handler{
		Vocabulary: v,
		Renderer:   r,
		Out:        os.Stdout,
		sorted:     sorted,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintf(h.Out, "🔑 %d words. Type a word or #id, Ctrl+X: Toggle color, 🔧 quit\n", h.Vocabulary.Len())

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("jst query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasColor = !h.Renderer.HasColor
					fmt.Fprintf(h.Out, "Color set to %t\n", h.Renderer.HasColor)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)
		for _, line := range h.Lookup(in) {
			fmt.Fprintln(h.Out, line)
		}
	}
}

// Lookup resolves every field of in. A field prefixed with "#" is a word
// id, anything else a word.
func (h *Handler) Lookup(in string) []string {
	var lines []string
	for _, field := range strings.Fields(in) {
		lines = append(lines, h.lookup(field))
	}
	return lines
}

func (h *Handler) lookup(field string) string {
	if strings.HasPrefix(field, idPrefix) && len(field) > len(idPrefix) {
		id, err := strconv.Atoi(field[len(idPrefix):])
		if err != nil {
			return fmt.Sprintf("✍  %s: not a word id", field)
		}

		word, ok := h.Vocabulary.Word(id)
		if !ok {
			return fmt.Sprintf("✍  %s: no such id", field)
		}
		field = word
	}

	e, ok := h.Vocabulary.Lookup(field)
	if !ok {
		return fmt.Sprintf("✍  %s: not in vocabulary", field)
	}

	return fmt.Sprintf("📖 %6d %s %s", e.Id, field, h.polarity(e.Polarity))
}

func (h *Handler) polarity(label int) string {
	if label == vocab.Unknown {
		return "(no prior)"
	}

	s := fmt.Sprintf("(prior %d)", label)
	if h.Renderer == nil || !h.Renderer.HasColor {
		return s
	}
	return render.Green256 + s + render.Off
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.Suggest(in.GetWordBeforeCursor())
}

// Suggest returns the vocabulary words starting with prefix. Prefixes
// shorter than the completion threshold and word ids get no suggestions.
func (h *Handler) Suggest(prefix string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if len(prefix) < completionThreshold || strings.HasPrefix(prefix, idPrefix) {
		return s
	}

	i := sort.SearchStrings(h.sorted, prefix)
	for ; i < len(h.sorted) && strings.HasPrefix(h.sorted[i], prefix); i++ {
		e, _ := h.Vocabulary.Lookup(h.sorted[i])
		s = append(s, prompt.Suggest{Text: h.sorted[i], Description: "#" + strconv.Itoa(e.Id)})
		if len(s) == maxSuggestions {
			break
		}
	}

	return s
}
