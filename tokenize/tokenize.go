package tokenize

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/language"
)

// Separators are the field separators of corpus, lexicon and wordmap lines.
const Separators = " \t\r\n"

// Tokenize splits line on any rune contained in separators. Runs of
// separators and leading or trailing separators never produce empty tokens.
func Tokenize(line, separators string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
}

// Fields splits line on the default Separators.
func Fields(line string) []string {
	return Tokenize(line, Separators)
}

// Filter rewrites a content token. A false return drops the token.
type Filter func(token string) (string, bool)

// Apply runs every token through filters in order. With no filters the
// input slice is returned as is.
func Apply(tokens []string, filters ...Filter) []string {
	if len(filters) == 0 {
		return tokens
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		keep := true
		for _, f := range filters {
			if tok, keep = f(tok); !keep {
				break
			}
		}

		if keep && tok != "" {
			out = append(out, tok)
		}
	}

	return out
}

// LowerFilter lowercases tokens.
func LowerFilter() Filter {
	return func(token string) (string, bool) {
		return strings.ToLower(token), true
	}
}

// ErrStopwordLanguage is returned for a language without a stop word list.
var ErrStopwordLanguage = errors.New("unsupported stop word language")

// stopwordLanguages are the base languages with a stop word list.
var stopwordLanguages = []string{
	"ar", "bg", "cs", "da", "de", "el", "en", "es", "fa", "fi", "fr", "hu", "id", "it",
	"ja", "km", "lv", "nl", "no", "pl", "pt", "ro", "ru", "sk", "sv", "th", "tr",
}

// StopwordLanguage returns the base language of the BCP 47 tag lang (f.ex.
// "en" for "en-GB") if it has a stop word list.
func StopwordLanguage(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStopwordLanguage, lang)
	}

	base, _ := tag.Base()
	code := base.String()
	if !slices.Contains(stopwordLanguages, code) {
		return "", fmt.Errorf("%w: %q", ErrStopwordLanguage, lang)
	}

	return code, nil
}

// StopwordFilter drops the stop words of the language lang (ISO 639-1 code,
// f.ex. "en"). Callers validate lang with StopwordLanguage; an unknown
// language gets the English list.
//
// Tokens without any letter, like "123" or "--", are dropped too.
func StopwordFilter(lang string) Filter {
	return func(token string) (string, bool) {
		cleaned := stopwords.CleanString(token, lang, false)
		if strings.TrimSpace(cleaned) == "" {
			return "", false
		}
		return token, true
	}
}

// StemFilter replaces tokens by their Snowball English stem.
func StemFilter() Filter {
	return func(token string) (string, bool) {
		return english.Stem(token, false), true
	}
}
