package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
	"github.com/kljensen/snowball"
)

// DefaultMax bounds how many keywords Extract returns when the caller passes
// a non-positive maximum.
const DefaultMax = 50

// DefaultLanguage is the language assumed for resume text.
const DefaultLanguage = "ru"

// Extract returns up to max single-token keywords from text, best first.
// Tokens are case-folded, stripped of stopwords for the given language
// ("ru" or "en") and grouped by stem; groups are ranked by occurrence count,
// with earlier first appearance breaking ties, and each group is reported by
// its first surface form. Empty text yields an empty list.
func Extract(text, lang string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	tokens := dropStopwords(tokenize(strings.ToLower(text)), lang)
	if len(tokens) == 0 {
		return []string{}
	}

	type group struct {
		surface string
		count   int
		first   int
	}
	groups := make(map[string]*group)
	var order []string

	for i, token := range tokens {
		stem := stemToken(token, lang)
		g, ok := groups[stem]
		if !ok {
			g = &group{surface: token, first: i}
			groups[stem] = g
			order = append(order, stem)
		}
		g.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := groups[order[i]], groups[order[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if len(order) > max {
		order = order[:max]
	}
	out := make([]string, 0, len(order))
	for _, stem := range order {
		out = append(out, groups[stem].surface)
	}
	return out
}

// tokenize splits on everything that is not a letter, digit, '+' or '#', so
// terms like c++ and c# survive, and drops single-rune leftovers.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '+' && r != '#'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// dropStopwords filters tokens through the language stopword list one at a
// time, so symbol terms never get mangled by the list's word segmentation.
func dropStopwords(tokens []string, lang string) []string {
	out := tokens[:0]
	for _, token := range tokens {
		if strings.TrimSpace(stopwords.CleanString(token, lang, false)) == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

func stemToken(token, lang string) string {
	stemmed, err := snowball.Stem(token, stemmerLanguage(lang), true)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}

func stemmerLanguage(lang string) string {
	switch lang {
	case "en":
		return "english"
	default:
		return "russian"
	}
}
