// Package preprocessing turns raw review text into the token stream the model was fitted on.
//
// Normalize must stay identical to the cleaner used when a bundle's vocabulary and idf
// were fitted. Fingerprint captures that contract so a mismatch is caught at load time.
package preprocessing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Version identifies the ordered list of cleaning steps below.
const Version = "clean-v1"

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// nonSpace excludes the full Unicode whitespace set, not just RE2's ASCII \s,
// so a URL ends at a no-break space or line separator too.
const nonSpace = `[^\t\n\v\f\r\x1c-\x1f \x{85}\p{Z}]`

var (
	htmlTag = regexp.MustCompile(`<.*?>`)
	url     = regexp.MustCompile(`http` + nonSpace + `+|www` + nonSpace + `+|https` + nonSpace + `+`)
)

// Options selects the optional cleaning steps applied after the fixed pipeline.
type Options struct {
	// Stem reduces every surviving word to its Porter stem.
	Stem bool `json:"stem" yaml:"stem"`
}

// Normalize cleans raw with the default options.
func Normalize(raw any) string {
	return Options{}.Normalize(raw)
}

// Normalize never fails: anything that is not a string yields "".
func (o Options) Normalize(raw any) string {
	text, ok := raw.(string)
	if !ok {
		return ""
	}

	text = strings.ToLower(text)
	text = htmlTag.ReplaceAllString(text, "")
	text = url.ReplaceAllString(text, "")
	text = dropNonASCII(text)
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)

	words := strings.FieldsFunc(text, isSpace)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if IsStopword(w) {
			continue
		}
		if o.Stem {
			w = porterstemmer.StemString(w)
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Fingerprint is a digest of the cleaning contract for these options.
func (o Options) Fingerprint() string {
	words := make([]string, 0, len(stopwords))
	for w := range stopwords {
		words = append(words, w)
	}
	sort.Strings(words)

	var b strings.Builder
	b.WriteString(Version)
	b.WriteString("|")
	b.WriteString(strings.Join(words, ","))
	fmt.Fprintf(&b, "|stem=%t", o.Stem)
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

func dropNonASCII(s string) string {
	out, _, err := transform.String(asciiOnly, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return -1
			}
			return r
		}, s)
	}
	return out
}

// isSpace matches the ASCII whitespace set of the training-side splitter,
// which includes the 0x1c-0x1f separators.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return false
}
