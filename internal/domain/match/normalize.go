// Package match scores insider transaction records against a donor roster
// using normalized name comparison and a weighted composite score.
package match

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TitleSet is a lowercase set of honorific and post-nominal tokens to remove
// during normalization (e.g. "mr", "dr", "jr", "phd").
type TitleSet map[string]struct{}

// LoadTitles reads a flat title list, one token per line. Lines are trimmed,
// lowercased, and stripped of trailing commas; blank lines are ignored.
func LoadTitles(r io.Reader) (TitleSet, error) {
	titles := make(TitleSet)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		t := strings.Trim(strings.ToLower(strings.TrimSpace(sc.Text())), ",")
		if t != "" {
			titles[t] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return titles, nil
}

var (
	punctRe = regexp.MustCompile(`[.,]`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a free-form person name for comparison: diacritics
// stripped, punctuation collapsed to spaces, lowercased, title tokens
// removed, and "Last, First" input reordered to "first last".
//
// The reorder check runs against the original input, and its result replaces
// the title-stripped form entirely, so titles survive on the comma path.
// Kept intentionally: downstream scoring depends on this exact precedence.
func Normalize(name string, titles TitleSet) string {
	if name == "" {
		return ""
	}

	s := strings.ReplaceAll(stripDiacritics(name), "’", "'")
	s = punctRe.ReplaceAllString(s, " ")
	s = strings.ToLower(strings.TrimSpace(spaceRe.ReplaceAllString(s, " ")))

	if len(titles) > 0 && s != "" {
		tokens := strings.Split(s, " ")
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, drop := titles[tok]; !drop {
				kept = append(kept, tok)
			}
		}
		s = strings.Join(kept, " ")
	}

	if strings.Contains(name, ",") {
		var parts []string
		for _, p := range strings.Split(name, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			s = strings.ToLower(parts[1] + " " + parts[0])
			s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
		}
	}
	return s
}

// SplitFirstLast returns the first and last whitespace-delimited tokens of a
// normalized name. A single-token name is both its own first and last name.
func SplitFirstLast(name string) (first, last string) {
	toks := strings.Fields(name)
	switch len(toks) {
	case 0:
		return "", ""
	case 1:
		return toks[0], toks[0]
	default:
		return toks[0], toks[len(toks)-1]
	}
}

// stripDiacritics removes combining marks after canonical decomposition, so
// "José" compares equal to "Jose".
func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
