package match

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Composite weights; the attainable ceiling is 90, not 100.
const (
	lastNameWeight  = 0.55
	firstNameWeight = 0.25
	aliasBonus      = 10
)

// Breakdown itemizes the components behind an overall match score.
type Breakdown struct {
	LastExact  int `json:"last_exact"`
	FirstRatio int `json:"first_ratio"`
	AliasBonus int `json:"alias_bonus"`
}

// scorePair scores one (insider, donor) pair of normalized names.
func scorePair(insiderNorm, donorNorm string, donorAliasFirsts map[string]struct{}) (int, Breakdown) {
	insFirst, insLast := SplitFirstLast(insiderNorm)
	dnFirst, dnLast := SplitFirstLast(donorNorm)

	var b Breakdown
	if insLast == dnLast {
		b.LastExact = 100
	}
	b.FirstRatio = firstRatio(insFirst, dnFirst)
	if _, ok := donorAliasFirsts[insFirst]; ok {
		b.AliasBonus = aliasBonus
	}

	overall := int(lastNameWeight*float64(b.LastExact)+firstNameWeight*float64(b.FirstRatio)) + b.AliasBonus
	return overall, b
}

// firstRatio is a 0-100 first-name similarity tolerant of token reordering
// and partial overlap; the plain and token-sorted forms both score and the
// better result wins.
func firstRatio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}

	score := similarity(s1, s2)
	t1, t2 := sortTokens(s1), sortTokens(s2)
	if t1 != s1 || t2 != s2 {
		if ts := similarity(t1, t2); ts > score {
			score = ts
		}
	}
	return score
}

// similarity combines containment, Levenshtein ratio, and subsequence rank
// into a single 0-100 score.
func similarity(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}

	if strings.Contains(s1, s2) {
		return 75 + 25*len(s2)/len(s1)
	}
	if strings.Contains(s2, s1) {
		return 75 + 25*len(s1)/len(s2)
	}

	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	levScore := 100 * (maxLen - fuzzy.LevenshteinDistance(s1, s2)) / maxLen
	if levScore < 0 {
		levScore = 0
	}

	// RankMatch is -1 unless s2 is a subsequence of s1
	rankScore := 0
	if rank := fuzzy.RankMatch(s2, s1); rank >= 0 {
		rankScore = 60 - rank*40/len(s1)
		if rankScore < 0 {
			rankScore = 0
		}
	}

	if rankScore > levScore {
		return rankScore
	}
	return levScore
}

func sortTokens(s string) string {
	toks := strings.Fields(s)
	if len(toks) < 2 {
		return s
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
