package levenshtein

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	tokenScale        = 0.95
	partialScale      = 0.9
	longPartialScale  = 0.6
	partialLenRatio   = 1.5
	longPartialLength = 8
)

// Score returns a similarity score between 0 and 100 for two strings,
// ignoring case, punctuation and word order. Equal strings score 100.
//
// The score is the best of a plain ratio, a token-sort ratio and a
// token-set ratio. When one string is much longer than the other, partial
// ratios (best matching window of the longer string) are used instead of
// the whole-string token ratios, at a discount.
func Score(a, b string) int {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	base := ratio(a, b)
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	if lenRatio < partialLenRatio {
		return round(max(
			base,
			ratio(sortTokens(a), sortTokens(b))*tokenScale,
			tokenSetRatio(a, b, ratio)*tokenScale,
		))
	}

	scale := partialScale
	if lenRatio > longPartialLength {
		scale = longPartialScale
	}
	return round(max(
		base,
		partialRatio(a, b)*scale,
		partialRatio(sortTokens(a), sortTokens(b))*tokenScale*scale,
		tokenSetRatio(a, b, partialRatio)*tokenScale*scale,
	))
}

// ratio scores two strings by edit distance relative to their combined length.
func ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * float64(total-d) / float64(total)
}

// partialRatio scores the shorter string against every same-length window
// of the longer one and keeps the best.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	var best float64
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
		}
		if best == 100 {
			break
		}
	}
	return best
}

// tokenSetRatio compares the shared words of a and b against each side's
// shared words plus its remaining words.
func tokenSetRatio(a, b string, score func(string, string) float64) float64 {
	setA, setB := tokenSet(a), tokenSet(b)

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	return max(score(base, withA), score(base, withB), score(withA, withB))
}

// normalize lowercases s, replaces punctuation with spaces and collapses
// whitespace.
func normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func round(f float64) int {
	return int(math.Round(f))
}
