// Package relevance implements the heuristic scoring used by every
// incremental search surface: exact/prefix/whole-word/substring matching on
// titles plus secondary description and token-overlap bonuses. It is pure
// computation with no I/O; callers fetch candidates and feed them in.
package relevance

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	scoreExact      = 100
	scorePrefix     = 75
	scoreWholeWord  = 50
	scoreSubstring  = 25
	scoreDescMatch  = 10
	scoreTokenMatch = 5

	// Query tokens this short earn no overlap bonus.
	minOverlapTokenLen = 3
)

// Document is a scorable candidate. Missing fields score as empty strings.
type Document struct {
	Title       string
	Description string
}

// Match pairs a candidate's position in the input slice with its score.
// Results keep input order among equal scores, so callers can map Index
// back to their own item type without re-sorting.
type Match struct {
	Index int
	Score int
}

// ScoreDocument computes the relevance of doc against query.
//
// The title rules are mutually exclusive and checked strongest-first:
// exact (+100), prefix (+75), whole word (+50), substring (+25). On top of
// whichever fired, a description substring adds +10 and every (query token,
// title token) substring pair with a query token of at least three runes
// adds +5. A zero score means no rule fired and the candidate is not a match.
func ScoreDocument(query string, doc Document) int {
	q := fold(query)
	if q == "" {
		return 0
	}

	title := strings.ToLower(doc.Title)
	desc := strings.ToLower(doc.Description)

	score := titleChainScore(q, title)

	if desc != "" && strings.Contains(desc, q) {
		score += scoreDescMatch
	}

	score += tokenOverlapScore(q, title)

	return score
}

// ScoreName scores a bare name (usernames in the combined search). Only the
// exact/prefix/substring chain applies; there is no secondary field and no
// token bonus.
func ScoreName(query, name string) int {
	q := fold(query)
	if q == "" {
		return 0
	}

	n := strings.ToLower(name)
	switch {
	case n == q:
		return scoreExact
	case strings.HasPrefix(n, q):
		return scorePrefix
	case strings.Contains(n, q):
		return scoreSubstring
	}
	return 0
}

// RankDocuments scores every document, drops non-matches and returns the
// rest ordered by descending score. Ties keep the input order.
func RankDocuments(query string, docs []Document) []Match {
	matches := make([]Match, 0, len(docs))
	for i, doc := range docs {
		if s := ScoreDocument(query, doc); s > 0 {
			matches = append(matches, Match{Index: i, Score: s})
		}
	}
	sortMatches(matches)
	return matches
}

// RankNames is RankDocuments for bare names, using ScoreName.
func RankNames(query string, names []string) []Match {
	matches := make([]Match, 0, len(names))
	for i, name := range names {
		if s := ScoreName(query, name); s > 0 {
			matches = append(matches, Match{Index: i, Score: s})
		}
	}
	sortMatches(matches)
	return matches
}

func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func fold(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func titleChainScore(q, title string) int {
	switch {
	case title == q:
		return scoreExact
	case strings.HasPrefix(title, q):
		return scorePrefix
	case containsWholeWord(title, q):
		return scoreWholeWord
	case strings.Contains(title, q):
		return scoreSubstring
	}
	return 0
}

func tokenOverlapScore(q, title string) int {
	titleTokens := strings.Fields(title)
	if len(titleTokens) == 0 {
		return 0
	}

	score := 0
	for _, qt := range strings.Fields(q) {
		if utf8.RuneCountInString(qt) < minOverlapTokenLen {
			continue
		}
		for _, tt := range titleTokens {
			if strings.Contains(tt, qt) {
				score += scoreTokenMatch
			}
		}
	}
	return score
}

// containsWholeWord reports whether needle occurs in haystack bounded on
// both sides by a non-word rune or the string edge. The scan is a plain
// substring walk, so regex metacharacters in user input cannot break it.
func containsWholeWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; start <= len(haystack)-len(needle); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(haystack, i) && boundaryAfter(haystack, i+len(needle)) {
			return true
		}
		start = i + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
