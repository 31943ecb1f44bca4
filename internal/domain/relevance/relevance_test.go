package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDocument_TitleChain(t *testing.T) {
	// Two-rune queries sidestep the token-overlap bonus, so these cases
	// observe the exclusive chain contributions alone.
	tests := []struct {
		name  string
		query string
		title string
		want  int
	}{
		{"exact", "ca", "Ca", 100},
		{"prefix", "ca", "Cake", 75},
		{"whole word", "ca", "my Ca", 50},
		{"substring", "ca", "mica", 25},
		{"no match", "ca", "video", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreDocument(tt.query, Document{Title: tt.title})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreDocument_AdditiveBonuses(t *testing.T) {
	tests := []struct {
		name  string
		query string
		doc   Document
		want  int
	}{
		{
			// exact 100 + token bonus ("cats" inside title token "cats") 5
			name:  "exact plus token bonus",
			query: "cats",
			doc:   Document{Title: "Cats"},
			want:  105,
		},
		{
			// prefix 75 + token bonus 5
			name:  "prefix plus token bonus",
			query: "cats",
			doc:   Document{Title: "Cats are great"},
			want:  80,
		},
		{
			// substring 25 + token bonus ("cat" inside "cats") 5
			name:  "substring plus token bonus",
			query: "cat",
			doc:   Document{Title: "My Cats Video"},
			want:  30,
		},
		{
			// description only: no title rule fires, description substring 10
			name:  "description only",
			query: "cats",
			doc:   Document{Title: "Gardening", Description: "all about cats"},
			want:  10,
		},
		{
			// no title-chain hit, every (query token, title token) pair
			// counts independently: 2 x 2 pairs x 5
			name:  "token pairs not deduplicated",
			query: "cat cat",
			doc:   Document{Title: "cats catalog"},
			want:  20,
		},
		{
			// query is trimmed and case-folded before matching
			name:  "query folding",
			query: "  CATS ",
			doc:   Document{Title: "cats"},
			want:  105,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreDocument(tt.query, tt.doc))
		})
	}
}

func TestScoreDocument_EmptyInputs(t *testing.T) {
	assert.Zero(t, ScoreDocument("", Document{Title: "Cats"}))
	assert.Zero(t, ScoreDocument("   ", Document{Title: "Cats"}))
	assert.Zero(t, ScoreDocument("cats", Document{}))
}

func TestScoreDocument_SpecialCharactersAreSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		// 75 prefix + 5 token ("c++" is three runes)
		assert.Equal(t, 80, ScoreDocument("c++", Document{Title: "C++ Tutorial"}))
		// 50 whole word ('+' is a boundary rune on both sides) + 5 token
		assert.Equal(t, 55, ScoreDocument("c++", Document{Title: "learn c++ now"}))
		assert.Zero(t, ScoreDocument("a.b", Document{Title: "unrelated"}))
		assert.Zero(t, ScoreDocument("(*)", Document{Title: "plain title"}))
	})
}

func TestScoreName(t *testing.T) {
	tests := []struct {
		query string
		name  string
		want  int
	}{
		{"alice", "Alice", 100},
		{"ali", "alice", 75},
		{"lic", "alice", 25},
		{"bob", "alice", 0},
		{"", "alice", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreName(tt.query, tt.name), "query %q name %q", tt.query, tt.name)
	}
}

func TestRankDocuments_OrderAndExclusion(t *testing.T) {
	docs := []Document{
		{Title: "Cooking Basics"},    // substring 25 + token 5 = 30
		{Title: "Basic Cooking Tips"}, // prefix 75 + token 5 = 80
		{Title: "Gardening"},          // no rule fires, excluded
	}

	matches := RankDocuments("basic", docs)
	require.Len(t, matches, 2)

	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, 80, matches[0].Score)
	assert.Equal(t, 0, matches[1].Index)
	assert.Equal(t, 30, matches[1].Score)

	// monotonic ranking
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRankDocuments_TiesKeepInputOrder(t *testing.T) {
	docs := []Document{
		{Title: "mica one"},   // substring 25
		{Title: "mica two"},   // substring 25
		{Title: "mica three"}, // substring 25
	}

	matches := RankDocuments("ca", docs)
	require.Len(t, matches, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{matches[0].Index, matches[1].Index, matches[2].Index})
}

func TestRankNames(t *testing.T) {
	names := []string{"carol", "alice", "ali", "malice"}

	matches := RankNames("ali", names)
	require.Len(t, matches, 3)

	assert.Equal(t, 2, matches[0].Index) // exact
	assert.Equal(t, 100, matches[0].Score)
	assert.Equal(t, 1, matches[1].Index) // prefix
	assert.Equal(t, 75, matches[1].Score)
	assert.Equal(t, 3, matches[2].Index) // substring
	assert.Equal(t, 25, matches[2].Score)
}

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"cooking basics", "basic", false}, // 's' continues the word
		{"the basic steps", "basic", true},
		{"basic", "basic", true},
		{"basics", "basic", false},
		{"semi-basic plan", "basic", true}, // '-' is a boundary
		{"under_basic", "basic", false},    // '_' counts as a word rune
		{"", "basic", false},
		{"basic", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsWholeWord(tt.haystack, tt.needle), "%q in %q", tt.needle, tt.haystack)
	}
}
