package tfidf_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/tfidf/internal/tfidf"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		dropEmpty bool
		expected  []string
	}{
		{"Plain words", "Hello World", false, []string{"hello", "world"}},
		{"Punctuation stripped", "Hello, World! don't", false, []string{"hello", "world", "dont"}},
		{"Embedded punctuation", "a-b 3.14 snake_case", false, []string{"ab", "314", "snake_case"}},
		{"Lone punctuation kept as empty token", "go -- fast", false, []string{"go", "", "fast"}},
		{"Lone punctuation dropped", "go -- fast", true, []string{"go", "fast"}},
		{"Unicode letters", "Été ÜBER Ñandú", false, []string{"été", "über", "ñandú"}},
		{"Whitespace runs", "  a\t\tb\n\nc  ", false, []string{"a", "b", "c"}},
		{"Information separator splits", "a\x1fb", false, []string{"a", "b"}},
		{"Empty text", "", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := tfidf.NewTokenizer(tt.dropEmpty)
			assert.Equal(t, tt.expected, tokenizer.Tokenize(tt.text))
		})
	}
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("A a, B!"), 0644))

	doc, err := tfidf.NewTokenizer(false).TokenizeFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.ID)
	assert.Equal(t, []string{"a", "a", "b"}, doc.Tokens)
	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, 2, doc.Count("a"))
	assert.True(t, doc.Contains("b"))
	assert.False(t, doc.Contains("c"))
	assert.ElementsMatch(t, []string{"a", "b"}, doc.Vocabulary())
}

func TestTokenizeFile_Missing(t *testing.T) {
	_, err := tfidf.NewTokenizer(false).TokenizeFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTF(t *testing.T) {
	doc := tfidf.NewDocument("doc", []string{"a", "a", "b"})

	tf, err := tfidf.TF("a", doc)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, tf, 1e-12)

	tf, err = tfidf.TF("z", doc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tf)

	_, err = tfidf.TF("a", tfidf.NewDocument("empty", nil))
	assert.ErrorIs(t, err, tfidf.ErrEmptyDocument)
}

func TestDFAndIDF(t *testing.T) {
	docs := scenarioCorpus()

	assert.Equal(t, 1, tfidf.DF("a", docs))
	assert.Equal(t, 2, tfidf.DF("b", docs))
	assert.Equal(t, 0, tfidf.DF("z", docs))

	idf, err := tfidf.IDF("a", docs)
	require.NoError(t, err)
	assert.InDelta(t, math.Log10(2), idf, 1e-12)

	idf, err = tfidf.IDF("b", docs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, idf)

	_, err = tfidf.IDF("z", docs)
	assert.ErrorIs(t, err, tfidf.ErrZeroDocumentFrequency)
}

func TestTFIDF(t *testing.T) {
	docs := scenarioCorpus()

	score, err := tfidf.TFIDF("a", docs[0], docs)
	require.NoError(t, err)
	assert.InDelta(t, 0.2007, score, 1e-4)

	score, err = tfidf.TFIDF("b", docs[0], docs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestRank_Scenario(t *testing.T) {
	docs := scenarioCorpus()

	rows, err := tfidf.Rank(docs[0], docs, tfidf.RankOptions{MinDF: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "a", rows[0].Word)
	assert.InDelta(t, 2.0/3.0, rows[0].TF, 1e-12)
	assert.InDelta(t, 2.0/3.0*math.Log10(2), rows[0].TFIDF, 1e-12)

	assert.Equal(t, "b", rows[1].Word)
	assert.InDelta(t, 1.0/3.0, rows[1].TF, 1e-12)
	assert.Equal(t, 0.0, rows[1].TFIDF)
}

func TestRank_MinDFFiltersRareWords(t *testing.T) {
	doc := tfidf.NewDocument("doc", []string{"a", "a"})
	docs := []*tfidf.Document{doc, tfidf.NewDocument("other", []string{"b", "c", "c"})}

	rows, err := tfidf.Rank(doc, docs, tfidf.RankOptions{MinDF: 2, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRank_MinDFAboveCorpusSize(t *testing.T) {
	docs := scenarioCorpus()

	rows, err := tfidf.Rank(docs[0], docs, tfidf.RankOptions{MinDF: len(docs) + 1, All: true})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRank_TieBreaks(t *testing.T) {
	// c and d share tf and tf_idf, so they are ordered by word.
	// b has the same tf_idf as e (zero) but a higher tf.
	doc := tfidf.NewDocument("doc", []string{"d", "c", "b", "b", "e"})
	docs := []*tfidf.Document{
		doc,
		tfidf.NewDocument("other", []string{"b", "e"}),
	}

	rows, err := tfidf.Rank(doc, docs, tfidf.RankOptions{MinDF: 1, All: true})
	require.NoError(t, err)

	words := make([]string, len(rows))
	for i, row := range rows {
		words[i] = row.Word
	}
	assert.Equal(t, []string{"c", "d", "b", "e"}, words)
}

func TestRank_Limit(t *testing.T) {
	doc := tfidf.NewDocument("doc", []string{"a", "b", "c", "d"})
	docs := []*tfidf.Document{doc}

	tests := []struct {
		name     string
		opts     tfidf.RankOptions
		expected int
	}{
		{"Limit truncates", tfidf.RankOptions{MinDF: 1, Limit: 2}, 2},
		{"Limit above row count", tfidf.RankOptions{MinDF: 1, Limit: 10}, 4},
		{"Zero limit", tfidf.RankOptions{MinDF: 1, Limit: 0}, 0},
		{"All ignores limit", tfidf.RankOptions{MinDF: 1, Limit: 1, All: true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := tfidf.Rank(doc, docs, tt.opts)
			require.NoError(t, err)
			assert.Len(t, rows, tt.expected)
		})
	}
}

func TestRank_Errors(t *testing.T) {
	doc := tfidf.NewDocument("doc", []string{"a"})

	_, err := tfidf.Rank(doc, []*tfidf.Document{doc}, tfidf.RankOptions{Limit: -1})
	assert.ErrorIs(t, err, tfidf.ErrNegativeLimit)

	empty := tfidf.NewDocument("empty", nil)
	_, err = tfidf.Rank(empty, []*tfidf.Document{empty}, tfidf.RankOptions{Limit: 10})
	assert.ErrorIs(t, err, tfidf.ErrEmptyDocument)
}

func TestRank_Properties(t *testing.T) {
	tokenizer := tfidf.NewTokenizer(false)
	doc := tfidf.NewDocument("doc", tokenizer.Tokenize("the quick brown fox jumps over the lazy dog, the end."))
	docs := []*tfidf.Document{
		doc,
		tfidf.NewDocument("1", tokenizer.Tokenize("the dog sleeps")),
		tfidf.NewDocument("2", tokenizer.Tokenize("a fox and the hound")),
		tfidf.NewDocument("3", tokenizer.Tokenize("the end of the road")),
	}

	rows, err := tfidf.Rank(doc, docs, tfidf.RankOptions{MinDF: 1, All: true})
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for i, row := range rows {
		assert.Greater(t, row.TF, 0.0)
		assert.LessOrEqual(t, row.TF, 1.0)

		df := tfidf.DF(row.Word, docs)
		assert.GreaterOrEqual(t, df, 1)
		assert.LessOrEqual(t, df, len(docs))
		assert.Equal(t, df == len(docs), row.TFIDF == 0, row.Word)

		if i == 0 {
			continue
		}
		prev := rows[i-1]
		ordered := prev.TFIDF > row.TFIDF ||
			(prev.TFIDF == row.TFIDF && prev.TF > row.TF) ||
			(prev.TFIDF == row.TFIDF && prev.TF == row.TF && prev.Word < row.Word)
		assert.True(t, ordered, "%q must rank before %q", prev.Word, row.Word)
	}

	again, err := tfidf.Rank(doc, docs, tfidf.RankOptions{MinDF: 1, All: true})
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

func scenarioCorpus() []*tfidf.Document {
	return []*tfidf.Document{
		tfidf.NewDocument("doc", []string{"a", "a", "b"}),
		tfidf.NewDocument("other", []string{"b", "c", "c"}),
	}
}
