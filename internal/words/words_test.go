package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/codec"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		solution string
		guess    string
		expected string
	}{
		{"abcde", "abcde", "CCCCC"},
		{"abcde", "xxxxx", "WWWWW"},
		{"abcde", "edcba", "MMCMM"},
		{"could", "tares", "WWWWW"},
		{"bully", "could", "WWMCW"},
		{"abbey", "babes", "MMCCW"},
		{"hello", "llama", "MMWWW"},
		// Both 'l' are consumed by hits, so the leading 'l' is a miss.
		{"hello", "lolly", "WMCCW"},
		{"crane", "eerie", "WWMWC"},
	}
	for _, tc := range testCases {
		got := Score(tc.solution, tc.guess)
		assert.Equal(t, tc.expected, got.String(), "solution=%s guess=%s", tc.solution, tc.guess)
	}
}

func TestScoreAsymmetric(t *testing.T) {
	assert.NotEqual(t, Score("bully", "could"), Score("could", "bully"))
	assert.Equal(t, codec.AllCorrect, Score("tares", "tares"))
}

func TestParse(t *testing.T) {
	in := "# comment\nCould\n\nbilge\ncould\nbad\nab1de\n  tares  \n"
	list, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"could", "bilge", "tares"}, list.Words)
	assert.Equal(t, 2, list.Skipped)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing\n\n"))
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("abide\namiss\n"), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"abide", "amiss"}, list.Words)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadEmbedded(t *testing.T) {
	list, err := Load("")
	require.NoError(t, err)
	assert.Zero(t, list.Skipped)
	assert.Contains(t, list.Words, "could")
	assert.Contains(t, list.Words, "tares")
	for _, w := range list.Words {
		assert.True(t, IsWord(w), w)
	}
}
