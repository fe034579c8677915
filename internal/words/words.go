// internal/words/words.go
//
// Word list loading for building score tables.
//
// Responsibilities:
//   - Read one-word-per-line lists from disk or from the embedded default.
//   - Normalize to lowercase, trim, and keep only 5-letter a–z words.
//   - Drop duplicates while keeping first-seen order.
//
// Load behavior:
//   1. If path is set, read that file.
//   2. Otherwise fall back to the embedded list in assets/words.txt.
//
// Lines that are empty or start with "#" are skipped silently; anything else
// that is not a valid word is skipped too, but counted so callers can log it.

package words

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
)

// ErrEmptyList is returned when a list yields no valid words.
var ErrEmptyList = errors.New("words: list is empty")

// List is a parsed word list.
type List struct {
	Words   []string // valid words, first-seen order, no duplicates
	Skipped int      // non-comment lines that were not valid words
}

// Load reads path, or the embedded default list when path is empty.
func Load(path string) (List, error) {
	if path == "" {
		return Parse(strings.NewReader(assets.WordList))
	}
	return ReadWordFile(path)
}

// ReadWordFile loads one word per line from a file.
func ReadWordFile(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one word per line from r.
func Parse(r io.Reader) (List, error) {
	var out List
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := strings.ToLower(line)
		if !IsWord(w) {
			out.Skipped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out.Words = append(out.Words, w)
	}
	if err := sc.Err(); err != nil {
		return List{}, err
	}
	if len(out.Words) == 0 {
		return out, ErrEmptyList
	}
	return out, nil
}

// IsWord reports whether w is exactly 5 lowercase ASCII letters.
func IsWord(w string) bool {
	if len(w) != codec.WordLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
