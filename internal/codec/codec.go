// internal/codec/codec.go
//
// Integer encodings for words and outcomes.
//
//   - WordID:    5 lowercase letters packed base-26, first letter most significant.
//   - OutcomeID: 5 per-letter judgments packed base-3, first position most significant.
//
// Outcome letters:
//   W = no match (0), M = misplaced (1), C = correct (2)
//
// All functions are pure. IDToWord and IDToOutcome never fail; validity of a
// word is a property of the loaded vocabulary, not of the codec.

package codec

import (
	"errors"
	"fmt"
)

const (
	// WordLen is the number of letters in every word and outcome.
	WordLen = 5

	// NumOutcomes is 3^5, the number of distinct outcome patterns.
	NumOutcomes = 243

	// MaxWordID is 26^5; valid word ids are below it.
	MaxWordID = 26 * 26 * 26 * 26 * 26
)

// Per-letter judgments.
const (
	NoMatch   = 0
	Misplaced = 1
	Correct   = 2
)

// ErrInvalidInput is returned for malformed words or outcome strings.
var ErrInvalidInput = errors.New("codec: invalid input")

// WordID identifies a 5-letter word.
type WordID uint32

// OutcomeID identifies a 5-position outcome pattern in [0, NumOutcomes).
type OutcomeID uint8

// AllCorrect is the outcome of guessing the solution itself.
const AllCorrect OutcomeID = NumOutcomes - 1

// WordToID packs a lowercase 5-letter word.
func WordToID(word string) (WordID, error) {
	if len(word) != WordLen {
		return 0, fmt.Errorf("%w: word %q must be %d letters", ErrInvalidInput, word, WordLen)
	}
	var id WordID
	for i := 0; i < WordLen; i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("%w: word %q has non-lowercase letter at %d", ErrInvalidInput, word, i)
		}
		id = id*26 + WordID(c-'a')
	}
	return id, nil
}

// MustWordToID is WordToID for literals known to be valid.
func MustWordToID(word string) WordID {
	id, err := WordToID(word)
	if err != nil {
		panic(err)
	}
	return id
}

// IDToWord unpacks id into 5 letters. Digits above the fifth are dropped, so
// only ids below MaxWordID round-trip through WordToID.
func IDToWord(id WordID) string {
	var buf [WordLen]byte
	for i := WordLen - 1; i >= 0; i-- {
		buf[i] = 'a' + byte(id%26)
		id /= 26
	}
	return string(buf[:])
}

// String renders the word.
func (w WordID) String() string { return IDToWord(w) }

// OutcomeToID packs an outcome string over W/M/C (either case).
func OutcomeToID(outcome string) (OutcomeID, error) {
	if len(outcome) != WordLen {
		return 0, fmt.Errorf("%w: outcome %q must be %d symbols", ErrInvalidInput, outcome, WordLen)
	}
	var id int
	for i := 0; i < WordLen; i++ {
		var d int
		switch outcome[i] {
		case 'W', 'w':
			d = NoMatch
		case 'M', 'm':
			d = Misplaced
		case 'C', 'c':
			d = Correct
		default:
			return 0, fmt.Errorf("%w: outcome %q has unknown symbol %q", ErrInvalidInput, outcome, outcome[i])
		}
		id = id*3 + d
	}
	return OutcomeID(id), nil
}

// MustOutcomeToID is OutcomeToID for literals known to be valid.
func MustOutcomeToID(outcome string) OutcomeID {
	id, err := OutcomeToID(outcome)
	if err != nil {
		panic(err)
	}
	return id
}

// OutcomeFromDigits packs per-position judgments (0..2 each).
func OutcomeFromDigits(d [WordLen]uint8) OutcomeID {
	var id uint8
	for _, v := range d {
		id = id*3 + v
	}
	return OutcomeID(id)
}

// IDToOutcome renders id as W/M/C letters.
func IDToOutcome(id OutcomeID) string {
	var buf [WordLen]byte
	n := int(id)
	for i := WordLen - 1; i >= 0; i-- {
		switch n % 3 {
		case Correct:
			buf[i] = 'C'
		case Misplaced:
			buf[i] = 'M'
		default:
			buf[i] = 'W'
		}
		n /= 3
	}
	return string(buf[:])
}

// String renders the outcome letters.
func (o OutcomeID) String() string { return IDToOutcome(o) }

// Valid reports whether o is one of the NumOutcomes encodable patterns.
func (o OutcomeID) Valid() bool { return int(o) < NumOutcomes }

// Valid reports whether w decodes to a word without wrapping.
func (w WordID) Valid() bool { return w < MaxWordID }
