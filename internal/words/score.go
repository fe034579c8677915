package words

import "github.com/robalobadob/wordle/apps/solver/internal/codec"

// Score evaluates guess against solution and packs the result.
//
// Two-pass scoring:
//
//	Pass 1: exact matches are Correct; the remaining solution letters are counted.
//	Pass 2: each other guess letter is Misplaced while an unused copy remains.
//
// Repeated letters are therefore only marked as often as the solution holds them.
// Both words must be valid 5-letter lowercase words.
func Score(solution, guess string) codec.OutcomeID {
	var marks [codec.WordLen]uint8
	var counts [26]int

	for i := 0; i < codec.WordLen; i++ {
		if guess[i] == solution[i] {
			marks[i] = codec.Correct
		} else {
			counts[solution[i]-'a']++
		}
	}
	for i := 0; i < codec.WordLen; i++ {
		if marks[i] == codec.Correct {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			marks[i] = codec.Misplaced
			counts[j]--
		}
	}
	return codec.OutcomeFromDigits(marks)
}
