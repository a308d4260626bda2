package game

import "math/rand"

const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LetterSource hands out tile letters from a shuffled pool of the alphabet.
// The pool is refilled and reshuffled only once it has been drained, so any
// 26 consecutive draws that start on a cycle boundary are all distinct.
type LetterSource struct {
	rng  *rand.Rand
	pool []rune
}

func NewLetterSource(rng *rand.Rand) *LetterSource {
	return &LetterSource{rng: rng}
}

// Draw returns the next letter, refilling the pool when it is empty.
func (ls *LetterSource) Draw() rune {
	if len(ls.pool) == 0 {
		ls.refill()
	}
	letter := ls.pool[len(ls.pool)-1]
	ls.pool = ls.pool[:len(ls.pool)-1]
	return letter
}

// Remaining is the number of letters left before the next reshuffle.
func (ls *LetterSource) Remaining() int {
	return len(ls.pool)
}

func (ls *LetterSource) refill() {
	ls.pool = append(ls.pool[:0], []rune(Alphabet)...)
	// Fisher-Yates
	for i := len(ls.pool) - 1; i > 0; i-- {
		j := ls.rng.Intn(i + 1)
		ls.pool[i], ls.pool[j] = ls.pool[j], ls.pool[i]
	}
}
