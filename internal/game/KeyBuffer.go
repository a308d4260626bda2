package game

import (
	"time"
	"unicode"
)

// InputProvider exposes the letter keys currently held down.
type InputProvider interface {
	PressedKeys() []rune
	ClearPressedKeys()
}

type heldKey struct {
	letter rune
	age    time.Duration
}

// KeyBuffer is the InputProvider fed by the terminal. Terminals report key
// presses but never releases, so a key counts as held until it has been
// down for holdTime of frame time.
type KeyBuffer struct {
	holdTime time.Duration
	keys     []heldKey
}

func NewKeyBuffer(holdTime time.Duration) *KeyBuffer {
	return &KeyBuffer{holdTime: holdTime}
}

// Press records a letter key. Anything outside A-Z is ignored; lower case
// is folded to upper case. Pressing a held key restarts its hold timer.
func (kb *KeyBuffer) Press(key rune) bool {
	key = unicode.ToUpper(key)
	if key < 'A' || key > 'Z' {
		return false
	}
	for i := range kb.keys {
		if kb.keys[i].letter == key {
			kb.keys[i].age = 0
			return true
		}
	}
	kb.keys = append(kb.keys, heldKey{letter: key})
	return true
}

// Release drops a key before its hold time runs out.
func (kb *KeyBuffer) Release(key rune) {
	key = unicode.ToUpper(key)
	kept := kb.keys[:0]
	for _, held := range kb.keys {
		if held.letter != key {
			kept = append(kept, held)
		}
	}
	kb.keys = kept
}

// Age advances every hold timer and releases expired keys.
func (kb *KeyBuffer) Age(dt time.Duration) {
	kept := kb.keys[:0]
	for _, held := range kb.keys {
		held.age += dt
		if kb.holdTime > 0 && held.age >= kb.holdTime {
			continue
		}
		kept = append(kept, held)
	}
	kb.keys = kept
}

// PressedKeys returns held letters, oldest press first.
func (kb *KeyBuffer) PressedKeys() []rune {
	letters := make([]rune, 0, len(kb.keys))
	for _, held := range kb.keys {
		letters = append(letters, held.letter)
	}
	return letters
}

func (kb *KeyBuffer) ClearPressedKeys() {
	kb.keys = kb.keys[:0]
}
