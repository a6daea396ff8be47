// Package voice provides a polyphonic voice array.
//
// The array maintains a fixed pool of identical voices and maps note
// events onto them, which simplifies building polyphonic instruments. When
// a note event needs a voice, the array picks one deterministically:
//
//  1. A note that is already sounding retriggers the voice playing it.
//  2. Otherwise the voice that has been free the longest is used.
//  3. Otherwise the voice that has been held the longest is stolen.
//
// The selected voice is returned so the caller can trigger whatever
// changes the voice needs.
package voice

import "errors"

// ErrEmptyPool is returned when constructing an array without voices.
var ErrEmptyPool = errors.New("voice: pool must hold at least one voice")

type held struct {
	index int
	note  uint8
}

// Array is a manager for a polyphonic set of voices.
type Array[V any] struct {
	voices []V
	// noteToVoice maps sounding note numbers to voice indices. The mapping
	// is injective: a voice plays at most one note.
	noteToVoice map[uint8]int
	// heldVoices keeps the most recently (re)triggered voices at the back.
	heldVoices []held
	// freeVoices keeps the most recently released voices at the back.
	freeVoices []int
}

// New returns an array managing the provided voices. The slice is owned by
// the array afterwards.
func New[V any](voices []V) (*Array[V], error) {
	if len(voices) == 0 {
		return nil, ErrEmptyPool
	}
	free := make([]int, len(voices))
	for i := range free {
		free[i] = i
	}
	return &Array[V]{
		voices:      voices,
		noteToVoice: make(map[uint8]int),
		freeVoices:  free,
	}, nil
}

// Voices returns the managed voices for iteration. The order is the
// construction order, not the allocation order.
func (a *Array[V]) Voices() []V {
	return a.voices
}

// NoteOn selects a voice for the note, marks it as held and returns it.
func (a *Array[V]) NoteOn(note uint8) *V {
	i, ok := a.noteToVoice[note]
	if ok {
		// The note is already sounding: retrigger the same voice and move
		// it to the back of the held queue.
		a.removeHeld(i)
	} else {
		if len(a.freeVoices) > 0 {
			i = a.freeVoices[0]
			a.freeVoices = a.freeVoices[1:]
		} else {
			// No free voices: steal the longest held one.
			stolen := a.heldVoices[0]
			a.heldVoices = a.heldVoices[1:]
			delete(a.noteToVoice, stolen.note)
			i = stolen.index
		}
		a.noteToVoice[note] = i
	}
	a.heldVoices = append(a.heldVoices, held{index: i, note: note})
	return &a.voices[i]
}

// NoteOff releases the voice playing the note and returns it. If the note
// is not sounding, the second return value is false.
func (a *Array[V]) NoteOff(note uint8) (*V, bool) {
	i, ok := a.noteToVoice[note]
	if !ok {
		return nil, false
	}
	delete(a.noteToVoice, note)
	a.removeHeld(i)
	a.freeVoices = append(a.freeVoices, i)
	return &a.voices[i], true
}

func (a *Array[V]) removeHeld(index int) {
	for j := range a.heldVoices {
		if a.heldVoices[j].index == index {
			a.heldVoices = append(a.heldVoices[:j], a.heldVoices[j+1:]...)
			return
		}
	}
}
