package round

import (
	"slices"

	"github.com/lixenwraith/tiltpick/vmath"
)

// Pack is a static question: one correct key among distractors
type Pack struct {
	Clip        string   `toml:"clip"`   // Narration clip name
	Prompt      string   `toml:"prompt"` // Spoken fallback text
	Correct     string   `toml:"correct"`
	Distractors []string `toml:"distractors"`
}

// Keys returns the answer key set, correct first, duplicates dropped
func (p Pack) Keys() []string {
	keys := make([]string, 0, len(p.Distractors)+1)
	keys = append(keys, p.Correct)
	for _, d := range p.Distractors {
		if !slices.Contains(keys, d) {
			keys = append(keys, d)
		}
	}
	return keys
}

// Deck deals packs in shuffled order without repeats until exhausted
type Deck struct {
	packs []Pack
	order []int
	next  int
	rng   *vmath.FastRand
}

// NewDeck shuffles packs into a fresh sequence
func NewDeck(packs []Pack, rng *vmath.FastRand) *Deck {
	if rng == nil {
		rng = vmath.NewTimeRand()
	}
	d := &Deck{packs: packs, rng: rng}
	d.Reset()
	return d
}

// Reset reshuffles all packs
func (d *Deck) Reset() {
	d.order = make([]int, len(d.packs))
	for i := range d.order {
		d.order[i] = i
	}
	d.rng.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.next = 0
}

// Next deals the following pack, false when exhausted
func (d *Deck) Next() (Pack, bool) {
	if d.next >= len(d.order) {
		return Pack{}, false
	}
	p := d.packs[d.order[d.next]]
	d.next++
	return p, true
}

// Remaining returns undealt pack count
func (d *Deck) Remaining() int {
	return len(d.order) - d.next
}

// Len returns the total pack count
func (d *Deck) Len() int {
	return len(d.packs)
}

// NumberPacks is the built-in number matching set
func NumberPacks() []Pack {
	return []Pack{
		{Clip: "find_3", Prompt: "Find the number three", Correct: "3", Distractors: []string{"1", "8", "6", "9"}},
		{Clip: "find_5", Prompt: "Find the number five", Correct: "5", Distractors: []string{"2", "6", "9"}},
		{Clip: "find_7", Prompt: "Find the number seven", Correct: "7", Distractors: []string{"1", "4", "2", "0", "9"}},
		{Clip: "find_2", Prompt: "Find the number two", Correct: "2", Distractors: []string{"5", "7"}},
		{Clip: "find_8", Prompt: "Find the number eight", Correct: "8", Distractors: []string{"3", "0", "6", "1"}},
		{Clip: "find_4", Prompt: "Find the number four", Correct: "4", Distractors: []string{"1", "7", "9", "6", "2", "0"}},
	}
}
