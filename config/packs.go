package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tiltpick/round"
)

// packFile is the on-disk layout: a list of [[pack]] tables
type packFile struct {
	Pack []round.Pack `toml:"pack"`
}

// Packs returns the configured packs, or the built-in number packs when no file is set
func (c Config) Packs() ([]round.Pack, error) {
	if c.Game.Packs == "" {
		return round.NumberPacks(), nil
	}
	return LoadPacks(c.Game.Packs)
}

// LoadPacks reads and validates a pack file
func LoadPacks(path string) ([]round.Pack, error) {
	var f packFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode packs %s: %w", path, err)
	}
	if len(f.Pack) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPacks)
	}
	for i, p := range f.Pack {
		if err := ValidatePack(p); err != nil {
			return nil, fmt.Errorf("%s: pack %d: %w", path, i, err)
		}
	}
	return f.Pack, nil
}

// ValidatePack checks that a pack can produce a playable round
func ValidatePack(p round.Pack) error {
	if p.Correct == "" {
		return fmt.Errorf("%w: missing correct key", ErrInvalidPack)
	}
	if p.Clip == "" && p.Prompt == "" {
		return fmt.Errorf("%w: needs a clip or a prompt", ErrInvalidPack)
	}
	if len(p.Distractors) == 0 {
		return fmt.Errorf("%w: no distractors", ErrInvalidPack)
	}

	seen := map[string]bool{p.Correct: true}
	for _, d := range p.Distractors {
		if d == "" {
			return fmt.Errorf("%w: empty distractor", ErrInvalidPack)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidPack, d)
		}
		seen[d] = true
	}
	return nil
}
