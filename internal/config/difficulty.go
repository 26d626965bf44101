package config

import "fmt"

// ParsePreset validates a --difficulty value. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard, or fixed)", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTowersPreset adjusts starting resources and wave growth.
// Fixed keeps every procedural wave at the base size.
func ApplyTowersPreset(c *TowersContent, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.Economy.StartingGold += c.Economy.StartingGold / 2
		c.Economy.StartingLives += 10
		c.Procedural.Growth = 1 + (c.Procedural.Growth-1)*0.5
	case DifficultyHard:
		c.Economy.StartingGold -= c.Economy.StartingGold / 4
		c.Economy.StartingLives = max(c.Economy.StartingLives/2, 1)
		c.Procedural.Growth = 1 + (c.Procedural.Growth-1)*1.5
	case DifficultyFixed:
		c.Procedural.Growth = 1
	}
}

// ApplyRitualsPreset shifts every ritual's difficulty, clamped to 1..10.
// Fixed also unlocks every ritual.
func ApplyRitualsPreset(c *RitualsContent, preset DifficultyPreset) {
	offset := 0
	switch preset {
	case DifficultyEasy:
		offset = -2
	case DifficultyHard:
		offset = 2
	case DifficultyFixed:
		c.Debug.UnlockAll = true
	}
	for i := range c.Rituals {
		c.Rituals[i].Difficulty = min(max(c.Rituals[i].Difficulty+offset, 1), 10)
	}
}
