package item

import (
	"fmt"

	"github.com/samdwyer/delvecore/internal/rng"
)

// MaxEnchantLevel is the highest enchant level an item can reach.
const MaxEnchantLevel = 10

// enchantSuccess maps the current enchant level to the success probability
// of the next attempt. Levels past the table clamp at the final entry.
var enchantSuccess = map[int]float64{
	0: 0.90,
	1: 0.85,
	2: 0.80,
	3: 0.70,
	4: 0.60,
	5: 0.50,
	6: 0.40,
	7: 0.35,
	8: 0.32,
	9: 0.30,
}

// EnchantChance returns the success probability for enchanting from the
// given level.
func EnchantChance(level int) float64 {
	if chance, ok := enchantSuccess[level]; ok {
		return chance
	}
	return 0.30
}

// EnchantResult reports the outcome of an enchant attempt.
type EnchantResult struct {
	Success bool
	Message string
	Level   int // enchant level after the attempt
}

// Enchant attempts to raise the item's enchant level by one. The enchant
// level never decreases and never exceeds MaxEnchantLevel. A guaranteed
// attempt bypasses the success roll.
func (it *Item) Enchant(src rng.Source, guaranteed bool) EnchantResult {
	if it.EnchantLevel >= MaxEnchantLevel {
		return EnchantResult{
			Success: false,
			Message: fmt.Sprintf("%s is already at max enchant level", it.Name),
			Level:   it.EnchantLevel,
		}
	}

	if !guaranteed && src.Float64() >= EnchantChance(it.EnchantLevel) {
		return EnchantResult{
			Success: false,
			Message: fmt.Sprintf("Enchanting %s failed", it.Name),
			Level:   it.EnchantLevel,
		}
	}

	it.EnchantLevel++
	it.refreshValue()
	return EnchantResult{
		Success: true,
		Message: fmt.Sprintf("%s is now +%d", it.Name, it.EnchantLevel),
		Level:   it.EnchantLevel,
	}
}
