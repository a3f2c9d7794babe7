package game

import (
	"context"
	"fmt"

	"github.com/samdwyer/delvecore/internal/combat"
	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/world"
)

// blessingEffects are the combat-facing shrine buffs, applied to every hero
// for the duration of one encounter while the matching floor buff is active.
var blessingEffects = map[world.BuffType][]combat.StatusEffect{
	world.BuffDamage: {
		{Name: "shrine fervor", Stat: combat.StatATK, Percent: 25},
	},
	world.BuffStats: {
		{Name: "shrine bulwark", Stat: combat.StatDEF, Percent: 15},
		{Name: "shrine haste", Stat: combat.StatSPD, Percent: 15},
	},
}

func (d *Dungeon) applyBlessings() {
	for buff, effects := range blessingEffects {
		if !d.HasActiveBuff(buff) {
			continue
		}
		for _, effect := range effects {
			effect.RemainingTurns = maxEncounterRounds
			for _, h := range d.Party.Heroes {
				h.AddStatusEffect(effect)
			}
		}
	}
}

func (d *Dungeon) clearBlessings() {
	for _, effects := range blessingEffects {
		for _, effect := range effects {
			for _, h := range d.Party.Heroes {
				h.RemoveStatusEffect(effect.Name)
			}
		}
	}
}

// rewardFactor scales per-enemy gold and experience by kind.
func rewardFactor(kind entity.Kind) int {
	switch kind {
	case entity.KindElite:
		return 2
	case entity.KindMiniboss:
		return 3
	case entity.KindBoss:
		return 5
	default:
		return 1
	}
}

// CompleteCombat fights out the current combat-type room. Victory resolves
// the room and yields gold and experience; defeat ends the run.
func (d *Dungeon) CompleteCombat(ctx context.Context) Result {
	room := d.CurrentRoom()
	switch room.Type {
	case world.TypeCombat, world.TypeElite, world.TypeMiniboss, world.TypeBoss:
	default:
		return fail("there is nothing to fight here")
	}
	if room.Resolved {
		return fail("there is nothing more to do here")
	}

	d.applyBlessings()
	enc := NewEncounter(d.src, d.Party, room.Combat.Enemies)
	outcome := enc.Run(ctx)
	d.clearBlessings()

	if outcome == OutcomeDefeat {
		d.Active = false
		return Result{
			Success: false,
			Message: "Your party has been defeated!",
		}
	}

	room.Resolved = true

	reward := &Reward{}
	for _, e := range room.Combat.Enemies {
		factor := rewardFactor(e.Kind)
		reward.Gold += (8 + 4*e.GetLevel()) * factor
		reward.Experience += 10 * e.GetLevel() * factor
	}
	if d.HasActiveBuff(world.BuffGold) {
		reward.Gold = reward.Gold * 3 / 2
	}
	if d.HasActiveBuff(world.BuffExperience) {
		reward.Experience = reward.Experience * 3 / 2
	}

	d.Inventory.AddGold(reward.Gold)
	d.GoldEarned += reward.Gold
	d.EnemiesDefeated += len(room.Combat.Enemies)

	return Result{
		Success: true,
		Message: fmt.Sprintf("Victory after %d rounds!", enc.Rounds),
		Reward:  reward,
	}
}

// LootTreasure opens the current treasure room. Items that do not fit in the
// inventory are left behind and reported.
func (d *Dungeon) LootTreasure() Result {
	room, res := d.checkRoom(world.TypeTreasure)
	if !res.Success {
		return res
	}
	room.Resolved = true

	gold := room.Treasure.Gold
	if d.HasActiveBuff(world.BuffGold) {
		gold = gold * 3 / 2
	}
	d.Inventory.AddGold(gold)
	d.GoldEarned += gold

	reward := &Reward{Gold: gold}
	left := 0
	for _, it := range room.Treasure.Items {
		if add := d.Inventory.Add(it); add.Success {
			reward.Items = append(reward.Items, it)
			d.ItemsFound++
		} else {
			left++
		}
	}

	message := fmt.Sprintf("You loot %d gold and %d items", gold, len(reward.Items))
	if left > 0 {
		message += fmt.Sprintf(" (%d left behind, inventory full)", left)
	}
	return Result{Success: true, Message: message, Reward: reward}
}

// DisarmTrap attempts to disarm the current trap room: a weighted coin flip
// (60% success) either disarms it cleanly or triggers it, dealing
// max(1, trapDamage - DEF) to every hero.
func (d *Dungeon) DisarmTrap() Result {
	room, res := d.checkRoom(world.TypeTrap)
	if !res.Success {
		return res
	}
	room.Resolved = true

	if d.src.Float64() < 0.60 {
		return ok("You disarm the trap")
	}

	var damage []HeroDamage
	for _, h := range d.Party.Heroes {
		dmg := room.Trap.Damage - h.GetCombatStats().DEF
		if dmg < 1 {
			dmg = 1
		}
		h.TakeDamage(dmg)
		damage = append(damage, HeroDamage{Hero: h, Damage: dmg})
	}

	return Result{
		Success: true,
		Message: room.Trap.Description,
		Damage:  damage,
	}
}

// UseRest heals every hero by the rest site's percentage of their max HP.
func (d *Dungeon) UseRest() Result {
	room, res := d.checkRoom(world.TypeRest)
	if !res.Success {
		return res
	}
	room.Resolved = true

	for _, h := range d.Party.Heroes {
		if h.IsAlive() {
			h.Heal(h.GetMaxHP() * room.Rest.HealPercent / 100)
		}
	}
	return ok(fmt.Sprintf("The party rests and recovers %d%% HP", room.Rest.HealPercent))
}

// UseShrine grants the shrine's floor-scoped buff.
func (d *Dungeon) UseShrine() Result {
	room, res := d.checkRoom(world.TypeShrine)
	if !res.Success {
		return res
	}
	room.Resolved = true

	d.CurrentFloor().AddBuff(room.Shrine.Buff)
	return ok(fmt.Sprintf("The shrine grants a %s blessing for this floor", room.Shrine.Buff))
}

// ResolveMystery plays out the current mystery room. The outcome was fixed
// at generation time, so resolving is deterministic.
func (d *Dungeon) ResolveMystery() Result {
	room, res := d.checkRoom(world.TypeMystery)
	if !res.Success {
		return res
	}
	room.Resolved = true

	m := room.Mystery
	switch m.Outcome {
	case world.MysteryPositive:
		for _, h := range d.Party.Heroes {
			if h.IsAlive() {
				h.Heal(m.Heal)
			}
		}
		d.Inventory.AddGold(m.Gold)
		d.GoldEarned += m.Gold
		return Result{
			Success: true,
			Message: m.Description,
			Reward:  &Reward{Gold: m.Gold},
		}

	case world.MysteryNegative:
		var damage []HeroDamage
		for _, h := range d.Party.Heroes {
			if h.IsAlive() {
				h.TakeDamage(m.Damage)
				damage = append(damage, HeroDamage{Hero: h, Damage: m.Damage})
			}
		}
		return Result{
			Success: true,
			Message: m.Description,
			Damage:  damage,
		}

	default:
		d.Inventory.AddGold(m.Gold)
		d.GoldEarned += m.Gold
		return Result{
			Success: true,
			Message: m.Description,
			Reward:  &Reward{Gold: m.Gold},
		}
	}
}
