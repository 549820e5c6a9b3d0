package entity

// ItemKind indexes the item table
type ItemKind int

// NumItemKinds is the size of the item table
const NumItemKinds = 26

// ItemEffect is what happens when an item is used or picked up
type ItemEffect int

const (
	EffectNone ItemEffect = iota
	EffectThrow
	EffectInvincible
	EffectSmashBoost
	EffectCloak
	EffectMetal
	EffectExplosive
	EffectFood
)

func (e ItemEffect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectThrow:
		return "throw"
	case EffectInvincible:
		return "invincible"
	case EffectSmashBoost:
		return "smash-boost"
	case EffectCloak:
		return "cloak"
	case EffectMetal:
		return "metal"
	case EffectExplosive:
		return "explosive"
	case EffectFood:
		return "food"
	default:
		return "unknown"
	}
}

// Items below bigItemLimit use the large sprite box
const bigItemLimit = 5

const (
	BigItemSize   = 16
	SmallItemSize = 8
)

var itemEffects = [NumItemKinds]ItemEffect{
	EffectThrow, EffectThrow, EffectSmashBoost, EffectMetal, EffectInvincible,
	EffectThrow, EffectCloak, EffectSmashBoost, EffectInvincible, EffectMetal,
	EffectCloak, EffectThrow, EffectNone, EffectNone,
	EffectExplosive, EffectExplosive,
	EffectNone, EffectNone,
	EffectFood, EffectFood, EffectFood, EffectFood,
	EffectFood, EffectFood, EffectFood, EffectFood,
}

// firstFood is the first food kind; replenish values follow the table order
const firstFood = 18

var foodReplenish = [...]int{100, 50, 48, 36, 24, 12, 10, 10}

// Big reports whether the kind uses the large box
func (k ItemKind) Big() bool {
	return k < bigItemLimit
}

// Size returns the square box edge for the kind
func (k ItemKind) Size() int {
	if k.Big() {
		return BigItemSize
	}
	return SmallItemSize
}

// Effect returns the effect bound to the kind
func (k ItemKind) Effect() ItemEffect {
	if k < 0 || int(k) >= NumItemKinds {
		return EffectNone
	}
	return itemEffects[k]
}

// Replenish returns how much percent a food kind removes
func (k ItemKind) Replenish() int {
	i := int(k) - firstFood
	if i < 0 || i >= len(foodReplenish) {
		return 0
	}
	return foodReplenish[i]
}

// Item is a pickup lying in the arena or carried by a fighter
type Item struct {
	Kind ItemKind
	X, Y int
	Held bool
	Used bool
}

// NewItem creates an item dropped from the top of the arena
func NewItem(kind ItemKind, x int) *Item {
	return &Item{Kind: kind, X: x}
}

// Size returns the item's box edge
func (it *Item) Size() int {
	return it.Kind.Size()
}
