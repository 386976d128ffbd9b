package game

// Ship ids.
const (
	ShipSpeedBoost = iota
	ShipDoubleDamage
	ShipExtraHealth
	ShipFastBullets
	ShipShield
	NumShips
)

// Player tuning.
const (
	BaseHealth         = 3
	BaseDamage         = 2
	ShipSpeedFactor    = 1.5 // ShipSpeedBoost
	BulletSpeedFactor  = 1.5 // ShipFastBullets and super-mode
	BoostedSpeedFactor = 2.0 // Speed buff and super-mode
)

// Ship is a purchasable player ship.
type Ship struct {
	Name    string
	Ability string
	Price   int
}

// Ships lists every ship, indexed by id. The first one is owned from the start.
var Ships = [NumShips]Ship{
	ShipSpeedBoost:   {Name: "Falcon", Ability: "Speed Boost (+50%)", Price: 0},
	ShipDoubleDamage: {Name: "Hammer", Ability: "Double Damage", Price: 100},
	ShipExtraHealth:  {Name: "Bastion", Ability: "Extra Health (+1)", Price: 200},
	ShipFastBullets:  {Name: "Needle", Ability: "Faster Bullets", Price: 300},
	ShipShield:       {Name: "Aegis", Ability: "Shield (5 sec)", Price: 400},
}

// ValidShip reports whether id names a ship.
func ValidShip(id int) bool {
	return id >= 0 && id < NumShips
}

// MaxHealth returns the health cap for the ship.
func MaxHealth(ship int) int {
	if ship == ShipExtraHealth {
		return BaseHealth + 1
	}
	return BaseHealth
}

// Damage returns the damage a single bullet deals with the ship equipped.
func Damage(ship int) int {
	if ship == ShipDoubleDamage {
		return 2 * BaseDamage
	}
	return BaseDamage
}
