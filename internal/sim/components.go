package sim

// Position is an entity's center in world units. World y grows upward.
type Position struct {
	X, Y float64
}

// Extent is an entity's full width and height.
type Extent struct {
	W, H float64
}

// VerticalVelocity is the player's vertical speed in units per second.
type VerticalVelocity float64

// HorizontalVelocity is an obstacle's constant speed; negative moves toward the player.
type HorizontalVelocity float64

// ObstacleTag marks obstacle entities.
type ObstacleTag struct{}

// GroundState is the motion state of an entity subject to gravity.
type GroundState uint8

const (
	OnGround GroundState = iota
	InAir
)

// String returns a human-readable name for the state.
func (g GroundState) String() string {
	switch g {
	case OnGround:
		return "OnGround"
	case InAir:
		return "InAir"
	default:
		return "Unknown"
	}
}

// EntityKind distinguishes the two kinds of entity in a snapshot.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindObstacle
)

// String returns a human-readable name for the kind.
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}
