package entity

// CharacterState is the behavior state of a character
type CharacterState int

const (
	StateIdle CharacterState = iota
	StateWalking
	StateSprinting
	StateJumping
	StateFalling
	StateHurt
	StateAttacking
	StateDead
)

// String returns the string representation of the character state
func (s CharacterState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWalking:
		return "Walking"
	case StateSprinting:
		return "Sprinting"
	case StateJumping:
		return "Jumping"
	case StateFalling:
		return "Falling"
	case StateHurt:
		return "Hurt"
	case StateAttacking:
		return "Attacking"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Grounded reports whether the state is one of the on-ground movement states
func (s CharacterState) Grounded() bool {
	return s == StateIdle || s == StateWalking || s == StateSprinting
}

// Event is a one-shot occurrence raised during a character update.
// Events are cleared at the start of the character's next update.
type Event uint16

const (
	EventHitLanded Event = 1 << iota
	EventSwingWhiffed
	EventSwingStarted
	EventJumped
	EventLanded
	EventDied
	EventHealed
	EventHurt
	EventRespawned
	EventPickup
)

var eventNames = []struct {
	e    Event
	name string
}{
	{EventHitLanded, "HitLanded"},
	{EventSwingWhiffed, "SwingWhiffed"},
	{EventSwingStarted, "SwingStarted"},
	{EventJumped, "Jumped"},
	{EventLanded, "Landed"},
	{EventDied, "Died"},
	{EventHealed, "Healed"},
	{EventHurt, "Hurt"},
	{EventRespawned, "Respawned"},
	{EventPickup, "Pickup"},
}

// Has reports whether every event in e is set
func (e Event) Has(other Event) bool {
	return other != 0 && e&other == other
}

// Names lists the set events in declaration order
func (e Event) Names() []string {
	var names []string
	for _, n := range eventNames {
		if e&n.e != 0 {
			names = append(names, n.name)
		}
	}
	return names
}
