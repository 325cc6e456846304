package arena

// Intention is what a unit's controller decided to do on its last frame.
type Intention int8

const (
	// IntentionIdle - no foe in sight, stunned, or nothing to do.
	IntentionIdle Intention = iota
	// IntentionChase - closing the distance to its target.
	IntentionChase
	// IntentionEngage - in reach of its target, waiting for a skill.
	IntentionEngage
	// IntentionCast - a cast is in flight.
	IntentionCast
	// IntentionDead - the unit died.
	IntentionDead
)

func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionChase:
		return "CHASE"
	case IntentionEngage:
		return "ENGAGE"
	case IntentionCast:
		return "CAST"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
