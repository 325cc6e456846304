package model

// DamageInfo is a request to damage a target.
type DamageInfo struct {
	Amount       float64
	Source       *Character // optional
	IsTrueDamage bool
}

// DamageResult is the outcome of resolving a DamageInfo.
// FinalDamage is at least 1 unless the hit was dodged or the target was
// already dead.
type DamageResult struct {
	FinalDamage int
	IsDodged    bool
	IsKilled    bool
}
