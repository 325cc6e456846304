package skill

// Talent is a data-driven cast modifier: additive targeting bonuses and
// cost/cooldown scaling loaded from the catalog.
type Talent struct {
	ID                 string
	RangeBonus         float64
	RadiusBonus        float64
	ExtraTargets       int
	CostMultiplier     float64 // 0 is treated as 1
	CostFlat           int
	CooldownMultiplier float64 // 0 is treated as 1
}

func (t *Talent) ModifyTargeting(cfg *TargetingConfig) {
	cfg.Range = max(0, cfg.Range+t.RangeBonus)
	cfg.Radius = max(0, cfg.Radius+t.RadiusBonus)
	if cfg.MaxCount > 0 {
		cfg.MaxCount = max(1, cfg.MaxCount+t.ExtraTargets)
	}
}

func (t *Talent) ModifyEnergyCost(cfg *EnergyCostConfig) {
	if t.CostMultiplier != 0 {
		cfg.Multiplier *= t.CostMultiplier
	}
	cfg.Flat += t.CostFlat
}

func (t *Talent) ModifyCooldown(cooldown float64) float64 {
	if t.CooldownMultiplier == 0 {
		return cooldown
	}
	return max(0, cooldown*t.CooldownMultiplier)
}
