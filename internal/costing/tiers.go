package costing

// Tier is a presentation band. Lower values are better.
type Tier int

const (
	TierBest Tier = iota
	TierGood
	TierFair
	TierLow
	TierNeutral
)

var tierColors = [...]string{
	TierBest:    "#4e9643",
	TierGood:    "#7BB97A",
	TierFair:    "#8BC980",
	TierLow:     "#A6D49F",
	TierNeutral: "#9FB3A8",
}

// Color is the swatch the presentation layer paints the tier with.
func (t Tier) Color() string {
	if t < TierBest || t > TierNeutral {
		return tierColors[TierNeutral]
	}
	return tierColors[t]
}

func (t Tier) String() string {
	switch t {
	case TierBest:
		return "best"
	case TierGood:
		return "good"
	case TierFair:
		return "fair"
	case TierLow:
		return "low"
	default:
		return "neutral"
	}
}

// MarshalText renders the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarginTierFor bands a margin. Thresholds are inclusive.
func MarginTierFor(margin float64) Tier {
	switch {
	case margin >= 80:
		return TierBest
	case margin >= 60:
		return TierGood
	case margin >= 40:
		return TierFair
	case margin >= 20:
		return TierLow
	default:
		return TierNeutral
	}
}

// CostTierFor bands a cost percentage. Lower cost is better; thresholds are inclusive.
func CostTierFor(costPercent float64) Tier {
	switch {
	case costPercent <= 20:
		return TierBest
	case costPercent <= 30:
		return TierGood
	case costPercent <= 40:
		return TierFair
	case costPercent <= 50:
		return TierLow
	default:
		return TierNeutral
	}
}

// ShareLevel flags how much of a dish's cost one ingredient takes.
type ShareLevel string

const (
	ShareHigh   ShareLevel = "high"
	ShareMedium ShareLevel = "medium"
	ShareLow    ShareLevel = "low"
)

// ShareLevelFor bands an ingredient's percent share of the dish cost.
func ShareLevelFor(share float64) ShareLevel {
	switch {
	case share >= 30:
		return ShareHigh
	case share >= 15:
		return ShareMedium
	default:
		return ShareLow
	}
}

// HealthBadge is the verdict shown on a single dish.
type HealthBadge string

const (
	BadgeHealthy HealthBadge = "Saludable"
	BadgeAdjust  HealthBadge = "Ajustar"
	BadgeRisk    HealthBadge = "Riesgo"
)

// HealthBadgeFor classifies a dish margin.
func HealthBadgeFor(margin float64) HealthBadge {
	switch {
	case margin >= 65:
		return BadgeHealthy
	case margin >= 50:
		return BadgeAdjust
	default:
		return BadgeRisk
	}
}
