package evaluation

// Tier thresholds from the instrument, evaluated high to low. The 90/55/30
// floors are part of the published questionnaire and not configurable.
const (
	highFloor   = 90
	mediumFloor = 55
	lowFloor    = 30
)

// ClassifyPercentage maps an aggregate percentage to its risk tier.
func ClassifyPercentage(percentage int) (RiskTier, error) {
	if percentage < 0 || percentage > 100 {
		return 0, &InvalidPercentageError{Value: percentage}
	}
	switch {
	case percentage >= highFloor:
		return TierHighCompliance, nil
	case percentage >= mediumFloor:
		return TierMediumCompliance, nil
	case percentage >= lowFloor:
		return TierLowCompliance, nil
	default:
		return TierNilCompliance, nil
	}
}

// TierForPercentage is ClassifyPercentage for inputs already known to be in
// range, such as a percentage produced by ScoreSection. The chart uses it to
// color each bar by that section's own percentage.
func TierForPercentage(percentage int) RiskTier {
	tier, err := ClassifyPercentage(percentage)
	if err != nil {
		return TierNilCompliance
	}
	return tier
}
