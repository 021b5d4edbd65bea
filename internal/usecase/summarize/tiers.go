package summarize

import (
	"fmt"

	"content-summarizer/internal/domain/entity"
)

// Tiers maps each length tier to its generation bounds. The mapping is
// static for the lifetime of the service; BoundsFor performs no I/O and
// cannot fail for a valid tier.
type Tiers map[entity.LengthTier]entity.GenerationBounds

// DefaultTiers returns the built-in tier table. Bounds grow strictly
// with the tier in both min and max, so a longer tier never produces a
// shorter target than a shorter one.
func DefaultTiers() Tiers {
	return Tiers{
		entity.TierShort:  {MinTokens: 30, MaxTokens: 90},
		entity.TierMedium: {MinTokens: 60, MaxTokens: 180},
		entity.TierLong:   {MinTokens: 120, MaxTokens: 360},
	}
}

// BoundsFor resolves the generation bounds for a tier. Only a tier value
// outside the enum produces an error.
func (t Tiers) BoundsFor(tier entity.LengthTier) (entity.GenerationBounds, error) {
	if !tier.Valid() {
		return entity.GenerationBounds{}, &entity.ValidationError{
			Field:   "tier",
			Message: fmt.Sprintf("unknown tier value %d", int(tier)),
		}
	}

	bounds, ok := t[tier]
	if !ok {
		return entity.GenerationBounds{}, fmt.Errorf("tier table missing bounds for %s", tier)
	}
	return bounds, nil
}

// Validate checks that the table covers all three tiers, that every
// entry satisfies 0 < min < max, and that bounds are strictly monotonic
// across short < medium < long.
func (t Tiers) Validate() error {
	order := []entity.LengthTier{entity.TierShort, entity.TierMedium, entity.TierLong}

	for _, tier := range order {
		bounds, ok := t[tier]
		if !ok {
			return fmt.Errorf("tier table missing entry for %s", tier)
		}
		if bounds.MinTokens <= 0 {
			return fmt.Errorf("tier %s: min tokens must be positive, got %d", tier, bounds.MinTokens)
		}
		if bounds.MinTokens >= bounds.MaxTokens {
			return fmt.Errorf("tier %s: min tokens (%d) must be below max tokens (%d)",
				tier, bounds.MinTokens, bounds.MaxTokens)
		}
	}

	for i := 1; i < len(order); i++ {
		prev, cur := t[order[i-1]], t[order[i]]
		if cur.MinTokens <= prev.MinTokens || cur.MaxTokens <= prev.MaxTokens {
			return fmt.Errorf("tier bounds must grow strictly from %s to %s", order[i-1], order[i])
		}
	}

	return nil
}
