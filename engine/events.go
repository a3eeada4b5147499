package engine

// EventOutcome is one possible resolution of an event type. Weight is
// relative within the type; ChangesPossession flips the attacking side;
// Goal increments the attacking team's tally.
type EventOutcome struct {
	Name              string
	Weight            float64
	Success           bool
	ChangesPossession bool
	Goal              bool
}

// EventType is static reference data: a kind of in-match event with a
// base success rate, the attribute weights that scale outcomes for the
// acting player, and a frequency weight used when the simulator picks
// which event happens next.
type EventType struct {
	Name            string
	Frequency       float64
	BaseSuccessRate float64
	// AttributeWeights maps player attribute names to their share of
	// the player's effective skill for this event type. Shares should
	// sum to 1 but are normalized either way.
	AttributeWeights map[string]float64
	Outcomes         []EventOutcome
}

// skill folds a player's attribute profile into [0, 1] using the
// event's attribute weighting. No configured weights means a neutral
// 0.5 so untyped events stay playable.
func (et EventType) skill(attrs func(name string) int) float64 {
	if len(et.AttributeWeights) == 0 {
		return 0.5
	}
	var sum, total float64
	for name, w := range et.AttributeWeights {
		if w <= 0 {
			continue
		}
		sum += float64(attrs(name)) / 100.0 * w
		total += w
	}
	if total == 0 {
		return 0.5
	}
	return sum / total
}

// EffectiveWeights scales the configured outcome weights by the acting
// player's skill: success outcomes grow with skill and the base
// success rate, failure outcomes shrink.
func (et EventType) EffectiveWeights(attrs func(name string) int) []float64 {
	skill := et.skill(attrs)
	weights := make([]float64, len(et.Outcomes))
	for i, o := range et.Outcomes {
		w := o.Weight
		if o.Success {
			w *= et.BaseSuccessRate * (0.5 + skill)
		} else {
			w *= (1 - et.BaseSuccessRate) * (1.5 - skill)
		}
		weights[i] = w
	}
	return weights
}

// DefaultEventTypes is the built-in reference set. A seeded database
// can replace it wholesale; the simulator only sees the slice.
func DefaultEventTypes() []EventType {
	return []EventType{
		{
			Name:            "shot",
			Frequency:       2,
			BaseSuccessRate: 0.22,
			AttributeWeights: map[string]float64{
				"shooting":  0.7,
				"composure": 0.3,
			},
			Outcomes: []EventOutcome{
				{Name: "goal", Weight: 5, Success: true, Goal: true, ChangesPossession: true},
				{Name: "saved", Weight: 6, ChangesPossession: true},
				{Name: "off_target", Weight: 5, ChangesPossession: true},
				{Name: "blocked", Weight: 4},
			},
		},
		{
			Name:            "pass",
			Frequency:       6,
			BaseSuccessRate: 0.8,
			AttributeWeights: map[string]float64{
				"passing": 0.8,
				"vision":  0.2,
			},
			Outcomes: []EventOutcome{
				{Name: "completed", Weight: 8, Success: true},
				{Name: "intercepted", Weight: 3, ChangesPossession: true},
				{Name: "out_of_play", Weight: 1, ChangesPossession: true},
			},
		},
		{
			Name:            "tackle",
			Frequency:       3,
			BaseSuccessRate: 0.55,
			AttributeWeights: map[string]float64{
				"tackling": 0.8,
				"strength": 0.2,
			},
			Outcomes: []EventOutcome{
				{Name: "won_ball", Weight: 5, Success: true, ChangesPossession: true},
				{Name: "missed", Weight: 3},
				{Name: "foul", Weight: 2},
			},
		},
		{
			Name:            "dribble",
			Frequency:       3,
			BaseSuccessRate: 0.5,
			AttributeWeights: map[string]float64{
				"dribbling": 0.7,
				"pace":      0.3,
			},
			Outcomes: []EventOutcome{
				{Name: "beat_defender", Weight: 5, Success: true},
				{Name: "dispossessed", Weight: 5, ChangesPossession: true},
			},
		},
	}
}
