package engine

import "github.com/openleague/footsim/models"

// regulationPairs is the minimum number of kicks per side before a
// shootout can be decided.
const regulationPairs = 5

// shootout settles a drawn elimination fixture with an ordered,
// alternating sequence of kicks. Exactly five pairs are always taken;
// from then on the shootout ends after any pair that leaves the totals
// unequal, so both sides have always taken the same number of kicks
// when the winner is declared. The 90-minute scoreline is untouched.
func (s *Simulator) shootout(match *models.Match, home, away TeamSheet) int {
	homeScored, awayScored := 0, 0
	order := 0

	for pair := 0; ; pair++ {
		order++
		if s.takeKick(match, home, away, order) {
			homeScored++
		}
		order++
		if s.takeKick(match, away, home, order) {
			awayScored++
		}

		if pair+1 >= regulationPairs && homeScored != awayScored {
			break
		}
	}

	if homeScored > awayScored {
		return home.Team.ID
	}
	return away.Team.ID
}

// takeKick resolves one kicker/goalkeeper duel and records it.
func (s *Simulator) takeKick(match *models.Match, kicking, keeping TeamSheet, order int) bool {
	kicker := kicking.Players[(order/2)%len(kicking.Players)]
	keeper := s.pickKeeper(keeping)

	// Conversion leans on the kicker's shooting against the keeper's
	// goalkeeping, anchored around a realistic base rate.
	kick := float64(kicker.Attribute("shooting")) / 100.0
	save := float64(keeper.Attribute("goalkeeping")) / 100.0
	p := 0.75 + (kick-save)*0.3
	if p < 0.2 {
		p = 0.2
	}
	if p > 0.95 {
		p = 0.95
	}
	scored := s.rng.Float64() < p

	match.Penalties = append(match.Penalties, models.Penalty{
		Order:    order,
		TeamID:   kicking.Team.ID,
		PlayerID: kicker.ID,
		Scored:   scored,
	})

	outcome := "missed"
	if scored {
		outcome = "scored"
	}
	match.Events = append(match.Events, models.MatchEvent{
		Minute:     match.Minute,
		TeamID:     kicking.Team.ID,
		PlayerID:   kicker.ID,
		EventType:  "penalty",
		Outcome:    outcome,
		Commentary: s.commentary.Pick(s.rng, "penalty", outcome, kicker.FullName(), kicking.Team.Name, match.Minute),
	})
	return scored
}

func (s *Simulator) pickKeeper(sheet TeamSheet) *models.Player {
	for _, p := range sheet.Players {
		if p.Position == models.PositionGoalkeeper {
			return p
		}
	}
	return sheet.Players[len(sheet.Players)-1]
}
