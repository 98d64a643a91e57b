package models

// Standing is a derived per-entry summary used for ranking. It is recomputed
// from current grade rows on every read and never persisted as authoritative
// state.
type Standing struct {
	EntryID     int     `json:"entry_id"`
	EntryName   string  `json:"entry_name"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Pushes      int     `json:"pushes"`
	Voids       int     `json:"voids"`
	TotalPicks  int     `json:"total_picks"`
	TotalPoints float64 `json:"total_points"`
	WinPct      float64 `json:"win_pct"`
	Rank        int     `json:"rank"`

	// Survivor pools only
	IsEliminated   bool `json:"is_eliminated,omitempty"`
	EliminatedWeek *int `json:"eliminated_week,omitempty"`
}

// AddOutcome folds one graded pick into the counters and point total
func (s *Standing) AddOutcome(outcome Outcome, points float64) {
	switch outcome {
	case OutcomeWin:
		s.Wins++
	case OutcomeLoss:
		s.Losses++
	case OutcomePush:
		s.Pushes++
	case OutcomeVoid:
		s.Voids++
	}
	s.TotalPoints += points
}

// RecalculateWinPct recomputes win percentage over decisive picks only.
// Pushes and voids do not count toward the denominator.
func (s *Standing) RecalculateWinPct() {
	decisive := s.Wins + s.Losses
	if decisive > 0 {
		s.WinPct = float64(s.Wins) / float64(decisive)
	} else {
		s.WinPct = 0
	}
}

// GradedPick is one pick with its current grade, for the entry detail view
type GradedPick struct {
	PickID     int     `json:"pick_id"`
	GameID     int     `json:"game_id"`
	Week       int     `json:"week"`
	Matchup    string  `json:"matchup"`
	TeamID     int     `json:"team_id"`
	Confidence int     `json:"confidence"`
	Outcome    Outcome `json:"outcome"`
	Points     float64 `json:"points"`
	Overridden bool    `json:"overridden,omitempty"`
}

// WeekRecord is a per-week bucket of an entry's graded picks
type WeekRecord struct {
	Week   int     `json:"week"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Pushes int     `json:"pushes"`
	Voids  int     `json:"voids"`
	Points float64 `json:"points"`
}

// EntryDetail is the full per-entry breakdown: current standing, every graded
// pick, and per-week records sorted ascending by week.
type EntryDetail struct {
	Entry         Entry        `json:"entry"`
	Standing      Standing     `json:"standing"`
	Picks         []GradedPick `json:"picks"`
	WeeklyResults []WeekRecord `json:"weekly_results"`
}
