package game

// SessionView is a read-only projection of session state for presentation.
// Render never mutates the session.
type SessionView struct {
	SessionID   string     `json:"sessionId"`
	Phase       string     `json:"phase"`
	Tick        uint64     `json:"tick"`
	DealerCards []string   `json:"dealerCards"`
	DealerTotal int        `json:"dealerTotal,omitempty"`
	HoleHidden  bool       `json:"holeHidden"`
	Seats       []SeatView `json:"seats"`
}

// SeatView is one participant's renderable state.
type SeatView struct {
	PlayerID string     `json:"playerId"`
	Bankroll int        `json:"bankroll"`
	Hands    []HandView `json:"hands"`
}

// HandView is one hand's renderable state.
type HandView struct {
	Cards   []string `json:"cards"`
	Total   int      `json:"total"`
	Soft    bool     `json:"soft"`
	Stake   int      `json:"stake"`
	Outcome string   `json:"outcome"`
	Acting  bool     `json:"acting"`
}

// Render returns a snapshot of the current session state. The dealer's
// second card is hidden until the player turns are over; it is hidden in
// presentation only, never in data.
func (s *Session) Render() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		SessionID:  s.id,
		Phase:      s.phase.String(),
		Tick:       s.tick,
		HoleHidden: s.phase == PhaseDealing || s.phase == PhasePlayerTurns,
	}

	if view.HoleHidden {
		if len(s.dealer.Cards) > 0 {
			view.DealerCards = []string{s.dealer.Cards[0].String()}
		}
	} else {
		for _, c := range s.dealer.Cards {
			view.DealerCards = append(view.DealerCards, c.String())
		}
		view.DealerTotal, _ = s.dealer.Value()
	}

	for si, seat := range s.seats {
		sv := SeatView{
			PlayerID: seat.PlayerID,
			Bankroll: seat.Bankroll,
		}
		for hi, hand := range seat.Hands {
			total, soft := hand.Value()
			hv := HandView{
				Total:   total,
				Soft:    soft,
				Stake:   hand.Stake,
				Outcome: hand.Outcome.String(),
				Acting:  s.phase == PhasePlayerTurns && si == s.actingSeat && hi == seat.ActingIndex(),
			}
			for _, c := range hand.Cards {
				hv.Cards = append(hv.Cards, c.String())
			}
			sv.Hands = append(sv.Hands, hv)
		}
		view.Seats = append(view.Seats, sv)
	}

	return view
}
