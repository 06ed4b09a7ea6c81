package game

import (
	"sort"

	"carioca/internal/rules"
)

// endRound scores the finished round for every seat and either parks
// the session awaiting the next deal or finishes the game after the
// last round. The player who went out holds no cards, so their round
// score is just the unused-buy adjustment.
func (s *Session) endRound() {
	s.RoundComplete = true
	s.PendingBuys = nil
	s.PendingDiscardBuys = nil

	for _, p := range s.Players {
		roundScore := rules.ApplyRemainingBuysPenalty(rules.HandPoints(p.Hand), p.BuysUsed)
		p.RoundScores = append(p.RoundScores, roundScore)
		p.RoundBuys = append(p.RoundBuys, p.buysThisRound())
		p.Score += roundScore
		p.HasDrawn = false
		// bots acknowledge immediately; humans confirm via READY_FOR_NEXT_ROUND
		p.Ready = p.IsBot
	}

	if s.Round >= rules.NumRounds {
		s.Status = StatusFinished
	}
}

// Standings returns the players ordered best-first. Lowest cumulative
// score wins; ties break on seat order.
func (s *Session) Standings() []*Player {
	standings := append([]*Player(nil), s.Players...)
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score < standings[j].Score
	})
	return standings
}

// Winner returns the winning player once the game is finished.
func (s *Session) Winner() (*Player, bool) {
	if s.Status != StatusFinished {
		return nil, false
	}
	return s.Standings()[0], true
}
